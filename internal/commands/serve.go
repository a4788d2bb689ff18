package commands

import (
	"github.com/spf13/cobra"

	"github.com/Mayank2601/financial-dashboard/internal/category"
	"github.com/Mayank2601/financial-dashboard/internal/dashboard"
	"github.com/Mayank2601/financial-dashboard/internal/logger"
)

func newServeCommand() *cobra.Command {
	var (
		password string
		addr     string
	)

	cmd := &cobra.Command{
		Use:   "serve <pdf|csv>...",
		Short: "Serve the interactive dashboard API over the parsed statements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := logger.Default()

			data, err := loadInputs(log, cfg, args, password)
			if err != nil {
				return err
			}

			srv := dashboard.New(data, cfg, category.New(cfg), log)
			return srv.Listen(addr)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "PDF password if protected")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
