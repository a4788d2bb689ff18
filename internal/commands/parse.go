package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Mayank2601/financial-dashboard/internal/category"
	"github.com/Mayank2601/financial-dashboard/internal/export"
	"github.com/Mayank2601/financial-dashboard/internal/logger"
)

func newParseCommand() *cobra.Command {
	var (
		password  string
		outputDir string
		baseName  string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "parse <pdf>...",
		Short: "Parse statement PDFs and export the transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := logger.Default()

			data, err := loadDataset(log, cfg, args, password)
			if err != nil {
				return err
			}
			log.Info("parse complete", "transactions", len(data.Transactions))

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			base := filepath.Join(outputDir, baseName)

			formats := []string{format}
			if format == "all" {
				formats = []string{"csv", "xlsx", "json", "ofx"}
			}
			for _, f := range formats {
				path := base + "." + f
				var err error
				switch f {
				case "csv":
					w := &export.CSVWriter{}
					err = w.WriteToFile(path, data.Transactions)
				case "xlsx":
					w := &export.XLSXWriter{Categorizer: category.New(cfg)}
					err = w.WriteToFile(path, data.Transactions)
				case "json":
					w := &export.JSONWriter{}
					err = w.WriteToFile(path, data.Transactions)
				case "ofx":
					w := export.NewOFXWriter(cfg.OFX)
					err = w.WriteToFile(path, data.Transactions)
				default:
					return fmt.Errorf("unknown format %q, want csv, xlsx, json, ofx or all", f)
				}
				if err != nil {
					return err
				}
				cmd.Printf("Exported: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "PDF password if protected")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "output directory")
	cmd.Flags().StringVar(&baseName, "base-name", "statement", "base name for output files")
	cmd.Flags().StringVarP(&format, "format", "f", "all", "output format: csv, xlsx, json, ofx or all")

	return cmd
}
