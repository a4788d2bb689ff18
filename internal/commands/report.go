package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mayank2601/financial-dashboard/internal/analyzer"
	"github.com/Mayank2601/financial-dashboard/internal/category"
	"github.com/Mayank2601/financial-dashboard/internal/config"
	"github.com/Mayank2601/financial-dashboard/internal/customer"
	"github.com/Mayank2601/financial-dashboard/internal/export"
	"github.com/Mayank2601/financial-dashboard/internal/logger"
	"github.com/Mayank2601/financial-dashboard/internal/models"
	"github.com/Mayank2601/financial-dashboard/internal/report"
)

func newReportCommand() *cobra.Command {
	var (
		password  string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "report <pdf|csv>...",
		Short: "Analyze statements and write an Excel report plus HTML charts",
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

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			cat := category.New(cfg)

			xlsxPath := filepath.Join(outputDir, "financial_report.xlsx")
			xw := &export.XLSXWriter{Categorizer: cat}
			if err := xw.WriteToFile(xlsxPath, data.Transactions); err != nil {
				return err
			}

			htmlPath := filepath.Join(outputDir, "financial_report.html")
			b := &report.Builder{Categorizer: cat}
			if err := b.WriteHTML(htmlPath, data.Transactions); err != nil {
				return err
			}

			printSummary(cmd, data.Transactions, cat)
			cmd.Printf("\nReports saved:\n  - %s\n  - %s\n", xlsxPath, htmlPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "PDF password if protected")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "output directory")

	return cmd
}

// loadInputs accepts a mix of statement PDFs and previously exported CSVs.
func loadInputs(log *slog.Logger, cfg *config.Config, args []string, password string) (*models.Dataset, error) {
	var pdfs, csvs []string
	for _, a := range args {
		if strings.EqualFold(filepath.Ext(a), ".csv") {
			csvs = append(csvs, a)
		} else {
			pdfs = append(pdfs, a)
		}
	}

	var data *models.Dataset
	if len(pdfs) > 0 {
		d, err := loadDataset(log, cfg, pdfs, password)
		if err != nil && len(csvs) == 0 {
			return nil, err
		}
		if d != nil {
			data = d
		}
	}
	if data == nil {
		data = &models.Dataset{}
	}

	for _, path := range csvs {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		txns, err := export.ReadCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		log.Info("loaded exported CSV", "file", path, "transactions", len(txns))
		data.Transactions = append(data.Transactions, txns...)
	}

	if len(data.Transactions) == 0 {
		return nil, fmt.Errorf("no transactions found in any input")
	}

	category.New(cfg).Tag(data.Transactions)
	customer.Tag(data.Transactions)
	return data, nil
}

// printSummary writes the console report the way a month-end review reads:
// headline totals, cost heads, top customers, monthly trend.
func printSummary(cmd *cobra.Command, txns []models.Transaction, cat *category.Categorizer) {
	s := analyzer.Summarize(txns)

	cmd.Println(strings.Repeat("=", 60))
	cmd.Println("FINANCIAL SUMMARY")
	cmd.Println(strings.Repeat("=", 60))
	cmd.Printf("Period:             %s to %s (%d days)\n",
		s.Start.Format("02 Jan 2006"), s.End.Format("02 Jan 2006"), s.PeriodDays)
	cmd.Printf("Transactions:       %d (%d credits, %d debits)\n",
		s.TotalCount, s.IncomeCount, s.ExpenseCount)
	cmd.Printf("Total Income:       %s\n", s.TotalIncome.StringFixed(2))
	cmd.Printf("Total Expenses:     %s\n", s.TotalExpense.StringFixed(2))
	cmd.Printf("Net Profit:         %s\n", s.NetProfit.StringFixed(2))
	if s.BurnRateDefined {
		cmd.Printf("Burn Rate:          %s%%\n", s.BurnRate.StringFixed(2))
	} else {
		cmd.Println("Burn Rate:          n/a (no income)")
	}

	cmd.Println("\nCost Heads:")
	for _, ct := range analyzer.ByCategory(txns, cat) {
		if ct.Count == 0 {
			continue
		}
		cmd.Printf("  %-25s %12s  (%d txns)\n", ct.Name, ct.Amount.StringFixed(2), ct.Count)
	}

	tagged := make([]models.Transaction, len(txns))
	copy(tagged, txns)
	if aggs := customer.Tag(tagged); len(aggs) > 0 {
		cmd.Println("\nTop Customers:")
		if len(aggs) > 10 {
			aggs = aggs[:10]
		}
		for _, a := range aggs {
			cmd.Printf("  %-25s %12s  (%d txns)\n", a.Key, a.Total.StringFixed(2), a.Count)
		}
	}

	rollups := analyzer.ByMonth(txns)
	cmd.Println("\nMonthly Trend:")
	for _, m := range rollups {
		cmd.Printf("  %s  income %12s  expenses %12s  net %12s\n",
			m.Month, m.Income.StringFixed(2), m.Expense.StringFixed(2), m.Net.StringFixed(2))
	}
	cmd.Printf("Profitable months:  %d of %d\n", analyzer.ProfitableMonths(rollups), len(rollups))
}
