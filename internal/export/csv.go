// Package export writes the normalized transaction set to the supported
// output formats: CSV, JSON, OFX 2.0 and a multi-sheet XLSX workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/Mayank2601/financial-dashboard/internal/models"
	"github.com/Mayank2601/financial-dashboard/internal/parser"
)

const csvDateFormat = "02/01/2006"

var csvHeader = []string{
	"Date", "Narration", "Chq./Ref.No.",
	"Withdrawal Amt.", "Deposit Amt.", "Closing Balance",
	"Category", "Customer",
}

// CSVWriter writes transactions as UTF-8 CSV with dates as DD/MM/YYYY.
type CSVWriter struct{}

// WriteToFile writes the transactions to a CSV file at path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()
	return w.Write(f, txns)
}

// Write writes the transactions in CSV format to out.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, t := range txns {
		row := []string{
			t.Date.Format(csvDateFormat),
			t.Narration,
			t.Ref,
			formatAmount(t.Withdrawn),
			formatAmount(t.Deposit),
			t.Balance.StringFixed(2),
			t.Category,
			t.CustomerKey,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	return cw.Error()
}

// ReadCSV parses CSV produced by CSVWriter back into transactions. Used
// for round-trip verification and for re-importing a filtered download.
func ReadCSV(in io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(in)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []models.Transaction
	for i, rec := range records[1:] {
		t, err := parseCSVRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		t.SourceOrder = i
		txns = append(txns, t)
	}
	return txns, nil
}

func parseCSVRow(rec []string) (models.Transaction, error) {
	if len(rec) < 6 {
		return models.Transaction{}, fmt.Errorf("expected at least 6 fields, got %d", len(rec))
	}
	date, err := parser.ParseDate(rec[0], []string{csvDateFormat})
	if err != nil {
		return models.Transaction{}, err
	}
	wd, err := parser.ParseAmount(rec[3])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("parsing withdrawal %q: %w", rec[3], err)
	}
	dep, err := parser.ParseAmount(rec[4])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("parsing deposit %q: %w", rec[4], err)
	}
	bal, err := parser.ParseAmount(rec[5])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("parsing balance %q: %w", rec[5], err)
	}
	t := models.Transaction{
		Date:      date,
		Narration: rec[1],
		Ref:       rec[2],
		Withdrawn: wd,
		Deposit:   dep,
		Balance:   bal,
	}
	if len(rec) >= 8 {
		t.Category = rec[6]
		t.CustomerKey = rec[7]
	}
	return t, nil
}

// formatAmount renders an amount column, leaving the unused side empty the
// way the source statements do.
func formatAmount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}
	return amount.StringFixed(2)
}
