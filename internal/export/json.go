package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mayank2601/financial-dashboard/internal/models"
)

const jsonDateFormat = "2006-01-02"

// jsonRecord is the one-object-per-transaction shape of a JSON export.
// Amounts are emitted as plain numbers with two decimal places.
type jsonRecord struct {
	Date        string      `json:"date"`
	Narration   string      `json:"narration"`
	Ref         string      `json:"ref,omitempty"`
	Withdrawn   json.Number `json:"withdrawn"`
	Deposit     json.Number `json:"deposit"`
	Balance     json.Number `json:"balance"`
	Category    string      `json:"category,omitempty"`
	CustomerKey string      `json:"customer,omitempty"`
}

// JSONWriter writes transactions as a JSON array of records.
type JSONWriter struct{}

// WriteToFile writes the transactions to a JSON file at path.
func (w *JSONWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()
	return w.Write(f, txns)
}

// Write encodes the transactions as an indented JSON array.
func (w *JSONWriter) Write(out io.Writer, txns []models.Transaction) error {
	records := make([]jsonRecord, 0, len(txns))
	for _, t := range txns {
		records = append(records, jsonRecord{
			Date:        t.Date.Format(jsonDateFormat),
			Narration:   t.Narration,
			Ref:         t.Ref,
			Withdrawn:   jsonAmount(t.Withdrawn),
			Deposit:     jsonAmount(t.Deposit),
			Balance:     jsonAmount(t.Balance),
			Category:    t.Category,
			CustomerKey: t.CustomerKey,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON export back into transactions.
func ReadJSON(in io.Reader) ([]models.Transaction, error) {
	var records []jsonRecord
	if err := json.NewDecoder(in).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	txns := make([]models.Transaction, 0, len(records))
	for i, rec := range records {
		date, err := time.Parse(jsonDateFormat, rec.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		wd, err := decimal.NewFromString(rec.Withdrawn.String())
		if err != nil {
			return nil, fmt.Errorf("record %d withdrawn: %w", i, err)
		}
		dep, err := decimal.NewFromString(rec.Deposit.String())
		if err != nil {
			return nil, fmt.Errorf("record %d deposit: %w", i, err)
		}
		bal, err := decimal.NewFromString(rec.Balance.String())
		if err != nil {
			return nil, fmt.Errorf("record %d balance: %w", i, err)
		}
		txns = append(txns, models.Transaction{
			Date:        date,
			Narration:   rec.Narration,
			Ref:         rec.Ref,
			Withdrawn:   wd,
			Deposit:     dep,
			Balance:     bal,
			Category:    rec.Category,
			CustomerKey: rec.CustomerKey,
			SourceOrder: i,
		})
	}
	return txns, nil
}

func jsonAmount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
