package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Mayank2601/financial-dashboard/internal/analyzer"
	"github.com/Mayank2601/financial-dashboard/internal/category"
	"github.com/Mayank2601/financial-dashboard/internal/customer"
	"github.com/Mayank2601/financial-dashboard/internal/models"
)

// XLSXWriter writes a multi-sheet workbook: a metric summary, the full
// transaction list, per-customer aggregates, cost-head totals and a
// monthly rollup.
type XLSXWriter struct {
	Categorizer *category.Categorizer
}

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, txns []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummary(f, txns); err != nil {
		return err
	}
	if err := w.writeTransactions(f, txns); err != nil {
		return err
	}
	if err := w.writeCustomers(f, txns); err != nil {
		return err
	}
	if err := w.writeCostHeads(f, txns); err != nil {
		return err
	}
	if err := w.writeMonthly(f, txns); err != nil {
		return err
	}

	f.DeleteSheet("Sheet1")
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %q: %w", path, err)
	}
	return nil
}

func (w *XLSXWriter) writeSummary(f *excelize.File, txns []models.Transaction) error {
	s := analyzer.Summarize(txns)
	burn := "n/a"
	if s.BurnRateDefined {
		burn = s.BurnRate.StringFixed(2) + "%"
	}
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Income", s.TotalIncome.StringFixed(2)},
		{"Total Expenses", s.TotalExpense.StringFixed(2)},
		{"Net Profit", s.NetProfit.StringFixed(2)},
		{"Burn Rate", burn},
		{"Transaction Count", s.TotalCount},
		{"Income Transactions", s.IncomeCount},
		{"Expense Transactions", s.ExpenseCount},
		{"Average Income", s.AvgIncome.StringFixed(2)},
		{"Average Expense", s.AvgExpense.StringFixed(2)},
		{"Period Days", s.PeriodDays},
		{"Avg Daily Income", s.AvgDailyIncome.StringFixed(2)},
		{"Avg Daily Expense", s.AvgDailyExpense.StringFixed(2)},
	}
	return writeSheet(f, "Summary", rows)
}

func (w *XLSXWriter) writeTransactions(f *excelize.File, txns []models.Transaction) error {
	rows := make([][]interface{}, 0, len(txns)+1)
	rows = append(rows, []interface{}{
		"Date", "Narration", "Chq./Ref.No.",
		"Withdrawal Amt.", "Deposit Amt.", "Closing Balance",
		"Category", "Customer",
	})
	for _, t := range txns {
		rows = append(rows, []interface{}{
			t.Date.Format(csvDateFormat),
			t.Narration,
			t.Ref,
			formatAmount(t.Withdrawn),
			formatAmount(t.Deposit),
			t.Balance.StringFixed(2),
			t.Category,
			t.CustomerKey,
		})
	}
	return writeSheet(f, "All Transactions", rows)
}

func (w *XLSXWriter) writeCustomers(f *excelize.File, txns []models.Transaction) error {
	tagged := make([]models.Transaction, len(txns))
	copy(tagged, txns)
	aggs := customer.Tag(tagged)

	rows := [][]interface{}{
		{"Customer", "Transaction Count", "Total Amount", "Average Amount"},
	}
	for _, a := range aggs {
		rows = append(rows, []interface{}{
			a.Key, a.Count, a.Total.StringFixed(2), a.Average.StringFixed(2),
		})
	}
	return writeSheet(f, "Customers", rows)
}

func (w *XLSXWriter) writeCostHeads(f *excelize.File, txns []models.Transaction) error {
	rows := [][]interface{}{
		{"Category", "Transaction Count", "Total Amount"},
	}
	for _, ct := range analyzer.ByCategory(txns, w.Categorizer) {
		rows = append(rows, []interface{}{
			ct.Name, ct.Count, ct.Amount.StringFixed(2),
		})
	}
	return writeSheet(f, "Cost Heads", rows)
}

func (w *XLSXWriter) writeMonthly(f *excelize.File, txns []models.Transaction) error {
	rows := [][]interface{}{
		{"Month", "Income", "Expenses", "Net", "Transactions"},
	}
	for _, m := range analyzer.ByMonth(txns) {
		rows = append(rows, []interface{}{
			m.Month, m.Income.StringFixed(2), m.Expense.StringFixed(2),
			m.Net.StringFixed(2), m.Count,
		})
	}
	return writeSheet(f, "Monthly Summary", rows)
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %q: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("writing sheet %q row %d: %w", name, i+1, err)
		}
	}
	return nil
}
