package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mayank2601/financial-dashboard/internal/export"
	"github.com/Mayank2601/financial-dashboard/internal/models"
)

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	day := func(d int) time.Time { return time.Date(2025, 4, d, 0, 0, 0, 0, time.UTC) }
	txns := []models.Transaction{
		{
			Date:      day(1),
			Narration: "SALARY CREDIT ACME CORP",
			Deposit:   decimal.RequireFromString("50000.00"),
			Balance:   decimal.RequireFromString("99550.00"),
		},
		{
			Date:      day(2),
			Narration: "NEFT-OFFICE RENT-LANDLORD",
			Withdrawn: decimal.RequireFromString("20000.00"),
			Balance:   decimal.RequireFromString("79550.00"),
		},
	}

	path := filepath.Join(t.TempDir(), "statement.csv")
	w := &export.CSVWriter{}
	require.NoError(t, w.WriteToFile(path, txns))
	return path
}

func TestReportCommand_FromCSV(t *testing.T) {
	csvPath := writeSampleCSV(t)
	outDir := t.TempDir()

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"report", "-o", outDir, csvPath})

	require.NoError(t, root.Execute())

	for _, name := range []string{"financial_report.xlsx", "financial_report.html"} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, "missing %s", name)
		assert.Greater(t, info.Size(), int64(0))
	}

	text := out.String()
	assert.Contains(t, text, "FINANCIAL SUMMARY")
	assert.Contains(t, text, "Total Income:       50000.00")
	assert.Contains(t, text, "Total Expenses:     20000.00")
	assert.Contains(t, text, "Net Profit:         30000.00")
	assert.Contains(t, text, "Burn Rate:          40.00%")
	assert.Contains(t, text, "Rent")
}

func TestParseCommand_MissingInput(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"parse", filepath.Join(t.TempDir(), "nope.pdf")})

	assert.Error(t, root.Execute())
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"parse", "report", "serve"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
