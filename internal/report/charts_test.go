package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mayank2601/financial-dashboard/internal/category"
	"github.com/Mayank2601/financial-dashboard/internal/config"
	"github.com/Mayank2601/financial-dashboard/internal/models"
)

func TestWriteHTML(t *testing.T) {
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
			Narration: "UPI-JIO RECHARGE",
			Withdrawn: decimal.RequireFromString("500.00"),
			Balance:   decimal.RequireFromString("99050.00"),
			Category:  "Utilities",
		},
	}

	path := filepath.Join(t.TempDir(), "report.html")
	b := &Builder{Categorizer: category.New(config.Default())}
	require.NoError(t, b.WriteHTML(path, txns))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	for _, title := range []string{
		"Monthly Income vs Expenses",
		"Expense Distribution by Cost Head",
		"Balance Over Time",
		"Activity by Day of Week",
	} {
		assert.Contains(t, html, title)
	}
	assert.Contains(t, html, "Utilities")
}
