package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mayank2601/financial-dashboard/internal/models"
)

func sampleTxns() []models.Transaction {
	day := func(d int) time.Time { return time.Date(2025, 4, d, 0, 0, 0, 0, time.UTC) }
	return []models.Transaction{
		{
			Date:        day(1),
			Narration:   "UPI-SWIGGY-BANGALORE-PAYMENT",
			Ref:         "502912345678",
			Withdrawn:   decimal.RequireFromString("450.00"),
			Balance:     decimal.RequireFromString("49550.00"),
			Category:    "Other",
			CustomerKey: "UPI-SWIGGY",
		},
		{
			Date:      day(2),
			Narration: "SALARY CREDIT ACME CORP",
			Deposit:   decimal.RequireFromString("50000.00"),
			Balance:   decimal.RequireFromString("99550.00"),
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.Write(&buf, sampleTxns()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
	// The unused amount column stays empty, like the source statement.
	assert.Contains(t, lines[1], ",450.00,,")
	assert.Contains(t, lines[2], ",,50000.00,")

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	want := sampleTxns()
	for i := range want {
		assert.True(t, got[i].Date.Equal(want[i].Date), "txn %d date", i)
		assert.Equal(t, want[i].Narration, got[i].Narration)
		assert.True(t, got[i].Withdrawn.Equal(want[i].Withdrawn), "txn %d withdrawn", i)
		assert.True(t, got[i].Deposit.Equal(want[i].Deposit), "txn %d deposit", i)
		assert.True(t, got[i].Balance.Equal(want[i].Balance), "txn %d balance", i)
		assert.Equal(t, want[i].Category, got[i].Category)
		assert.Equal(t, want[i].CustomerKey, got[i].CustomerKey)
	}
}

func TestReadCSV_EmptyAndHeaderOnly(t *testing.T) {
	got, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ReadCSV(strings.NewReader(strings.Join(csvHeader, ",") + "\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadCSV_BadRow(t *testing.T) {
	in := strings.Join(csvHeader, ",") + "\nnot-a-date,X,,1.00,,2.00,,\n"
	_, err := ReadCSV(strings.NewReader(in))
	assert.Error(t, err)
}
