package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFilterMatch(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 4, d, 0, 0, 0, 0, time.UTC) }
	income := Transaction{Date: day(5), Deposit: decimal.NewFromInt(1000)}
	expense := Transaction{Date: day(10), Withdrawn: decimal.NewFromInt(200)}

	tests := []struct {
		name string
		f    Filter
		txn  Transaction
		want bool
	}{
		{"zero filter matches all", Filter{}, income, true},
		{"from bound excludes earlier", Filter{From: day(6)}, income, false},
		{"to bound excludes later", Filter{To: day(6)}, expense, false},
		{"inclusive on the boundary", Filter{From: day(5), To: day(5)}, income, true},
		{"min amount", Filter{MinAmount: decimal.NewFromInt(500)}, expense, false},
		{"max amount", Filter{MaxAmount: decimal.NewFromInt(500)}, income, false},
		{"income type", Filter{Type: TxnIncome}, expense, false},
		{"expense type", Filter{Type: TxnExpense}, expense, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.Match(tt.txn))
		})
	}
}

func TestDatasetApplyPreservesOrder(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 4, d, 0, 0, 0, 0, time.UTC) }
	d := &Dataset{Transactions: []Transaction{
		{Date: day(1), Deposit: decimal.NewFromInt(100)},
		{Date: day(2), Withdrawn: decimal.NewFromInt(50)},
		{Date: day(3), Deposit: decimal.NewFromInt(300)},
	}}

	got := d.Apply(Filter{Type: TxnIncome})
	assert.Len(t, got, 2)
	assert.True(t, got[0].Date.Before(got[1].Date))
}

func TestTransactionAmount(t *testing.T) {
	debit := Transaction{Withdrawn: decimal.NewFromInt(75)}
	credit := Transaction{Deposit: decimal.NewFromInt(125)}

	assert.True(t, debit.IsDebit())
	assert.Equal(t, "75", debit.Amount().String())
	assert.True(t, credit.IsCredit())
	assert.Equal(t, "125", credit.Amount().String())
}
