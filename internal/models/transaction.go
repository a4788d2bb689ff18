package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one ledger entry parsed from a statement.
// Exactly one of Withdrawn or Deposit is positive for a valid row.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Narration   string          `json:"narration"`
	Ref         string          `json:"ref,omitempty"`
	Withdrawn   decimal.Decimal `json:"withdrawn"`
	Deposit     decimal.Decimal `json:"deposit"`
	Balance     decimal.Decimal `json:"balance"`
	SourceFile  string          `json:"sourceFile,omitempty"`
	SourceOrder int             `json:"sourceOrder"`

	// Derived after parsing; Category is set for debits only.
	Category    string `json:"category,omitempty"`
	CustomerKey string `json:"customerKey,omitempty"`
}

// IsDebit reports whether this transaction is a withdrawal.
func (t Transaction) IsDebit() bool {
	return t.Withdrawn.IsPositive()
}

// IsCredit reports whether this transaction is a deposit.
func (t Transaction) IsCredit() bool {
	return t.Deposit.IsPositive()
}

// Amount returns the single non-zero movement of the transaction.
func (t Transaction) Amount() decimal.Decimal {
	if t.IsDebit() {
		return t.Withdrawn
	}
	return t.Deposit
}

// Statement is the parse result of one source file.
type Statement struct {
	File         string
	Transactions []Transaction
	SkippedRows  int
	Err          error
}

// Empty reports whether the source yielded no transactions.
func (s Statement) Empty() bool {
	return len(s.Transactions) == 0
}

// Dataset is the merged, globally ordered transaction set of a run.
// It is immutable after construction; filtering returns views.
type Dataset struct {
	Transactions []Transaction
	Sources      []Statement
}

// TxnType selects a transaction-direction subset in a Filter.
type TxnType string

const (
	TxnAll     TxnType = "all"
	TxnIncome  TxnType = "income"
	TxnExpense TxnType = "expense"
)

// Filter narrows a dataset by date range, amount range and direction.
// Zero values mean "no bound".
type Filter struct {
	From      time.Time
	To        time.Time
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	Type      TxnType
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Transaction) bool {
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	amt := t.Amount()
	if f.MinAmount.IsPositive() && amt.LessThan(f.MinAmount) {
		return false
	}
	if f.MaxAmount.IsPositive() && amt.GreaterThan(f.MaxAmount) {
		return false
	}
	switch f.Type {
	case TxnIncome:
		return t.IsCredit()
	case TxnExpense:
		return t.IsDebit()
	}
	return true
}

// Apply returns the transactions of d passing the filter, preserving order.
func (d *Dataset) Apply(f Filter) []Transaction {
	out := make([]Transaction, 0, len(d.Transactions))
	for _, t := range d.Transactions {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
