package parser

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Mayank2601/financial-dashboard/internal/config"
)

func newTestParser() *StatementParser {
	return New(config.Default())
}

func TestParse_BasicRows(t *testing.T) {
	p := newTestParser()

	pages := []string{
		`Date Narration Chq./Ref.No. Withdrawal Amt. Deposit Amt. Closing Balance
01/04/25 UPI-SWIGGY-BANGALORE-PAYMENT 450.00 49,550.00
02/04/25 SALARY CREDIT ACME CORP 50,000.00 99,550.00
03/04/25 NEFT-OFFICE RENT-LANDLORD 20,000.00 0.00 79,550.00`,
	}

	st := p.Parse(pages, "test.pdf")
	if len(st.Transactions) != 3 {
		t.Fatalf("transactions: got %d, want 3", len(st.Transactions))
	}

	txn := st.Transactions[0]
	if want := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC); !txn.Date.Equal(want) {
		t.Errorf("txn[0].Date: got %v, want %v", txn.Date, want)
	}
	if !txn.IsDebit() {
		t.Errorf("txn[0]: expected debit, got %+v", txn)
	}
	if got := txn.Withdrawn.StringFixed(2); got != "450.00" {
		t.Errorf("txn[0].Withdrawn: got %s, want 450.00", got)
	}
	if got := txn.Balance.StringFixed(2); got != "49550.00" {
		t.Errorf("txn[0].Balance: got %s, want 49550.00", got)
	}
	if txn.Narration != "UPI-SWIGGY-BANGALORE-PAYMENT" {
		t.Errorf("txn[0].Narration: got %q", txn.Narration)
	}

	// Bare amount reconciled against the running balance: 49,550 + 50,000.
	txn = st.Transactions[1]
	if !txn.IsCredit() {
		t.Errorf("txn[1]: expected credit, got %+v", txn)
	}
	if got := txn.Deposit.StringFixed(2); got != "50000.00" {
		t.Errorf("txn[1].Deposit: got %s, want 50000.00", got)
	}

	// Explicit withdrawal and deposit columns.
	txn = st.Transactions[2]
	if !txn.IsDebit() {
		t.Errorf("txn[2]: expected debit, got %+v", txn)
	}
	if got := txn.Withdrawn.StringFixed(2); got != "20000.00" {
		t.Errorf("txn[2].Withdrawn: got %s, want 20000.00", got)
	}

	for i, txn := range st.Transactions {
		if txn.SourceFile != "test.pdf" {
			t.Errorf("txn[%d].SourceFile: got %q", i, txn.SourceFile)
		}
		if txn.SourceOrder != i {
			t.Errorf("txn[%d].SourceOrder: got %d, want %d", i, txn.SourceOrder, i)
		}
	}
}

func TestParse_ExplicitColumnsNeverReclassified(t *testing.T) {
	p := newTestParser()

	// First row of a file: no previous balance to reconcile against, and
	// no debit keyword in the narration. The explicit withdrawal column
	// must still win over the keyword heuristic.
	pages := []string{"01/04/25 NEFT-OFFICE RENT-LANDLORD 20,000.00 0.00 79,550.00"}
	st := p.Parse(pages, "test.pdf")
	if len(st.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(st.Transactions))
	}

	txn := st.Transactions[0]
	if !txn.IsDebit() {
		t.Fatalf("expected debit from explicit withdrawal column, got withdrawn=%s deposit=%s",
			txn.Withdrawn, txn.Deposit)
	}
	if got := txn.Withdrawn.StringFixed(2); got != "20000.00" {
		t.Errorf("withdrawn: got %s, want 20000.00", got)
	}
	if !txn.Deposit.IsZero() {
		t.Errorf("deposit: got %s, want 0", txn.Deposit)
	}
}

func TestParse_DedupesLongMultibyteNarrations(t *testing.T) {
	p := newTestParser()

	// Over 80 runes of multibyte text; the dedupe key must cut on a rune
	// boundary, and the repeated row still collapses to one transaction.
	narration := strings.Repeat("CRÈME BRÛLÉE CAFÉ ", 8) + "PAYMENT"
	row := "01/04/25 " + narration + " 450.00 49,550.00"
	st := p.Parse([]string{row, row}, "test.pdf")
	if len(st.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(st.Transactions))
	}
	if !utf8.ValidString(st.Transactions[0].Narration) {
		t.Errorf("narration is not valid UTF-8: %q", st.Transactions[0].Narration)
	}
}

func TestParse_SalaryRowWithColumnSeparators(t *testing.T) {
	p := newTestParser()

	// Some extractions leave stray commas between the collapsed columns.
	pages := []string{"15/03/25  SALARY CREDIT XYZ  REF001  ,  50000.00  ,  1050000.00"}
	st := p.Parse(pages, "test.pdf")
	if len(st.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(st.Transactions))
	}

	txn := st.Transactions[0]
	if want := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC); !txn.Date.Equal(want) {
		t.Errorf("date: got %v, want %v", txn.Date, want)
	}
	if !txn.IsCredit() {
		t.Fatalf("expected credit, got %+v", txn)
	}
	if got := txn.Deposit.StringFixed(2); got != "50000.00" {
		t.Errorf("deposit: got %s, want 50000.00", got)
	}
	if !txn.Withdrawn.IsZero() {
		t.Errorf("withdrawn: got %s, want 0", txn.Withdrawn)
	}
	if got := txn.Balance.StringFixed(2); got != "1050000.00" {
		t.Errorf("balance: got %s, want 1050000.00", got)
	}
	if txn.Narration != "SALARY CREDIT XYZ REF001" {
		t.Errorf("narration: got %q", txn.Narration)
	}
}

func TestParse_ContinuationLines(t *testing.T) {
	p := newTestParser()

	pages := []string{
		`05/04/25 UPI-AMAZON PAY
INDIA-PURCHASE 1,250.00 78,300.00`,
	}

	st := p.Parse(pages, "test.pdf")
	if len(st.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(st.Transactions))
	}

	txn := st.Transactions[0]
	if txn.Narration != "UPI-AMAZON PAY INDIA-PURCHASE" {
		t.Errorf("narration: got %q", txn.Narration)
	}
	if !txn.IsDebit() {
		t.Errorf("expected debit, got %+v", txn)
	}
	if got := txn.Withdrawn.StringFixed(2); got != "1250.00" {
		t.Errorf("withdrawn: got %s, want 1250.00", got)
	}
}

func TestParse_SkipsHeadersAndFooters(t *testing.T) {
	p := newTestParser()

	pages := []string{
		`Statement of Account
MR JOHN DOE
Page No .: 1
Date Narration Chq./Ref.No. Withdrawal Amt. Deposit Amt. Closing Balance
01/04/25 HANDWRITTEN NOTE WITHOUT AMOUNTS`,
	}

	st := p.Parse(pages, "test.pdf")
	if !st.Empty() {
		t.Errorf("expected no transactions, got %d", len(st.Transactions))
	}
	if st.SkippedRows != 1 {
		t.Errorf("skipped rows: got %d, want 1", st.SkippedRows)
	}
}

func TestParse_DedupesPageBreakRepeats(t *testing.T) {
	p := newTestParser()

	row := "01/04/25 UPI-SWIGGY-BANGALORE-PAYMENT 450.00 49,550.00"
	st := p.Parse([]string{row, row}, "test.pdf")
	if len(st.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(st.Transactions))
	}
}

func TestParse_BothColumnsPopulatedKeepsDeposit(t *testing.T) {
	p := newTestParser()

	pages := []string{"06/04/25 SETTLEMENT ADJUSTMENT 100.00 100.00 1,100.00"}
	st := p.Parse(pages, "test.pdf")
	if len(st.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(st.Transactions))
	}

	txn := st.Transactions[0]
	if !txn.IsCredit() {
		t.Errorf("expected credit, got %+v", txn)
	}
	if !txn.Withdrawn.IsZero() {
		t.Errorf("withdrawn should be discarded, got %s", txn.Withdrawn)
	}
	if got := txn.Deposit.StringFixed(2); got != "100.00" {
		t.Errorf("deposit: got %s, want 100.00", got)
	}
}

func TestParse_AcceptsAllDateFormats(t *testing.T) {
	p := newTestParser()

	pages := []string{
		`15/03/25 SALARY CREDIT A 1,000.00 1,000.00
16/03/2025 SALARY CREDIT B 1,000.00 2,000.00
17-03-25 SALARY CREDIT C 1,000.00 3,000.00`,
	}

	st := p.Parse(pages, "test.pdf")
	if len(st.Transactions) != 3 {
		t.Fatalf("transactions: got %d, want 3", len(st.Transactions))
	}
	for i, day := range []int{15, 16, 17} {
		got := st.Transactions[i].Date
		want := time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("txn[%d].Date: got %v, want %v", i, got, want)
		}
	}
}

func TestParse_Deterministic(t *testing.T) {
	p := newTestParser()

	pages := []string{
		`01/04/25 UPI-SWIGGY-BANGALORE-PAYMENT 450.00 49,550.00
02/04/25 SALARY CREDIT ACME CORP 50,000.00 99,550.00`,
	}

	first := p.Parse(pages, "test.pdf")
	second := p.Parse(pages, "test.pdf")
	if len(first.Transactions) != len(second.Transactions) {
		t.Fatalf("runs disagree: %d vs %d", len(first.Transactions), len(second.Transactions))
	}
	for i := range first.Transactions {
		a, b := first.Transactions[i], second.Transactions[i]
		if !a.Date.Equal(b.Date) || a.Narration != b.Narration ||
			!a.Withdrawn.Equal(b.Withdrawn) || !a.Deposit.Equal(b.Deposit) {
			t.Errorf("txn[%d] differs between runs: %+v vs %+v", i, a, b)
		}
	}
}
