// Package parser turns extracted statement text into transactions.
//
// Statements print one transaction per line in column order
// Date | Narration | Ref | Value Dt | Withdrawal | Deposit | Closing Balance,
// but PDF text extraction collapses the columns to whitespace and wraps long
// narrations onto continuation lines. Parsing is best-effort: lines that do
// not look like transaction rows are skipped and counted, never reported
// individually.
package parser

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mayank2601/financial-dashboard/internal/config"
	"github.com/Mayank2601/financial-dashboard/internal/models"
)

// StatementParser parses one statement's text lines into transactions.
// Construct with New; the configuration is not mutated.
type StatementParser struct {
	dateLayouts []string
}

// New returns a parser using the date formats from cfg.
func New(cfg *config.Config) *StatementParser {
	return &StatementParser{dateLayouts: cfg.DateFormats}
}

// pendingRow accumulates one transaction across its continuation lines.
type pendingRow struct {
	date      time.Time
	narration string
	withdrawn decimal.Decimal
	deposit   decimal.Decimal
	balance   decimal.Decimal
	hasAmount bool
	// explicit marks amounts read from separate withdrawal and deposit
	// columns, which bind positionally and are never re-classified.
	explicit bool
}

// Parse converts the extracted pages of one source file into a Statement.
// Rows failing date or amount parsing are skipped silently; only the
// aggregate count is kept.
func (p *StatementParser) Parse(pages []string, sourceFile string) models.Statement {
	st := models.Statement{File: sourceFile}

	var pending *pendingRow
	var prevBalance decimal.Decimal
	havePrev := false

	flush := func() {
		if pending == nil {
			return
		}
		txn, ok := p.finishRow(pending, prevBalance, havePrev)
		if !ok {
			st.SkippedRows++
			pending = nil
			return
		}
		prevBalance = txn.Balance
		havePrev = true
		st.Transactions = append(st.Transactions, txn)
		pending = nil
	}

	for _, page := range pages {
		for _, raw := range strings.Split(page, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if isHeaderLine(line) {
				continue
			}

			dateTok := extractLeadingDate(line)
			if dateTok == "" {
				p.continueRow(pending, line)
				continue
			}

			date, err := ParseDate(dateTok, p.dateLayouts)
			if err != nil {
				// Date-shaped token that fits no accepted format.
				st.SkippedRows++
				continue
			}

			flush()

			rest := strings.TrimSpace(line[len(dateTok):])
			amounts := findAmounts(rest)
			row := &pendingRow{date: date, narration: stripAmounts(rest, amounts)}
			applyAmounts(row, amounts)
			pending = row
		}
	}
	flush()

	st.Transactions = dedupe(st.Transactions)
	for i := range st.Transactions {
		st.Transactions[i].SourceFile = sourceFile
		st.Transactions[i].SourceOrder = i
	}
	return st
}

// continueRow folds a dateless line into the pending transaction. Lines
// carrying the amount columns update them; anything else is narration
// wrap-around.
func (p *StatementParser) continueRow(pending *pendingRow, line string) {
	if pending == nil {
		return
	}
	amounts := findAmounts(line)
	if len(amounts) >= 2 {
		applyAmounts(pending, amounts)
		line = stripAmounts(line, amounts)
	}
	if line != "" {
		pending.narration = collapseSpaces(pending.narration + " " + line)
	}
}

// applyAmounts interprets the amount tokens of a row. The last amount is
// always the closing balance. With three or more, the two before it are the
// withdrawal and deposit columns. With exactly two, the first is the bare
// transaction amount, classified later against the running balance.
func applyAmounts(row *pendingRow, amounts []string) {
	if len(amounts) == 0 {
		return
	}
	bal, err := ParseAmount(amounts[len(amounts)-1])
	if err != nil {
		return
	}
	row.balance = bal

	switch {
	case len(amounts) >= 3:
		wd, errW := ParseAmount(amounts[len(amounts)-3])
		dep, errD := ParseAmount(amounts[len(amounts)-2])
		if errW != nil || errD != nil {
			return
		}
		row.withdrawn, row.deposit = wd, dep
		row.hasAmount = true
		row.explicit = true
	case len(amounts) == 2:
		amt, err := ParseAmount(amounts[0])
		if err != nil {
			return
		}
		// Direction unknown until finishRow; park it in withdrawn.
		row.withdrawn, row.deposit = amt, decimal.Zero
		row.hasAmount = true
		row.explicit = false
	}
}

// finishRow validates a pending row and resolves ambiguous amounts.
// Rules, in order:
//   - rows without any parseable amount or balance are rejected;
//   - both withdrawal and deposit populated (malformed input): the deposit
//     wins and the withdrawal is discarded;
//   - explicit column amounts bind positionally and are never re-classified;
//   - a single bare amount is classified by balance progression against the
//     previous row, falling back to narration keywords for the first row.
func (p *StatementParser) finishRow(row *pendingRow, prevBalance decimal.Decimal, havePrev bool) (models.Transaction, bool) {
	if !row.hasAmount {
		return models.Transaction{}, false
	}

	wd, dep := row.withdrawn, row.deposit
	switch {
	case wd.IsPositive() && dep.IsPositive():
		wd = decimal.Zero
	case !row.explicit && wd.IsPositive() && dep.IsZero():
		// An unclassified bare amount.
		if classifyAsDeposit(wd, row.balance, prevBalance, havePrev, row.narration) {
			wd, dep = decimal.Zero, wd
		}
	}

	if wd.IsPositive() == dep.IsPositive() {
		// Neither side positive: a zero-amount artifact row.
		return models.Transaction{}, false
	}

	narration := collapseSpaces(row.narration)
	return models.Transaction{
		Date:      row.date,
		Narration: narration,
		Ref:       extractRef(narration),
		Withdrawn: wd,
		Deposit:   dep,
		Balance:   row.balance,
	}, true
}

// classifyAsDeposit decides the direction of a bare amount. Balance
// progression is authoritative when the previous balance is known;
// otherwise the narration keyword heuristic decides.
func classifyAsDeposit(amt, bal, prevBal decimal.Decimal, havePrev bool, narration string) bool {
	if havePrev {
		if prevBal.Add(amt).Equal(bal) {
			return true
		}
		if prevBal.Sub(amt).Equal(bal) {
			return false
		}
		// Balance does not reconcile (e.g. first row of a new page
		// range); fall through to the keyword heuristic.
	}
	return !looksLikeDebit(narration)
}

var debitKeywords = []string{
	"payment", "withdrawal", "atw", "atm", "pos ", "purchase",
	"fee", "charge", "debit", "dr-", " dr ", "emi", "billpay",
}

func looksLikeDebit(narration string) bool {
	lower := strings.ToLower(narration)
	for _, kw := range debitKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// dedupe removes exact repeats within one file. Table extraction can emit
// the same row twice when a table spans a page break.
func dedupe(txns []models.Transaction) []models.Transaction {
	type key struct {
		date      time.Time
		narration string
		balance   string
	}
	seen := make(map[key]bool, len(txns))
	out := txns[:0]
	for _, t := range txns {
		n := t.Narration
		if r := []rune(n); len(r) > 80 {
			n = string(r[:80])
		}
		k := key{t.Date, n, t.Balance.String()}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}
