// Package analyzer computes summary metrics over a transaction set.
//
// Every function here is a pure function of its input slice: no hidden
// state, so re-filtering and recomputing is idempotent, and sums and counts
// do not depend on iteration order. The dashboard calls these on every
// filter change.
package analyzer

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mayank2601/financial-dashboard/internal/category"
	"github.com/Mayank2601/financial-dashboard/internal/models"
)

// Summary holds the headline metrics of a (possibly filtered) set.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpense  decimal.Decimal
	NetProfit     decimal.Decimal
	// BurnRate is expenses/income as a percentage. Undefined (and zero)
	// when the set has no income; check BurnRateDefined before use.
	BurnRate        decimal.Decimal
	BurnRateDefined bool

	TotalCount   int
	IncomeCount  int
	ExpenseCount int

	AvgIncome  decimal.Decimal
	AvgExpense decimal.Decimal

	LargestIncome   decimal.Decimal
	SmallestIncome  decimal.Decimal
	MedianIncome    decimal.Decimal
	LargestExpense  decimal.Decimal
	SmallestExpense decimal.Decimal
	MedianExpense   decimal.Decimal

	Start      time.Time
	End        time.Time
	PeriodDays int

	AvgDailyIncome  decimal.Decimal
	AvgDailyExpense decimal.Decimal
}

// Summarize computes the Summary for txns.
func Summarize(txns []models.Transaction) Summary {
	var s Summary
	var incomes, expenses []decimal.Decimal

	for _, t := range txns {
		s.TotalCount++
		if s.Start.IsZero() || t.Date.Before(s.Start) {
			s.Start = t.Date
		}
		if t.Date.After(s.End) {
			s.End = t.Date
		}
		if t.IsCredit() {
			s.IncomeCount++
			s.TotalIncome = s.TotalIncome.Add(t.Deposit)
			incomes = append(incomes, t.Deposit)
		} else if t.IsDebit() {
			s.ExpenseCount++
			s.TotalExpense = s.TotalExpense.Add(t.Withdrawn)
			expenses = append(expenses, t.Withdrawn)
		}
	}

	s.NetProfit = s.TotalIncome.Sub(s.TotalExpense)
	if s.TotalIncome.IsPositive() {
		s.BurnRate = s.TotalExpense.Div(s.TotalIncome).Mul(decimal.NewFromInt(100)).Round(2)
		s.BurnRateDefined = true
	}

	if s.IncomeCount > 0 {
		s.AvgIncome = s.TotalIncome.Div(decimal.NewFromInt(int64(s.IncomeCount))).Round(2)
		s.LargestIncome, s.SmallestIncome, s.MedianIncome = spread(incomes)
	}
	if s.ExpenseCount > 0 {
		s.AvgExpense = s.TotalExpense.Div(decimal.NewFromInt(int64(s.ExpenseCount))).Round(2)
		s.LargestExpense, s.SmallestExpense, s.MedianExpense = spread(expenses)
	}

	if !s.Start.IsZero() {
		s.PeriodDays = int(s.End.Sub(s.Start).Hours() / 24)
	}
	if s.PeriodDays > 0 {
		days := decimal.NewFromInt(int64(s.PeriodDays))
		s.AvgDailyIncome = s.TotalIncome.Div(days).Round(2)
		s.AvgDailyExpense = s.TotalExpense.Div(days).Round(2)
	}
	return s
}

// spread returns (max, min, median) of a non-empty value set without
// mutating the caller's slice.
func spread(vals []decimal.Decimal) (max, min, median decimal.Decimal) {
	sorted := make([]decimal.Decimal, len(vals))
	copy(sorted, vals)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].LessThan(sorted[b]) })

	min = sorted[0]
	max = sorted[len(sorted)-1]
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		median = sorted[mid]
	} else {
		median = sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2)).Round(2)
	}
	return max, min, median
}

// MonthRollup aggregates one calendar month.
type MonthRollup struct {
	Month   string // YYYY-MM
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	Count   int
}

// ByMonth returns per-month rollups in chronological order.
func ByMonth(txns []models.Transaction) []MonthRollup {
	byMonth := make(map[string]*MonthRollup)
	for _, t := range txns {
		key := t.Date.Format("2006-01")
		r, ok := byMonth[key]
		if !ok {
			r = &MonthRollup{Month: key}
			byMonth[key] = r
		}
		r.Count++
		r.Income = r.Income.Add(t.Deposit)
		r.Expense = r.Expense.Add(t.Withdrawn)
	}

	out := make([]MonthRollup, 0, len(byMonth))
	for _, r := range byMonth {
		r.Net = r.Income.Sub(r.Expense)
		out = append(out, *r)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Month < out[b].Month })
	return out
}

// ProfitableMonths counts months with positive net in the rollups.
func ProfitableMonths(rollups []MonthRollup) int {
	n := 0
	for _, r := range rollups {
		if r.Net.IsPositive() {
			n++
		}
	}
	return n
}

// WeekdayRollup aggregates one day of the week.
type WeekdayRollup struct {
	Day     time.Weekday
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	Count   int
}

// ByWeekday returns rollups for all seven weekdays, Monday first.
func ByWeekday(txns []models.Transaction) []WeekdayRollup {
	byDay := make(map[time.Weekday]*WeekdayRollup, 7)
	for _, t := range txns {
		d := t.Date.Weekday()
		r, ok := byDay[d]
		if !ok {
			r = &WeekdayRollup{Day: d}
			byDay[d] = r
		}
		r.Count++
		r.Income = r.Income.Add(t.Deposit)
		r.Expense = r.Expense.Add(t.Withdrawn)
	}

	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	out := make([]WeekdayRollup, 0, 7)
	for _, d := range order {
		r, ok := byDay[d]
		if !ok {
			r = &WeekdayRollup{Day: d}
		}
		r.Net = r.Income.Sub(r.Expense)
		out = append(out, *r)
	}
	return out
}

// TopIncome returns the n largest credits, ties broken by original order.
func TopIncome(txns []models.Transaction, n int) []models.Transaction {
	return topN(txns, n, models.Transaction.IsCredit)
}

// TopExpense returns the n largest debits, ties broken by original order.
func TopExpense(txns []models.Transaction, n int) []models.Transaction {
	return topN(txns, n, models.Transaction.IsDebit)
}

func topN(txns []models.Transaction, n int, keep func(models.Transaction) bool) []models.Transaction {
	var subset []models.Transaction
	for _, t := range txns {
		if keep(t) {
			subset = append(subset, t)
		}
	}
	sort.SliceStable(subset, func(a, b int) bool {
		return subset[a].Amount().GreaterThan(subset[b].Amount())
	})
	if n >= 0 && len(subset) > n {
		subset = subset[:n]
	}
	return subset
}

// CategoryTotal is the expense distribution of one cost head.
type CategoryTotal struct {
	Name   string
	Amount decimal.Decimal
	Count  int
}

// ByCategory returns the expense distribution in the categorizer's rule
// order, including zero-valued heads so the output shape is stable.
func ByCategory(txns []models.Transaction, c *category.Categorizer) []CategoryTotal {
	byName := make(map[string]*CategoryTotal)
	order := c.Categories()
	for _, name := range order {
		byName[name] = &CategoryTotal{Name: name}
	}

	for _, t := range txns {
		if !t.IsDebit() || t.Category == "" {
			continue
		}
		ct, ok := byName[t.Category]
		if !ok {
			// Category came from a different config; count it at the end.
			ct = &CategoryTotal{Name: t.Category}
			byName[t.Category] = ct
			order = append(order, t.Category)
		}
		ct.Count++
		ct.Amount = ct.Amount.Add(t.Withdrawn)
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// BalanceSeries returns (date, balance) points in dataset order for the
// balance-over-time chart. Balances are per source file and only globally
// meaningful within one file's run.
func BalanceSeries(txns []models.Transaction) ([]time.Time, []decimal.Decimal) {
	dates := make([]time.Time, 0, len(txns))
	balances := make([]decimal.Decimal, 0, len(txns))
	for _, t := range txns {
		dates = append(dates, t.Date)
		balances = append(balances, t.Balance)
	}
	return dates, balances
}
