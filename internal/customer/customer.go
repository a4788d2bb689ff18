// Package customer extracts canonical counterparty keys from narrations.
//
// HDFC narrations encode the counterparty differently per transfer rail:
//
//	UPI-SUBHASHCHANDERBALI-xyz@okhdfcbank-...      key = UPI-SUBHASHCHANDERBALI
//	NEFT CR-SBIN0000583-MRS RASHMI SAXENA-...      key = NEFT CR-SBIN0000583
//	IMPS-506016885554-REKHA MITTAL-SBIN-...        key = REKHA MITTAL
//
// Identification is heuristic: two narrations mapping to the same key are
// the same customer, and nothing beyond exact key equality is attempted.
package customer

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mayank2601/financial-dashboard/internal/models"
)

// Unidentified is returned when no rule yields a usable key.
const Unidentified = ""

const maxKeyLen = 50

// Rule is one pure extraction step: narration in, key (or "") out.
type Rule struct {
	Name    string
	Extract func(narration string) string
}

// Rules returns the ordered rule list; the first non-empty match wins.
func Rules() []Rule {
	return []Rule{
		{Name: "upi", Extract: prefixBeforeSecondDash("UPI")},
		{Name: "neft", Extract: prefixBeforeSecondDash("NEFT")},
		{Name: "imps", Extract: impsKey},
		{Name: "rtgs", Extract: prefixBeforeSecondDash("RTGS")},
		{Name: "generic", Extract: genericKey},
	}
}

// Identify runs the rules over a narration and returns the normalized
// counterparty key, or Unidentified.
func Identify(narration string) string {
	for _, rule := range Rules() {
		if key := normalize(rule.Extract(narration)); key != Unidentified {
			return key
		}
	}
	return Unidentified
}

// prefixBeforeSecondDash keys UPI/NEFT/RTGS narrations: everything before
// the second dash identifies the counterparty.
func prefixBeforeSecondDash(prefix string) func(string) string {
	return func(narration string) string {
		n := strings.TrimSpace(narration)
		if !strings.HasPrefix(strings.ToUpper(n), prefix) {
			return ""
		}
		first := strings.Index(n, "-")
		if first == -1 {
			return n
		}
		second := strings.Index(n[first+1:], "-")
		if second == -1 {
			return n
		}
		return n[:first+1+second]
	}
}

// impsKey keys IMPS narrations: the counterparty name sits between the
// second and third dash.
func impsKey(narration string) string {
	n := strings.TrimSpace(narration)
	if !strings.HasPrefix(strings.ToUpper(n), "IMPS") {
		return ""
	}
	parts := strings.SplitN(n, "-", 4)
	if len(parts) < 3 {
		return n
	}
	return parts[2]
}

var (
	longDigits = regexp.MustCompile(`\d{10,}`)
	longCodes  = regexp.MustCompile(`[A-Z0-9]{10,}`)
	handles    = regexp.MustCompile(`@\w+`)
)

// genericKey falls back to stripping reference noise from the narration
// and treating what remains as a name.
func genericKey(narration string) string {
	s := longDigits.ReplaceAllString(narration, "")
	s = longCodes.ReplaceAllString(s, "")
	s = handles.ReplaceAllString(s, "")
	return s
}

// normalize upper-cases, collapses whitespace and caps length on a rune
// boundary. Keys shorter than 3 runes carry no identity and are dropped.
func normalize(key string) string {
	key = strings.Join(strings.Fields(strings.ToUpper(key)), " ")
	key = strings.Trim(key, "-/ ")
	runes := []rune(key)
	if len(runes) > maxKeyLen {
		key = string(runes[:maxKeyLen])
	}
	if len(runes) < 3 {
		return Unidentified
	}
	return key
}

// Aggregate summarizes one customer's matched transactions.
type Aggregate struct {
	Key       string
	Count     int
	Total     decimal.Decimal
	Average   decimal.Decimal
	FirstSeen time.Time
	LastSeen  time.Time
	Repeat    bool
}

// Tag sets CustomerKey on every transaction with an identifiable
// counterparty and returns the per-customer aggregates, ordered by total
// descending (ties by key for determinism). Unidentified transactions are
// left untagged and excluded from the aggregates.
func Tag(txns []models.Transaction) []Aggregate {
	byKey := make(map[string]*Aggregate)
	var order []string

	for i := range txns {
		key := Identify(txns[i].Narration)
		if key == Unidentified {
			continue
		}
		txns[i].CustomerKey = key

		agg, ok := byKey[key]
		if !ok {
			agg = &Aggregate{Key: key, FirstSeen: txns[i].Date, LastSeen: txns[i].Date}
			byKey[key] = agg
			order = append(order, key)
		}
		agg.Count++
		agg.Total = agg.Total.Add(txns[i].Amount())
		if txns[i].Date.Before(agg.FirstSeen) {
			agg.FirstSeen = txns[i].Date
		}
		if txns[i].Date.After(agg.LastSeen) {
			agg.LastSeen = txns[i].Date
		}
	}

	out := make([]Aggregate, 0, len(order))
	for _, key := range order {
		agg := byKey[key]
		agg.Average = agg.Total.Div(decimal.NewFromInt(int64(agg.Count))).Round(2)
		agg.Repeat = agg.Count > 1
		out = append(out, *agg)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].Total.Equal(out[b].Total) {
			return out[a].Total.GreaterThan(out[b].Total)
		}
		return out[a].Key < out[b].Key
	})
	return out
}
