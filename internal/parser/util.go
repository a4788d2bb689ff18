package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// Leading DD/MM/YY or DD/MM/YYYY or DD-MM-YY.
	leadingDatePattern = regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`)
	// Amounts like 1,234.56 or 50000.00.
	amountPattern = regexp.MustCompile(`[\d,]+\.\d{2}`)
	// Cheque/UPI reference tokens: a long run of digits or a 10+ char
	// alphanumeric code standing alone.
	refPattern = regexp.MustCompile(`\b(\d{9,}|[A-Z0-9]{10,})\b`)
)

// ParseDate tries the configured layouts in order; the first parse wins.
// Two-digit years below 2000 roll forward a century, matching how HDFC
// prints DD/MM/YY.
func ParseDate(s string, layouts []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseAmount converts "1,234.56", "₹1,234.56" or "" to a decimal.
// Empty and dash-only strings mean zero, not an error.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	for _, sym := range []string{"₹", "£", "$", "€", ",", " ", " "} {
		s = strings.ReplaceAll(s, sym, "")
	}
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// extractLeadingDate returns the date token at the start of a line, or "".
func extractLeadingDate(line string) string {
	m := leadingDatePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return ""
	}
	return m[1]
}

// findAmounts returns all amount tokens on a line, left to right.
func findAmounts(line string) []string {
	return amountPattern.FindAllString(line, -1)
}

// stripAmounts removes the given amount tokens from the end of the line,
// leaving the narration text.
func stripAmounts(line string, amounts []string) string {
	for i := len(amounts) - 1; i >= 0; i-- {
		if idx := strings.LastIndex(line, amounts[i]); idx != -1 {
			line = strings.Trim(line[:idx], " \t,")
		}
	}
	return collapseSpaces(line)
}

// extractRef pulls a cheque/reference identifier out of the narration
// trailer, if one is present.
func extractRef(s string) string {
	return refPattern.FindString(s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isHeaderLine matches statement headers, footers and page-break artifacts
// that must never be treated as transaction rows.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "date") &&
		(strings.Contains(lower, "narration") || strings.Contains(lower, "description")) &&
		(strings.Contains(lower, "closing") || strings.Contains(lower, "balance") || strings.Contains(lower, "withdrawal")) {
		return true
	}
	for _, kw := range []string{
		"statement of account", "account branch", "page no",
		"statement summary", "opening balance", "closing balance",
		"generated on", "registered office", "continued",
	} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
