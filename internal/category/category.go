// Package category assigns debit transactions to cost heads.
package category

import (
	"strings"

	"github.com/Mayank2601/financial-dashboard/internal/config"
	"github.com/Mayank2601/financial-dashboard/internal/models"
)

// Other is the fallback cost head when no keyword matches.
const Other = "Other"

// Categorizer maps narrations to cost heads by case-insensitive keyword
// matching in a fixed rule order: the first category with any matching
// keyword wins, so a narration is never counted twice. Construct with New;
// the rule table is immutable afterwards.
type Categorizer struct {
	rules []rule
}

type rule struct {
	name     string
	keywords []string
}

// New builds a Categorizer from the config's ordered category table.
// Keywords are lower-cased once here.
func New(cfg *config.Config) *Categorizer {
	c := &Categorizer{rules: make([]rule, 0, len(cfg.Categories))}
	for _, cat := range cfg.Categories {
		r := rule{name: cat.Name, keywords: make([]string, 0, len(cat.Keywords))}
		for _, kw := range cat.Keywords {
			r.keywords = append(r.keywords, strings.ToLower(kw))
		}
		c.rules = append(c.rules, r)
	}
	return c
}

// Categories returns the cost head names in rule order, ending with Other.
func (c *Categorizer) Categories() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		out = append(out, r.name)
	}
	return append(out, Other)
}

// Categorize returns exactly one cost head for a narration. It is total:
// every input maps to a category, and identical inputs always agree.
func (c *Categorizer) Categorize(narration string) string {
	text := strings.ToLower(narration)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.name
			}
		}
	}
	return Other
}

// Tag sets Category on every debit transaction. Credits are not expenses
// and stay uncategorized.
func (c *Categorizer) Tag(txns []models.Transaction) {
	for i := range txns {
		if txns[i].IsDebit() {
			txns[i].Category = c.Categorize(txns[i].Narration)
		}
	}
}
