package classification

import (
	"sort"
	"strings"
	"sync"
)

// Category labels form a closed vocabulary. The classifier never returns a
// label outside this set.
const (
	CategoryInjectable      = "Injectable"
	CategoryTablet          = "Tablet"
	CategoryCapsule         = "Capsule"
	CategoryLiquid          = "Liquid"
	CategoryTopical         = "Topical"
	CategoryDrops           = "Drops"
	CategoryRespiratory     = "Respiratory"
	CategoryPowder          = "Powder"
	CategoryGeneralMedicine = "General Medicine"
)

// Rule is one keyword rule. Rules are evaluated in ascending priority order
// and the first match wins.
type Rule struct {
	ID       int64  `json:"id"`
	Priority int    `json:"priority"`
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	Active   bool   `json:"active"`
}

// CategoryClassifier derives a coarse category from free-text medication
// fields. It is a best-effort heuristic, not a validated clinical category.
// The rule table is data so it can be tuned without a redeploy.
type CategoryClassifier struct {
	mu    sync.RWMutex
	rules []Rule
}

// DefaultRules returns the built-in rule table, used to seed the database
// and as the fallback when no rules are configured.
func DefaultRules() []Rule {
	return []Rule{
		{Priority: 10, Keyword: "injection", Category: CategoryInjectable, Active: true},
		{Priority: 20, Keyword: "inj ", Category: CategoryInjectable, Active: true},
		{Priority: 30, Keyword: "vial", Category: CategoryInjectable, Active: true},
		{Priority: 40, Keyword: "ampoule", Category: CategoryInjectable, Active: true},
		{Priority: 50, Keyword: "syringe", Category: CategoryInjectable, Active: true},
		{Priority: 60, Keyword: "tablet", Category: CategoryTablet, Active: true},
		{Priority: 70, Keyword: "tab ", Category: CategoryTablet, Active: true},
		{Priority: 80, Keyword: "capsule", Category: CategoryCapsule, Active: true},
		{Priority: 90, Keyword: "cap ", Category: CategoryCapsule, Active: true},
		{Priority: 100, Keyword: "syrup", Category: CategoryLiquid, Active: true},
		{Priority: 110, Keyword: "suspension", Category: CategoryLiquid, Active: true},
		{Priority: 120, Keyword: "solution", Category: CategoryLiquid, Active: true},
		{Priority: 130, Keyword: "elixir", Category: CategoryLiquid, Active: true},
		{Priority: 140, Keyword: "ointment", Category: CategoryTopical, Active: true},
		{Priority: 150, Keyword: "cream", Category: CategoryTopical, Active: true},
		{Priority: 160, Keyword: "gel", Category: CategoryTopical, Active: true},
		{Priority: 170, Keyword: "lotion", Category: CategoryTopical, Active: true},
		{Priority: 180, Keyword: "drop", Category: CategoryDrops, Active: true},
		{Priority: 190, Keyword: "inhaler", Category: CategoryRespiratory, Active: true},
		{Priority: 200, Keyword: "respule", Category: CategoryRespiratory, Active: true},
		{Priority: 210, Keyword: "nebuliz", Category: CategoryRespiratory, Active: true},
		{Priority: 220, Keyword: "powder", Category: CategoryPowder, Active: true},
		{Priority: 230, Keyword: "sachet", Category: CategoryPowder, Active: true},
	}
}

// NewCategoryClassifier creates a classifier over the given rules. Passing
// nil installs the built-in defaults.
func NewCategoryClassifier(rules []Rule) *CategoryClassifier {
	c := &CategoryClassifier{}
	c.SetRules(rules)
	return c
}

// SetRules replaces the rule table. Inactive rules are kept but ignored
// during derivation. Rules are ordered by priority.
func (c *CategoryClassifier) SetRules(rules []Rule) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	c.mu.Lock()
	c.rules = sorted
	c.mu.Unlock()
}

// Rules returns a copy of the current rule table.
func (c *CategoryClassifier) Rules() []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Derive returns one category label for the given free-text fields. The
// lower-cased concatenation of name, combination and form is scanned against
// the ordered rules; the first matching keyword wins and the catch-all is
// General Medicine.
func (c *CategoryClassifier) Derive(name, combination, form string) string {
	// Trailing space keeps word-boundary keywords like "tab " matching at
	// the end of the text.
	text := strings.ToLower(name+" "+combination+" "+form) + " "

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, rule := range c.rules {
		if !rule.Active || rule.Keyword == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(rule.Keyword)) {
			return rule.Category
		}
	}

	return CategoryGeneralMedicine
}
