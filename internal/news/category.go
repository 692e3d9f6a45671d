package news

import (
	"fmt"
	"strings"
)

// Category is a news section shown to the user.
type Category string

const (
	General       Category = "general"
	Tech          Category = "tech"
	Political     Category = "political"
	Sports        Category = "sports"
	Business      Category = "business"
	Art           Category = "art"
	Entertainment Category = "entertainment"
	AI            Category = "ai"
)

// Categories lists every known category in menu order.
func Categories() []Category {
	return []Category{Tech, General, Political, Sports, Business, Art, Entertainment, AI}
}

// ParseCategory accepts a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Quota is the target number of articles drawn from one source.
type Quota struct {
	Source string `yaml:"source"`
	Target int    `yaml:"target"`
}

// Plan describes how per-source lists are blended for one category.
// Quotas are listed in concatenation order; Backfill names the order in which
// sources give up surplus articles when another source falls short.
type Plan struct {
	Quotas   []Quota  `yaml:"quotas"`
	Backfill []string `yaml:"backfill"`
	// Ceiling is the overall target used by classifier backfill passes.
	Ceiling int `yaml:"ceiling"`
}

// Total is the sum of all quota targets.
func (p Plan) Total() int {
	total := 0
	for _, q := range p.Quotas {
		total += q.Target
	}
	return total
}

// Target returns the quota for a source, or 0 if the source is not planned.
func (p Plan) Target(source string) int {
	for _, q := range p.Quotas {
		if q.Source == source {
			return q.Target
		}
	}
	return 0
}

// Sources returns the planned source names in concatenation order.
func (p Plan) Sources() []string {
	out := make([]string, 0, len(p.Quotas))
	for _, q := range p.Quotas {
		out = append(out, q.Source)
	}
	return out
}

// BackfillOrder returns the surplus priority, defaulting to concatenation order.
func (p Plan) BackfillOrder() []string {
	if len(p.Backfill) > 0 {
		return p.Backfill
	}
	return p.Sources()
}

// CeilingOrDefault returns the classifier ceiling, falling back to DefaultCeiling.
func (p Plan) CeilingOrDefault() int {
	if p.Ceiling > 0 {
		return p.Ceiling
	}
	return DefaultCeiling
}

// DefaultCeiling is the overall target of backfill passes.
const DefaultCeiling = 10
