package rss

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gulcinmobile/newsengine/internal/news"
	"gopkg.in/yaml.v3"
)

// Dialect tells the parser which feed format a source publishes.
type Dialect string

const (
	// DialectRSS sources are parsed as RSS 2.0 only.
	DialectRSS Dialect = "rss"
	// DialectAtomOrRSS sources are probed for Atom entries first, then RSS items.
	DialectAtomOrRSS Dialect = "atom-or-rss"
)

// Source describes one publisher feed.
type Source struct {
	Name        string  `yaml:"name"`
	URL         string  `yaml:"url"`
	FallbackURL string  `yaml:"fallback_url,omitempty"`
	Dialect     Dialect `yaml:"dialect"`
}

// Catalog is the YAML config structure:
//
//	sources:
//	  - name: TechCrunch
//	    url: https://techcrunch.com/feed/
//	    dialect: rss
//	categories:
//	  tech:
//	    quotas: [{source: TechCrunch, target: 3}, ...]
//	    backfill: [Wired, TechCrunch, The Verge]
type Catalog struct {
	Sources    []Source                    `yaml:"sources"`
	Categories map[news.Category]news.Plan `yaml:"categories"`
}

// LoadCatalog reads the source catalog from a YAML file. A missing file is
// reported with fs.ErrNotExist so callers can fall back to DefaultCatalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// LoadCatalogOrDefault is LoadCatalog, except that a missing file yields the
// built-in catalog.
func LoadCatalogOrDefault(path string) (*Catalog, error) {
	c, err := LoadCatalog(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultCatalog(), nil
	}
	return c, err
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range c.Sources {
		if c.Sources[i].Dialect == "" {
			c.Sources[i].Dialect = DialectRSS
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("catalog has no sources")
	}
	seen := make(map[string]bool, len(c.Sources))
	for _, s := range c.Sources {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return errors.New("source without a name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate source %q", name)
		}
		seen[name] = true
		if s.URL == "" {
			return fmt.Errorf("source %q has no url", name)
		}
		switch s.Dialect {
		case DialectRSS, DialectAtomOrRSS:
		default:
			return fmt.Errorf("source %q: unknown dialect %q", name, s.Dialect)
		}
	}
	for cat, plan := range c.Categories {
		if _, err := news.ParseCategory(string(cat)); err != nil {
			return err
		}
		if len(plan.Quotas) == 0 {
			return fmt.Errorf("category %s: no quotas", cat)
		}
		planned := make(map[string]bool, len(plan.Quotas))
		for _, q := range plan.Quotas {
			if !seen[q.Source] {
				return fmt.Errorf("category %s: unknown source %q", cat, q.Source)
			}
			if planned[q.Source] {
				return fmt.Errorf("category %s: source %q has two quotas", cat, q.Source)
			}
			planned[q.Source] = true
			if q.Target <= 0 {
				return fmt.Errorf("category %s: quota for %q must be positive", cat, q.Source)
			}
		}
		for _, name := range plan.Backfill {
			if plan.Target(name) == 0 {
				return fmt.Errorf("category %s: backfill names unplanned source %q", cat, name)
			}
		}
	}
	return nil
}

// Source looks a source up by name.
func (c *Catalog) Source(name string) (Source, bool) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// Plan returns the quota plan of a category, if it has native feeds.
func (c *Catalog) Plan(cat news.Category) (news.Plan, bool) {
	p, ok := c.Categories[cat]
	return p, ok
}

// SourcesFor resolves the sources a category's plan draws from, in plan order.
func (c *Catalog) SourcesFor(cat news.Category) []Source {
	plan, ok := c.Plan(cat)
	if !ok {
		return nil
	}
	out := make([]Source, 0, len(plan.Quotas))
	for _, name := range plan.Sources() {
		if s, ok := c.Source(name); ok {
			out = append(out, s)
		}
	}
	return out
}

// DefaultCatalog mirrors configs/sources.yaml.
func DefaultCatalog() *Catalog {
	techPlan := news.Plan{
		Quotas: []news.Quota{
			{Source: "TechCrunch", Target: 3},
			{Source: "The Verge", Target: 3},
			{Source: "Wired", Target: 4},
		},
		Backfill: []string{"Wired", "TechCrunch", "The Verge"},
		Ceiling:  news.DefaultCeiling,
	}
	return &Catalog{
		Sources: []Source{
			{Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Dialect: DialectRSS},
			{
				Name:        "The Verge",
				URL:         "https://www.theverge.com/rss/index.xml",
				FallbackURL: "https://www.theverge.com/rss/front-page/index.xml",
				Dialect:     DialectAtomOrRSS,
			},
			{
				Name:        "Wired",
				URL:         "https://www.wired.com/feed/rss",
				FallbackURL: "https://www.wired.com/feed/tag/ai/latest/rss",
				Dialect:     DialectAtomOrRSS,
			},
			{
				Name:        "BBC World",
				URL:         "https://feeds.bbci.co.uk/news/world/rss.xml",
				FallbackURL: "https://feeds.bbci.co.uk/news/rss.xml",
				Dialect:     DialectRSS,
			},
			{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Dialect: DialectRSS},
			{Name: "The Guardian", URL: "https://www.theguardian.com/world/rss", Dialect: DialectRSS},
		},
		Categories: map[news.Category]news.Plan{
			news.Tech: techPlan,
			news.AI:   techPlan,
			news.General: {
				Quotas: []news.Quota{
					{Source: "BBC World", Target: 3},
					{Source: "Al Jazeera", Target: 3},
					{Source: "The Guardian", Target: 4},
				},
				Backfill: []string{"The Guardian", "BBC World", "Al Jazeera"},
				Ceiling:  news.DefaultCeiling,
			},
		},
	}
}
