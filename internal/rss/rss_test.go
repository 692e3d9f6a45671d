package rss

import (
	"path/filepath"
	"testing"

	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())

	plan, ok := c.Plan(news.Tech)
	require.True(t, ok)
	require.Equal(t, 10, plan.Total())
	require.Equal(t, []string{"Wired", "TechCrunch", "The Verge"}, plan.BackfillOrder())

	srcs := c.SourcesFor(news.Tech)
	require.Len(t, srcs, 3)
	require.Equal(t, "TechCrunch", srcs[0].Name)
	require.Equal(t, "https://www.theverge.com/rss/front-page/index.xml", srcs[1].FallbackURL)

	_, ok = c.Plan(news.Sports)
	require.False(t, ok)
	require.Nil(t, c.SourcesFor(news.Sports))
}

func TestShippedCatalogMatchesDefault(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("..", "..", "configs", "sources.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultCatalog(), c)
}

func TestLoadCatalogOrDefaultMissingFile(t *testing.T) {
	c, err := LoadCatalogOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultCatalog(), c)
}

func TestParseCatalogDefaultsDialect(t *testing.T) {
	c, err := ParseCatalog([]byte(`
sources:
  - name: One
    url: https://one.example.com/feed
categories:
  tech:
    quotas: [{source: One, target: 2}]
`))
	require.NoError(t, err)
	require.Equal(t, DialectRSS, c.Sources[0].Dialect)
	require.Equal(t, []string{"One"}, c.Categories[news.Tech].BackfillOrder())
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "no sources", yaml: `sources: []`},
		{name: "unknown dialect", yaml: `
sources:
  - {name: A, url: https://a, dialect: json}`},
		{name: "duplicate", yaml: `
sources:
  - {name: A, url: https://a}
  - {name: A, url: https://b}`},
		{name: "missing url", yaml: `
sources:
  - {name: A}`},
		{name: "unknown plan source", yaml: `
sources:
  - {name: A, url: https://a}
categories:
  tech:
    quotas: [{source: B, target: 1}]`},
		{name: "source quoted twice", yaml: `
sources:
  - {name: A, url: https://a}
categories:
  tech:
    quotas: [{source: A, target: 2}, {source: A, target: 3}]`},
		{name: "zero quota", yaml: `
sources:
  - {name: A, url: https://a}
categories:
  tech:
    quotas: [{source: A, target: 0}]`},
		{name: "unknown category", yaml: `
sources:
  - {name: A, url: https://a}
categories:
  weather:
    quotas: [{source: A, target: 1}]`},
		{name: "backfill outside plan", yaml: `
sources:
  - {name: A, url: https://a}
  - {name: B, url: https://b}
categories:
  tech:
    quotas: [{source: A, target: 1}]
    backfill: [B]`},
		{name: "unknown field", yaml: `
sources:
  - {name: A, url: https://a, weight: 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}
