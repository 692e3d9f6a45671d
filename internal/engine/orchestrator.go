package engine

import (
	"context"
	"errors"
	"time"

	"github.com/gulcinmobile/newsengine/internal/diag"
	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/gulcinmobile/newsengine/internal/rss"
	"golang.org/x/sync/errgroup"
)

// Fetcher downloads a raw feed document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// SourceResult is the outcome of one source's fetch-and-parse pipeline.
type SourceResult struct {
	Source       rss.Source
	Articles     []news.Article
	UsedFallback bool
	Err          error
}

// Orchestrator runs one pipeline per source concurrently and joins them.
// A failing source never affects the others.
type Orchestrator struct {
	fetcher Fetcher
	parser  *rss.Parser
	sink    diag.Sink
	limit   int
}

func NewOrchestrator(f Fetcher, p *rss.Parser, sink diag.Sink, limit int) *Orchestrator {
	if limit < 1 {
		limit = 1
	}
	sink = diag.OrDiscard(sink)
	if p == nil {
		p = rss.NewParser(sink)
	}
	return &Orchestrator{fetcher: f, parser: p, sink: sink, limit: limit}
}

// Collect returns one result per source, in the order the sources were given,
// after every pipeline has finished.
func (o *Orchestrator) Collect(ctx context.Context, sources []rss.Source) []SourceResult {
	results := make([]SourceResult, len(sources))

	var g errgroup.Group
	g.SetLimit(o.limit)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = o.fetchSource(ctx, src)
			return nil
		})
	}
	g.Wait()

	return results
}

// FetchAll is Collect keyed by source name. Sources that produced nothing map
// to an empty slice.
func (o *Orchestrator) FetchAll(ctx context.Context, sources []rss.Source) map[string][]news.Article {
	return listsOf(o.Collect(ctx, sources))
}

func listsOf(results []SourceResult) map[string][]news.Article {
	out := make(map[string][]news.Article, len(results))
	for _, r := range results {
		if r.Articles == nil {
			r.Articles = []news.Article{}
		}
		out[r.Source.Name] = r.Articles
	}
	return out
}

// fetchSource tries the primary URL and, when that yields no articles for any
// reason, the fallback URL once.
func (o *Orchestrator) fetchSource(ctx context.Context, src rss.Source) SourceResult {
	articles, err := o.fetchOne(ctx, src, src.URL)
	if len(articles) > 0 || src.FallbackURL == "" {
		return SourceResult{Source: src, Articles: articles, Err: err}
	}

	o.emit(ctx, diag.Event{
		Kind:   diag.KindFetchFallback,
		Source: src.Name,
		URL:    src.FallbackURL,
		Err:    err,
	})
	fallback, fbErr := o.fetchOne(ctx, src, src.FallbackURL)
	if fbErr != nil && err != nil {
		fbErr = errors.Join(err, fbErr)
	}
	return SourceResult{Source: src, Articles: fallback, UsedFallback: true, Err: fbErr}
}

func (o *Orchestrator) fetchOne(ctx context.Context, src rss.Source, url string) ([]news.Article, error) {
	start := time.Now()
	o.emit(ctx, diag.Event{Kind: diag.KindFetchStart, Source: src.Name, URL: url})

	body, err := o.fetcher.Fetch(ctx, url)
	if err != nil {
		o.emit(ctx, diag.Event{
			Kind:   diag.KindFetchError,
			Source: src.Name,
			URL:    url,
			Dur:    time.Since(start),
			Err:    err,
		})
		return []news.Article{}, err
	}

	articles := o.parser.Parse(body, src)
	o.emit(ctx, diag.Event{
		Kind:   diag.KindFetchComplete,
		Source: src.Name,
		URL:    url,
		Count:  len(articles),
		Dur:    time.Since(start),
	})
	return articles, nil
}

func (o *Orchestrator) emit(ctx context.Context, e diag.Event) {
	e.Component = "orchestrator"
	e.RunID = RunID(ctx)
	o.sink.Emit(diag.Stamp(e))
}
