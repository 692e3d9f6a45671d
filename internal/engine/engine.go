// Package engine aggregates publisher feeds into balanced, classified article
// lists. Callers get a result for every request; failures degrade to an empty
// list and are reported through diagnostic events.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gulcinmobile/newsengine/internal/diag"
	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/gulcinmobile/newsengine/internal/rss"
)

// Searcher is a keyword-search news API used for categories without native
// feeds and as a last resort when native feeds produce nothing.
type Searcher interface {
	Search(ctx context.Context, cat news.Category) (news.ArticleList, error)
}

type Config struct {
	Catalog     *rss.Catalog
	Fetcher     Fetcher
	Search      Searcher // optional
	Sink        diag.Sink
	Concurrency int
}

type Engine struct {
	catalog    *rss.Catalog
	orch       *Orchestrator
	classifier *news.Classifier
	search     Searcher
	sink       diag.Sink
}

func New(cfg Config) *Engine {
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = rss.DefaultCatalog()
	}
	sink := diag.OrDiscard(cfg.Sink)
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = len(catalog.Sources)
	}
	return &Engine{
		catalog:    catalog,
		orch:       NewOrchestrator(cfg.Fetcher, rss.NewParser(sink), sink, concurrency),
		classifier: news.NewClassifier(),
		search:     cfg.Search,
		sink:       sink,
	}
}

// FetchTechNews returns the quota-balanced technology feed.
func (e *Engine) FetchTechNews(ctx context.Context) news.ArticleList {
	return e.FetchCategory(ctx, news.Tech)
}

// FetchGeneralNews returns disaster and world news, excluding anything that
// belongs to another section.
func (e *Engine) FetchGeneralNews(ctx context.Context) news.ArticleList {
	return e.FetchCategory(ctx, news.General)
}

// FetchAINews returns AI-related articles from the technology sources.
func (e *Engine) FetchAINews(ctx context.Context) news.ArticleList {
	return e.FetchCategory(ctx, news.AI)
}

// FetchCategory runs the pipeline for any category. It never fails; total
// failure is an empty list. Every call fetches afresh.
func (e *Engine) FetchCategory(ctx context.Context, cat news.Category) news.ArticleList {
	start := time.Now()
	ctx = WithRunID(ctx, uuid.NewString())

	var list news.ArticleList
	if plan, ok := e.catalog.Plan(cat); ok {
		list = e.aggregate(ctx, cat, plan)
		if list.TotalCount == 0 && e.search != nil {
			list = e.searchStage(ctx, cat)
		}
	} else {
		list = e.searchStage(ctx, cat)
	}

	kind := diag.KindAggregate
	if list.TotalCount == 0 {
		kind = diag.KindAggregateEmpty
	}
	e.emit(ctx, diag.Event{
		Kind:     kind,
		Category: string(cat),
		Count:    list.TotalCount,
		Dur:      time.Since(start),
	})
	return list
}

func (e *Engine) aggregate(ctx context.Context, cat news.Category, plan news.Plan) news.ArticleList {
	fetched := e.fetchStage(ctx, cat)
	classified := e.classifyStage(ctx, cat, plan, fetched.Lists)
	filled := e.backfillStage(ctx, cat, plan, classified.Lists, fetched.Lists)
	merged := e.mergeStage(ctx, cat, plan, filled.Lists)
	return finalize(merged.Articles)
}

func (e *Engine) searchStage(ctx context.Context, cat news.Category) news.ArticleList {
	if e.search == nil {
		return news.Empty()
	}
	start := time.Now()
	res, err := e.search.Search(ctx, cat)
	if err != nil {
		e.emit(ctx, diag.Event{
			Kind:     diag.KindSearchError,
			Category: string(cat),
			Dur:      time.Since(start),
			Err:      err,
		})
		return news.Empty()
	}
	e.emit(ctx, diag.Event{
		Kind:     diag.KindSearchComplete,
		Category: string(cat),
		Count:    len(res.Articles),
		Dur:      time.Since(start),
	})
	return finalize(res.Articles)
}

// finalize drops invalid entries, fills missing images with the source
// placeholder and wraps the result.
func finalize(articles []news.Article) news.ArticleList {
	out := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		if !a.Valid() {
			continue
		}
		if a.ImageURL == "" {
			a.ImageURL = news.PlaceholderImage(a.SourceName)
		}
		out = append(out, a)
	}
	return news.NewArticleList(out)
}

func (e *Engine) emit(ctx context.Context, ev diag.Event) {
	ev.Component = "engine"
	ev.RunID = RunID(ctx)
	e.sink.Emit(diag.Stamp(ev))
}

type runIDKey struct{}

// WithRunID tags ctx with the id of one aggregation run.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run id carried by ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
