package engine

import (
	"context"

	"github.com/gulcinmobile/newsengine/internal/diag"
	"github.com/gulcinmobile/newsengine/internal/news"
)

// Fetched is the output of the fetch stage.
type Fetched struct {
	Results []SourceResult
	Lists   map[string][]news.Article
}

// Classified holds the per-source lists that passed the category filter.
type Classified struct {
	Lists   map[string][]news.Article
	Matched int
}

// Backfilled holds the classified lists topped up from unfiltered articles.
type Backfilled struct {
	Lists map[string][]news.Article
	Added int
}

func (e *Engine) fetchStage(ctx context.Context, cat news.Category) Fetched {
	results := e.orch.Collect(ctx, e.catalog.SourcesFor(cat))
	return Fetched{Results: results, Lists: listsOf(results)}
}

// classifyStage applies the category vocabulary. Categories without a
// filter pass through untouched.
func (e *Engine) classifyStage(ctx context.Context, cat news.Category, plan news.Plan, lists map[string][]news.Article) Classified {
	var out map[string][]news.Article
	switch cat {
	case news.AI:
		out = e.classifier.FilterAI(lists)
	case news.General:
		out = e.classifier.FilterGeneral(lists, plan)
	default:
		return Classified{Lists: lists, Matched: news.Count(lists)}
	}

	c := Classified{Lists: out, Matched: news.Count(out)}
	e.emit(ctx, diag.Event{
		Kind:     diag.KindClassify,
		Category: string(cat),
		Count:    c.Matched,
	})
	return c
}

// backfillStage tops filtered categories up to the plan ceiling with
// articles that failed the filter, in backfill priority order. General news
// only accepts articles that belong to no other section.
func (e *Engine) backfillStage(ctx context.Context, cat news.Category, plan news.Plan, filtered, all map[string][]news.Article) Backfilled {
	if cat != news.AI && cat != news.General {
		return Backfilled{Lists: filtered}
	}

	lists, added := news.Backfill(filtered, all, plan.BackfillOrder(), plan.CeilingOrDefault(), e.classifier.Eligible(cat))
	if added > 0 {
		e.emit(ctx, diag.Event{
			Kind:     diag.KindBackfill,
			Category: string(cat),
			Count:    added,
		})
	}
	return Backfilled{Lists: lists, Added: added}
}

func (e *Engine) mergeStage(ctx context.Context, cat news.Category, plan news.Plan, lists map[string][]news.Article) news.Balanced {
	b := news.Balance(lists, plan)
	e.emit(ctx, diag.Event{
		Kind:     diag.KindMerge,
		Category: string(cat),
		Count:    len(b.Articles),
	})
	return b
}
