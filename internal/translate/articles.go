package translate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gulcinmobile/newsengine/internal/news"
)

const workers = 4

// Articles translates title and description of the first max articles into
// to, waiting for all of them before returning. Order and TotalCount are
// kept; failed fields stay in English.
func Articles(ctx context.Context, tr Translator, list news.ArticleList, to string, max int) news.ArticleList {
	if tr == nil || to == "" || to == SourceLanguage || len(list.Articles) == 0 {
		return list
	}
	if max <= 0 || max > len(list.Articles) {
		max = len(list.Articles)
	}

	out := make([]news.Article, len(list.Articles))
	copy(out, list.Articles)

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := 0; i < max; i++ {
		a := &out[i]
		g.Go(func() error {
			a.Title = field(ctx, tr, a.Title, to)
			return nil
		})
		if a.Description != news.NoDescription {
			g.Go(func() error {
				a.Description = field(ctx, tr, a.Description, to)
				return nil
			})
		}
	}
	g.Wait()

	return news.ArticleList{TotalCount: list.TotalCount, Articles: out}
}

func field(ctx context.Context, tr Translator, text, to string) string {
	res, err := tr.Translate(ctx, text, SourceLanguage, to)
	if err != nil || res == "" {
		return text
	}
	return res
}
