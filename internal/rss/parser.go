package rss

import (
	"fmt"
	"strings"

	"github.com/gulcinmobile/newsengine/internal/diag"
	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/mmcdole/gofeed"
)

// Parser turns raw feed text into articles. It is tolerant by construction:
// malformed entries are skipped and a broken document yields an empty slice.
type Parser struct {
	sink diag.Sink
}

func NewParser(sink diag.Sink) *Parser {
	return &Parser{sink: diag.OrDiscard(sink)}
}

// Parse never fails. The result is never nil.
func (p *Parser) Parse(body string, src Source) (out []news.Article) {
	out = []news.Article{}
	defer func() {
		if r := recover(); r != nil {
			p.sink.Emit(diag.Stamp(diag.Event{
				Kind:      diag.KindParseError,
				Component: "parser",
				Source:    src.Name,
				Err:       fmt.Errorf("parser panic: %v", r),
			}))
			out = []news.Article{}
		}
	}()

	var (
		st      strategy
		entries []string
	)
	for _, candidate := range strategiesFor(src.Dialect) {
		if entries = blocks(body, candidate.entryTag); len(entries) > 0 {
			st = candidate
			break
		}
	}

	if len(entries) == 0 {
		if strings.TrimSpace(body) == "" {
			return out
		}
		return p.parseStrict(body, src)
	}

	seen := make(map[string]bool, len(entries))
	for _, block := range entries {
		a, ok := st.article(block, src)
		if !ok || seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		out = append(out, a)
	}

	p.sink.Emit(diag.Stamp(diag.Event{
		Kind:      diag.KindParseComplete,
		Component: "parser",
		Source:    src.Name,
		Count:     len(out),
		Msg:       st.name,
	}))
	return out
}

// parseStrict hands documents without recognizable entry blocks (odd
// namespaces, JSON Feed) to gofeed.
func (p *Parser) parseStrict(body string, src Source) []news.Article {
	out := []news.Article{}
	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		p.sink.Emit(diag.Stamp(diag.Event{
			Kind:      diag.KindParseError,
			Component: "parser",
			Source:    src.Name,
			Err:       err,
		}))
		return out
	}

	seen := make(map[string]bool, len(feed.Items))
	for _, item := range feed.Items {
		a, ok := fromItem(item, src)
		if !ok || seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		out = append(out, a)
	}

	p.sink.Emit(diag.Stamp(diag.Event{
		Kind:      diag.KindParseStrict,
		Component: "parser",
		Source:    src.Name,
		Count:     len(out),
	}))
	return out
}

func fromItem(item *gofeed.Item, src Source) (news.Article, bool) {
	if item == nil {
		return news.Article{}, false
	}
	a := news.Article{
		Title:      cleanText(item.Title),
		URL:        strings.TrimSpace(item.Link),
		SourceName: src.Name,
	}
	if a.Title == "" || a.URL == "" {
		return news.Article{}, false
	}

	text := cleanText(item.Content)
	if text == "" {
		text = cleanText(item.Description)
	}
	a.Description = sanitizeDescription(text)

	switch {
	case item.Image != nil && item.Image.URL != "":
		a.ImageURL = item.Image.URL
	default:
		for _, enc := range item.Enclosures {
			if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
				a.ImageURL = enc.URL
				break
			}
		}
		if a.ImageURL == "" {
			if a.ImageURL = firstImgSrc(item.Content); a.ImageURL == "" {
				a.ImageURL = firstImgSrc(item.Description)
			}
		}
	}
	return a, true
}
