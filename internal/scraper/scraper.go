// Package scraper pulls the readable body of an article page for the detail
// screen, using per-site selector cascades.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxContentLen  = 1800
	keepContentLen = 1600
)

// ErrNoContent means no selector produced readable paragraphs.
var ErrNoContent = errors.New("can't get content")

// ArticleContent is full article content
type ArticleContent struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	URL      string `json:"url"`
	ImageURL string `json:"image,omitempty"`
}

// Fetcher loads a page body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type site struct {
	host      string
	selectors []string
	minLen    int
	enough    int // stop after this many paragraphs
}

var sites = []site{
	{
		host:      "techcrunch.com",
		selectors: []string{".wp-block-post-content p", ".article-content p", ".entry-content p", "article p"},
		minLen:    10,
		enough:    1,
	},
	{
		host:      "theverge.com",
		selectors: []string{".duet--article--article-body-component p", ".c-entry-content p", "article p"},
		minLen:    10,
		enough:    1,
	},
	{
		host:      "wired.com",
		selectors: []string{".body__inner-container p", ".article__chunks p", "article p"},
		minLen:    10,
		enough:    1,
	},
}

var generic = site{
	selectors: []string{
		"article p",
		".article p",
		".content p",
		".post-content p",
		".entry-content p",
		"main p",
		"#content p",
		".text p",
		"p",
	},
	minLen: 20,
	enough: 3,
}

type Scraper struct {
	fetcher Fetcher
}

func New(f Fetcher) *Scraper {
	return &Scraper{fetcher: f}
}

// Extract gets the full text of the article at rawURL.
func (s *Scraper) Extract(ctx context.Context, rawURL string) (*ArticleContent, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid article url %q", rawURL)
	}

	body, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	content := cleanContent(paragraphs(doc, siteFor(u.Hostname())))
	if content == "" {
		return nil, ErrNoContent
	}

	return &ArticleContent{
		Title:    extractTitle(doc),
		Content:  content,
		URL:      rawURL,
		ImageURL: metaContent(doc, "og:image"),
	}, nil
}

func siteFor(host string) site {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	for _, s := range sites {
		if host == s.host || strings.HasSuffix(host, "."+s.host) {
			return s
		}
	}
	return generic
}

// paragraphs walks the cascade until a selector yields enough text.
func paragraphs(doc *goquery.Document, st site) []string {
	var out []string
	for _, selector := range st.selectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > st.minLen {
				out = append(out, text)
			}
		})
		if len(out) >= st.enough {
			break
		}
	}
	return out
}

func extractTitle(doc *goquery.Document) string {
	if t := metaContent(doc, "og:title"); t != "" {
		return t
	}
	selectors := []string{
		"h1",
		".article-title",
		".headline",
		".entry-title",
		"title",
	}

	for _, selector := range selectors {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}

	return ""
}

func metaContent(doc *goquery.Document, property string) string {
	v, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(v)
}

var junkIndicators = []string{
	"cookie", "newsletter", "sign up", "subscribe", "advertisement",
	"read more", "click here", "follow us", "all rights reserved",
}

// cleanContent drops boilerplate paragraphs, normalizes spacing and keeps
// whole paragraphs when the text is long.
func cleanContent(paragraphs []string) string {
	var kept []string
	seen := make(map[string]bool)
	for _, p := range paragraphs {
		p = strings.Join(strings.Fields(p), " ")
		if len(p) < 8 || seen[p] {
			continue
		}
		lower := strings.ToLower(p)
		junk := false
		for _, indicator := range junkIndicators {
			if strings.Contains(lower, indicator) {
				junk = true
				break
			}
		}
		if junk {
			continue
		}
		seen[p] = true
		kept = append(kept, p)
	}

	result := strings.Join(kept, "\n\n")
	if len(result) <= maxContentLen {
		return result
	}

	var selected []string
	total := 0
	for _, p := range kept {
		if total+len(p) >= keepContentLen {
			break
		}
		selected = append(selected, p)
		total += len(p) + 2
	}
	if len(selected) == 0 {
		return result
	}
	return strings.Join(selected, "\n\n")
}
