package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gulcinmobile/newsengine/internal/rss"
	"github.com/stretchr/testify/require"
)

type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, url string) (string, error) {
	body, ok := m[url]
	if !ok {
		return "", errors.New("not found")
	}
	return body, nil
}

const vergePage = `<html><head>
<title>Page title | The Verge</title>
<meta property="og:title" content="A new phone arrives">
<meta property="og:image" content="https://cdn.example.com/phone.jpg">
</head><body>
<h1>A new phone arrives</h1>
<div class="duet--article--article-body-component"><p>The phone ships next month with a larger screen.</p></div>
<div class="duet--article--article-body-component"><p>Preorders open today in most regions.</p></div>
<aside><p>Sign up for the newsletter to get more stories like this one.</p></aside>
<article><p>This paragraph only matters for the generic cascade.</p></article>
</body></html>`

func TestExtractSiteCascade(t *testing.T) {
	s := New(mapFetcher{"https://www.theverge.com/phone": vergePage})

	got, err := s.Extract(context.Background(), "https://www.theverge.com/phone")
	require.NoError(t, err)
	require.Equal(t, &ArticleContent{
		Title:    "A new phone arrives",
		Content:  "The phone ships next month with a larger screen.\n\nPreorders open today in most regions.",
		URL:      "https://www.theverge.com/phone",
		ImageURL: "https://cdn.example.com/phone.jpg",
	}, got)
}

func TestExtractGenericFallsThroughSelectors(t *testing.T) {
	page := `<html><head><title>Fallback title</title></head><body><main>
<p>First paragraph that is long enough to keep.</p>
<p>Short.</p>
<p>Second paragraph that is long enough to keep.</p>
<p>Click here to follow us on every network.</p>
<p>Third paragraph that is long enough to keep.</p>
</main></body></html>`
	s := New(mapFetcher{"https://example.org/a": page})

	got, err := s.Extract(context.Background(), "https://example.org/a")
	require.NoError(t, err)
	require.Equal(t, "Fallback title", got.Title)
	require.Equal(t, strings.Join([]string{
		"First paragraph that is long enough to keep.",
		"Second paragraph that is long enough to keep.",
		"Third paragraph that is long enough to keep.",
	}, "\n\n"), got.Content)
	require.Empty(t, got.ImageURL)
}

func TestExtractErrors(t *testing.T) {
	s := New(mapFetcher{"https://example.org/empty": "<html><body><p>tiny</p></body></html>"})

	_, err := s.Extract(context.Background(), "https://example.org/empty")
	require.ErrorIs(t, err, ErrNoContent)

	_, err = s.Extract(context.Background(), "https://example.org/missing")
	require.Error(t, err)

	_, err = s.Extract(context.Background(), "ftp://example.org/x")
	require.Error(t, err)
}

func TestExtractThroughFeedFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<article><p>Served over HTTP with enough words to count.</p></article>`))
	}))
	defer srv.Close()

	f := rss.NewFetcher(rss.FetcherConfig{ConnectTimeout: time.Second, ReadTimeout: time.Second})
	got, err := New(f).Extract(context.Background(), srv.URL+"/story")
	require.NoError(t, err)
	require.Equal(t, "Served over HTTP with enough words to count.", got.Content)
}

func TestCleanContentKeepsWholeParagraphs(t *testing.T) {
	para := strings.Repeat("word ", 100)
	in := []string{para, para + "a", para + "b", para + "c", para + "d"}
	out := cleanContent(in)
	require.Less(t, len(out), keepContentLen)
	require.Len(t, strings.Split(out, "\n\n"), 2)
}

func TestSiteFor(t *testing.T) {
	require.Equal(t, "techcrunch.com", siteFor("techcrunch.com").host)
	require.Equal(t, "wired.com", siteFor("www.wired.com").host)
	require.Equal(t, "", siteFor("notwired.com").host)
}
