package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gulcinmobile/newsengine/internal/config"
	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/stretchr/testify/require"
)

func feed(n int, source string) string {
	var b strings.Builder
	b.WriteString(`<rss version="2.0"><channel><title>` + source + `</title>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<item><title>%s story %d</title><link>https://%s.example.com/%d</link><description>Chip makers report results %d.</description></item>`,
			source, i, strings.ToLower(source), i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func testConfig(t *testing.T, feedURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	catalog := fmt.Sprintf(`sources:
  - name: A
    url: %[1]s/a
  - name: B
    url: %[1]s/b
categories:
  tech:
    quotas:
      - source: A
        target: 2
      - source: B
        target: 2
`, feedURL)
	path := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o644))

	return &config.Config{
		SourcesConfigPath:    path,
		ConnectTimeout:       2 * time.Second,
		ReadTimeout:          2 * time.Second,
		UserAgent:            config.DefaultUserAgent,
		FetchConcurrency:     2,
		TranslateMaxArticles: 10,
		TranslateCacheTTL:    time.Minute,
		PrefsPath:            filepath.Join(dir, "settings.json"),
		HTTPAddr:             "127.0.0.1:0",
		RetryAttempts:        1,
		RetryDelay:           time.Millisecond,
	}
}

func TestFetchWithoutTranslation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a":
			w.Write([]byte(feed(3, "A")))
		case "/b":
			w.Write([]byte(feed(3, "B")))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	a, err := New(context.Background(), testConfig(t, srv.URL))
	require.NoError(t, err)
	defer a.Close()

	list := a.Fetch(context.Background(), news.Tech, "")
	require.Equal(t, 4, list.TotalCount)
	require.Equal(t, "A story 1", list.Articles[0].Title)
	require.Equal(t, "B story 1", list.Articles[2].Title)

	stats := a.Stats()
	require.Contains(t, stats, "api_gnews_used")
	require.Contains(t, stats, "aggregations")
}

func TestHandlerServesNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feed(2, strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/")))))
	}))
	defer srv.Close()

	a, err := New(context.Background(), testConfig(t, srv.URL))
	require.NoError(t, err)
	defer a.Close()

	api := httptest.NewServer(a.Handler())
	defer api.Close()

	resp, err := http.Get(api.URL + "/news/tech?lang=en")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServeStopsOnCancel(t *testing.T) {
	a, err := New(context.Background(), testConfig(t, "http://127.0.0.1:1"))
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestFormatText(t *testing.T) {
	list := news.NewArticleList([]news.Article{
		{Title: "One", Description: "First.", URL: "https://x/1", SourceName: "Wired"},
		{Title: "Two", Description: news.NoDescription, URL: "https://x/2", SourceName: "BBC"},
	})
	out := FormatText(news.Tech, list, 0)
	require.Contains(t, out, "TECH news (2)")
	require.Contains(t, out, "1. One - Wired\n   First.\n   https://x/1\n")
	require.Contains(t, out, "2. Two - BBC\n   https://x/2\n")

	require.Contains(t, FormatText(news.AI, news.Empty(), 5), "No articles available.")
}

func TestPreviewCutsAtSentence(t *testing.T) {
	s := strings.Repeat("a", 150) + ". " + strings.Repeat("b", 100)
	require.Equal(t, strings.Repeat("a", 150)+".", preview(s))
	require.Equal(t, strings.Repeat("c", 200)+"...", preview(strings.Repeat("c", 250)))
}
