// Package search queries the GNews keyword-search API. It backs categories
// that have no publisher feeds and serves as a last resort when feeds fail.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/gulcinmobile/newsengine/internal/ratelimit"
	"github.com/gulcinmobile/newsengine/internal/retry"
)

const (
	DefaultBaseURL = "https://gnews.io/api/v4"
	// Provider is the rate limiter budget name.
	Provider = "gnews"
	// DefaultSourceName labels results whose publisher is unknown.
	DefaultSourceName = "GNews"
)

// ErrNoAPIKey means the client was built without a token.
var ErrNoAPIKey = errors.New("gnews api key is not configured")

var queries = map[news.Category]string{
	news.Tech:          "artificial intelligence OR robotics OR technology invention",
	news.General:       "world news OR breaking news",
	news.Political:     "politics OR government OR election",
	news.Sports:        "sports OR football OR basketball OR tennis OR olympics",
	news.Business:      "business OR economy OR finance OR stock market",
	news.Art:           "art OR exhibition OR museum OR painting OR sculpture",
	news.Entertainment: "celebrity OR entertainment OR movie OR music OR fashion",
	news.AI:            "artificial intelligence OR machine learning OR OpenAI",
}

// Query returns the search expression used for a category.
func Query(cat news.Category) (string, bool) {
	q, ok := queries[cat]
	return q, ok
}

type Config struct {
	APIKey     string
	BaseURL    string
	Lang       string // default "en"
	Max        int    // default 10
	HTTPClient *http.Client
	Limiter    *ratelimit.Limiter
	Retry      retry.RetryConfig
}

type GNews struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *GNews {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}
	if cfg.Max <= 0 {
		cfg.Max = 10
	}
	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry = retry.RetryConfig{MaxAttempts: 2, Delay: time.Second, Backoff: true}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &GNews{cfg: cfg, client: client}
}

type gnewsResponse struct {
	TotalArticles int `json:"totalArticles"`
	Articles      []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search runs the category query. Results keep the API's order.
func (g *GNews) Search(ctx context.Context, cat news.Category) (news.ArticleList, error) {
	if g.cfg.APIKey == "" {
		return news.Empty(), ErrNoAPIKey
	}
	q, ok := Query(cat)
	if !ok {
		return news.Empty(), fmt.Errorf("no search query for category %q", cat)
	}
	if g.cfg.Limiter != nil {
		if err := g.cfg.Limiter.Use(ctx, Provider); err != nil {
			return news.Empty(), err
		}
	}

	var resp gnewsResponse
	err := retry.WithRetry(ctx, g.cfg.Retry, func() error {
		r, err := g.do(ctx, q)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return news.Empty(), fmt.Errorf("gnews search %s: %w", cat, err)
	}

	articles := make([]news.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		article := news.Article{
			Title:       strings.TrimSpace(a.Title),
			Description: strings.TrimSpace(a.Description),
			URL:         strings.TrimSpace(a.URL),
			ImageURL:    strings.TrimSpace(a.Image),
			SourceName:  strings.TrimSpace(a.Source.Name),
		}
		if !article.Valid() {
			continue
		}
		if article.Description == "" {
			article.Description = news.NoDescription
		}
		if article.SourceName == "" {
			article.SourceName = DefaultSourceName
		}
		articles = append(articles, article)
	}
	return news.NewArticleList(articles), nil
}

func (g *GNews) do(ctx context.Context, q string) (gnewsResponse, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("lang", g.cfg.Lang)
	params.Set("max", strconv.Itoa(g.cfg.Max))
	params.Set("token", g.cfg.APIKey)

	var out gnewsResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return out, retry.Permanent(g.redact(err))
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return out, g.redact(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return out, fmt.Errorf("gnews returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return out, retry.Permanent(fmt.Errorf("gnews returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, retry.Permanent(fmt.Errorf("decode gnews response: %w", err))
	}
	return out, nil
}

// redact removes the API token from errors that quote the request URL.
func (g *GNews) redact(err error) error {
	var ue *url.Error
	if g.cfg.APIKey != "" && errors.As(err, &ue) {
		ue.URL = strings.ReplaceAll(ue.URL, url.QueryEscape(g.cfg.APIKey), "REDACTED")
	}
	return err
}
