// Package app builds the engine and its collaborators from configuration and
// runs the CLI and HTTP modes.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gulcinmobile/newsengine/internal/api"
	"github.com/gulcinmobile/newsengine/internal/cache"
	"github.com/gulcinmobile/newsengine/internal/config"
	"github.com/gulcinmobile/newsengine/internal/diag"
	"github.com/gulcinmobile/newsengine/internal/engine"
	"github.com/gulcinmobile/newsengine/internal/gemini"
	"github.com/gulcinmobile/newsengine/internal/logger"
	"github.com/gulcinmobile/newsengine/internal/metrics"
	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/gulcinmobile/newsengine/internal/ratelimit"
	"github.com/gulcinmobile/newsengine/internal/retry"
	"github.com/gulcinmobile/newsengine/internal/rss"
	"github.com/gulcinmobile/newsengine/internal/scraper"
	"github.com/gulcinmobile/newsengine/internal/search"
	"github.com/gulcinmobile/newsengine/internal/storage"
	"github.com/gulcinmobile/newsengine/internal/translate"
)

type App struct {
	cfg        *config.Config
	engine     *engine.Engine
	translator translate.Translator // nil when no backend is configured
	scraper    *scraper.Scraper
	prefs      *storage.Prefs
	limiter    *ratelimit.Limiter
	metrics    *metrics.Metrics
	log        *slog.Logger
	closers    []func()
}

// New wires everything described by cfg. Missing API keys disable the
// matching feature instead of failing.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New("app")

	catalog, err := rss.LoadCatalogOrDefault(cfg.SourcesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}

	a := &App{
		cfg:     cfg,
		metrics: metrics.Global,
		log:     log,
	}
	sink := diag.Multi{diag.NewLogSink(logger.New("engine")), a.metrics}

	a.limiter = ratelimit.New(
		ratelimit.Budget{Name: search.Provider, Daily: cfg.GNewsDailyLimit, PerSecond: 1, Burst: 1},
		ratelimit.Budget{Name: translate.Microsoft, Daily: cfg.TranslateDailyLimit, PerSecond: 10, Burst: 10},
		ratelimit.Budget{Name: gemini.Name, Daily: cfg.TranslateDailyLimit, PerSecond: 1, Burst: 2},
		ratelimit.Budget{Name: translate.OpenAI, Daily: cfg.TranslateDailyLimit, PerSecond: 1, Burst: 2},
	)
	retryCfg := retry.RetryConfig{MaxAttempts: cfg.RetryAttempts, Delay: cfg.RetryDelay, Backoff: true}

	fetcher := rss.NewFetcher(rss.FetcherConfig{
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
		UserAgent:      cfg.UserAgent,
	})

	engCfg := engine.Config{
		Catalog:     catalog,
		Fetcher:     fetcher,
		Sink:        sink,
		Concurrency: cfg.FetchConcurrency,
	}
	if cfg.GNewsAPIKey != "" {
		engCfg.Search = search.New(search.Config{
			APIKey:  cfg.GNewsAPIKey,
			Limiter: a.limiter,
			Retry:   retryCfg,
		})
	} else {
		log.Info("GNEWS_API_KEY not set, keyword search disabled")
	}
	a.engine = engine.New(engCfg)
	a.scraper = scraper.New(fetcher)

	a.translator = a.buildTranslator(ctx, sink, retryCfg)

	a.prefs = storage.NewPrefs(cfg.PrefsPath)
	if err := a.prefs.Load(); err != nil {
		log.Warn("settings not loaded, using defaults", slog.Any("err", err))
	}

	log.Info("app ready",
		slog.Int("sources", len(catalog.Sources)),
		slog.Bool("search", engCfg.Search != nil),
		slog.Bool("translation", a.translator != nil),
		slog.String("language", a.prefs.Language()),
	)
	return a, nil
}

func (a *App) buildTranslator(ctx context.Context, sink diag.Sink, retryCfg retry.RetryConfig) translate.Translator {
	var backends []translate.Translator
	if a.cfg.TranslatorKey != "" {
		backends = append(backends, translate.NewMicrosoft(translate.MicrosoftConfig{
			Key:    a.cfg.TranslatorKey,
			Region: a.cfg.TranslatorRegion,
			Retry:  retryCfg,
		}))
	}
	if a.cfg.GeminiAPIKey != "" {
		g, err := gemini.NewClient(ctx, a.cfg.GeminiAPIKey)
		if err != nil {
			a.log.Warn("gemini disabled", slog.Any("err", err))
		} else {
			backends = append(backends, g)
			a.closers = append(a.closers, g.Close)
		}
	}
	if a.cfg.OpenAIAPIKey != "" {
		backends = append(backends, translate.NewOpenAI(a.cfg.OpenAIAPIKey, ""))
	}
	if len(backends) == 0 {
		a.log.Info("no translation backend configured, articles stay in English")
		return nil
	}

	c := cache.New[string](time.Hour)
	a.closers = append(a.closers, c.Stop)
	chain := translate.NewChain(a.limiter, sink, backends...)
	return translate.NewCached(chain, c, a.cfg.TranslateCacheTTL, a.limiter, backends[0].Name())
}

// Close releases API clients and background goroutines.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) Engine() *engine.Engine { return a.engine }

func (a *App) Prefs() *storage.Prefs { return a.prefs }

// Fetch runs one category and translates the result into lang. An empty lang
// means the stored preference.
func (a *App) Fetch(ctx context.Context, cat news.Category, lang string) news.ArticleList {
	if lang == "" {
		lang = a.prefs.Language()
	}
	list := a.engine.FetchCategory(ctx, cat)
	if a.translator == nil {
		return list
	}
	return translate.Articles(ctx, a.translator, list, lang, a.cfg.TranslateMaxArticles)
}

// Stats merges engine metrics with external API usage.
func (a *App) Stats() map[string]any {
	stats := a.metrics.GetStats()
	for k, v := range a.limiter.GetStats() {
		stats["api_"+k] = v
	}
	return stats
}

// Handler is the HTTP API.
func (a *App) Handler() http.Handler {
	return api.NewRouter(api.Deps{
		News:         a.engine,
		Articles:     a.scraper,
		Prefs:        a.prefs,
		Translator:   a.translator,
		MaxTranslate: a.cfg.TranslateMaxArticles,
		Stats:        a.Stats,
		Healthy:      a.metrics.Healthy,
		Log:          logger.New("api"),
	})
}

// Serve runs the HTTP API until ctx is canceled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("api server starting", slog.String("addr", a.cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
