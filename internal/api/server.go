// Package api exposes the engine to a UI client over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gulcinmobile/newsengine/internal/news"
	"github.com/gulcinmobile/newsengine/internal/scraper"
	"github.com/gulcinmobile/newsengine/internal/storage"
	"github.com/gulcinmobile/newsengine/internal/translate"
)

// NewsSource produces the list for a category.
type NewsSource interface {
	FetchCategory(ctx context.Context, cat news.Category) news.ArticleList
}

// Extractor loads the body of a single article.
type Extractor interface {
	Extract(ctx context.Context, url string) (*scraper.ArticleContent, error)
}

// Preferences stores the reader's language.
type Preferences interface {
	Language() string
	SetLanguage(code string) error
}

type Deps struct {
	News         NewsSource
	Articles     Extractor
	Prefs        Preferences
	Translator   translate.Translator // nil disables translation
	MaxTranslate int
	Stats        func() map[string]any
	Healthy      func() bool
	Log          *slog.Logger
}

type server struct {
	Deps
}

type errorResponse struct {
	Error string `json:"error"`
}

type languageResponse struct {
	Language  string   `json:"language"`
	Supported []string `json:"supported"`
}

// NewRouter builds the HTTP handler.
func NewRouter(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	s := &server{Deps: d}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/news/{category}", s.handleNews)
	r.Get("/article", s.handleArticle)
	r.Get("/settings/language", s.handleGetLanguage)
	r.Put("/settings/language", s.handlePutLanguage)
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Healthy != nil && !s.Healthy() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	stats := map[string]any{}
	if s.Stats != nil {
		stats = s.Stats()
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *server) handleNews(w http.ResponseWriter, r *http.Request) {
	cat, err := news.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	lang, ok := s.language(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported language " + lang})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	list := s.News.FetchCategory(ctx, cat)
	if s.Translator != nil {
		list = translate.Articles(ctx, s.Translator, list, lang, s.MaxTranslate)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *server) handleArticle(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}
	lang, ok := s.language(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported language " + lang})
		return
	}
	if s.Articles == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "article extraction is disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 45*time.Second)
	defer cancel()

	content, err := s.Articles.Extract(ctx, raw)
	switch {
	case errors.Is(err, scraper.ErrNoContent):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	case err != nil:
		s.Log.Warn("article extract failed", slog.String("url", raw), slog.Any("err", err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	if s.Translator != nil && lang != translate.SourceLanguage {
		out := *content
		out.Title, _ = s.Translator.Translate(ctx, content.Title, translate.SourceLanguage, lang)
		out.Content, _ = s.Translator.Translate(ctx, content.Content, translate.SourceLanguage, lang)
		if out.Title == "" {
			out.Title = content.Title
		}
		if out.Content == "" {
			out.Content = content.Content
		}
		content = &out
	}
	writeJSON(w, http.StatusOK, content)
}

func (s *server) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languageResponse{Language: s.Prefs.Language(), Supported: translate.Languages()})
}

func (s *server) handlePutLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	code := strings.ToLower(strings.TrimSpace(req.Language))
	if err := s.Prefs.SetLanguage(code); err != nil {
		if errors.Is(err, storage.ErrUnsupportedLanguage) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.Log.Error("save language", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, languageResponse{Language: code, Supported: translate.Languages()})
}

// language resolves ?lang=, falling back to the stored preference.
func (s *server) language(r *http.Request) (string, bool) {
	lang := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang")))
	if lang == "" {
		if s.Prefs == nil {
			return translate.SourceLanguage, true
		}
		lang = s.Prefs.Language()
	}
	return lang, translate.Supported(lang)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
