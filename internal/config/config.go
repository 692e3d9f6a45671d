package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Sources
	SourcesConfigPath string

	// Fetching
	ConnectTimeout   time.Duration
	ReadTimeout      time.Duration
	UserAgent        string
	FetchConcurrency int

	// Keyword search (GNews)
	GNewsAPIKey     string
	GNewsDailyLimit int

	// Translation
	TranslatorKey        string
	TranslatorRegion     string
	GeminiAPIKey         string
	OpenAIAPIKey         string
	TranslateDailyLimit  int // 0 = unlimited
	TranslateMaxArticles int
	TranslateCacheTTL    time.Duration

	// Settings store
	PrefsPath string

	// HTTP API
	HTTPAddr string

	// External API retries
	RetryAttempts int
	RetryDelay    time.Duration

	Debug    bool
	LogLevel string
}

const DefaultUserAgent = "Mozilla/5.0 (Android) GulcinMobileApp/1.0"

func Load() (*Config, error) {
	cfg := &Config{
		SourcesConfigPath:    getEnvOrDefault("SOURCES_CONFIG_PATH", "configs/sources.yaml"),
		ConnectTimeout:       getEnvDurationOrDefault("FETCH_CONNECT_TIMEOUT", 30*time.Second),
		ReadTimeout:          getEnvDurationOrDefault("FETCH_READ_TIMEOUT", 30*time.Second),
		UserAgent:            getEnvOrDefault("FETCH_USER_AGENT", DefaultUserAgent),
		FetchConcurrency:     getEnvIntOrDefault("FETCH_CONCURRENCY", 3),
		GNewsAPIKey:          os.Getenv("GNEWS_API_KEY"),
		GNewsDailyLimit:      getEnvIntOrDefault("GNEWS_DAILY_LIMIT", 100),
		TranslatorKey:        os.Getenv("MS_TRANSLATOR_KEY"),
		TranslatorRegion:     getEnvOrDefault("MS_TRANSLATOR_REGION", "southeastasia"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		TranslateDailyLimit:  getEnvIntOrDefault("TRANSLATE_DAILY_LIMIT", 0),
		TranslateMaxArticles: getEnvIntOrDefault("TRANSLATE_MAX_ARTICLES", 10),
		TranslateCacheTTL:    getEnvDurationOrDefault("TRANSLATE_CACHE_TTL", 6*time.Hour),
		PrefsPath:            getEnvOrDefault("PREFS_PATH", "settings.json"),
		HTTPAddr:             getEnvOrDefault("HTTP_ADDR", ":8080"),
		RetryAttempts:        getEnvIntOrDefault("RETRY_ATTEMPTS", 3),
		RetryDelay:           getEnvDurationOrDefault("RETRY_DELAY", 2*time.Second),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("45s") or plain seconds ("45").
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("FETCH_CONNECT_TIMEOUT must be positive")
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("FETCH_READ_TIMEOUT must be positive")
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	if c.GNewsDailyLimit < 0 || c.TranslateDailyLimit < 0 {
		return fmt.Errorf("daily limits must not be negative")
	}
	if c.TranslateMaxArticles < 0 {
		return fmt.Errorf("TRANSLATE_MAX_ARTICLES must not be negative")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("RETRY_ATTEMPTS must be at least 1")
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	return nil
}
