package metrics

import (
	"sync"
	"time"

	"github.com/gulcinmobile/newsengine/internal/diag"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FetchesStarted     int64
	FetchesFailed      int64
	FallbacksUsed      int64
	ArticlesParsed     int64
	ParseErrors        int64
	BackfilledArticles int64
	Aggregations       int64
	EmptyAggregations  int64
	SearchRequests     int64
	SearchErrors       int64
	FailedTranslations int64

	// Timings
	LastAggregationTime    time.Duration
	AverageAggregationTime time.Duration
	TotalAggregationTime   time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = New()

func New() *Metrics {
	return &Metrics{IsHealthy: true}
}

// Emit updates counters from a diagnostic event, so Metrics can sit in a
// diag.Multi next to the log sink.
func (m *Metrics) Emit(e diag.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch e.Kind {
	case diag.KindFetchStart:
		m.FetchesStarted++
	case diag.KindFetchError:
		m.FetchesFailed++
	case diag.KindFetchFallback:
		m.FallbacksUsed++
	case diag.KindParseComplete:
		m.ArticlesParsed += int64(e.Count)
	case diag.KindParseError:
		m.ParseErrors++
	case diag.KindBackfill:
		m.BackfilledArticles += int64(e.Count)
	case diag.KindAggregate:
		m.Aggregations++
		m.recordAggregation(e.Dur)
		m.LastRunTime = time.Now()
		m.IsHealthy = true
	case diag.KindAggregateEmpty:
		m.Aggregations++
		m.EmptyAggregations++
		m.recordAggregation(e.Dur)
		m.LastRunTime = time.Now()
		m.setError("aggregation for " + e.Category + " produced no articles")
	case diag.KindSearchComplete:
		m.SearchRequests++
	case diag.KindSearchError:
		m.SearchRequests++
		m.SearchErrors++
	case diag.KindTranslateError:
		m.FailedTranslations++
	}
}

func (m *Metrics) recordAggregation(d time.Duration) {
	if d <= 0 {
		return
	}
	m.LastAggregationTime = d
	m.TotalAggregationTime += d
	if m.Aggregations > 0 {
		m.AverageAggregationTime = m.TotalAggregationTime / time.Duration(m.Aggregations)
	}
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setError(err)
}

func (m *Metrics) setError(err string) {
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.IsHealthy
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"fetches_started":             m.FetchesStarted,
		"fetches_failed":              m.FetchesFailed,
		"fallbacks_used":              m.FallbacksUsed,
		"articles_parsed":             m.ArticlesParsed,
		"parse_errors":                m.ParseErrors,
		"backfilled_articles":         m.BackfilledArticles,
		"aggregations":                m.Aggregations,
		"empty_aggregations":          m.EmptyAggregations,
		"search_requests":             m.SearchRequests,
		"search_errors":               m.SearchErrors,
		"failed_translations":         m.FailedTranslations,
		"last_aggregation_time_ms":    m.LastAggregationTime.Milliseconds(),
		"average_aggregation_time_ms": m.AverageAggregationTime.Milliseconds(),
		"last_run_time":               m.LastRunTime.Format(time.RFC3339),
		"last_error_time":             m.LastErrorTime.Format(time.RFC3339),
		"last_error":                  m.LastError,
		"is_healthy":                  m.IsHealthy,
	}
}
