// Package diag carries structured diagnostic events from the engine to
// whatever observes it (logs, metrics). Library code emits events instead of
// printing.
package diag

import (
	"log/slog"
	"sync"
	"time"
)

// Kind identifies an event. Dot-delimited: "<stage>.<action>".
type Kind string

const (
	KindFetchStart     Kind = "fetch.start"
	KindFetchComplete  Kind = "fetch.complete"
	KindFetchError     Kind = "fetch.error"
	KindFetchFallback  Kind = "fetch.fallback"
	KindParseComplete  Kind = "parse.complete"
	KindParseError     Kind = "parse.error"
	KindParseStrict    Kind = "parse.strict"
	KindClassify       Kind = "classify.complete"
	KindBackfill       Kind = "backfill.applied"
	KindMerge          Kind = "merge.complete"
	KindAggregate      Kind = "aggregate.complete"
	KindAggregateEmpty Kind = "aggregate.empty"
	KindSearchComplete Kind = "search.complete"
	KindSearchError    Kind = "search.error"
	KindTranslateError Kind = "translate.error"
)

// Event is the single diagnostic record. Only Kind is required.
type Event struct {
	Time      time.Time
	Kind      Kind
	Component string
	RunID     string
	Source    string
	Category  string
	URL       string
	Count     int
	Dur       time.Duration
	Err       error
	Msg       string
}

// Sink receives events. Implementations must be safe for concurrent use.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Multi fans an event out to several sinks.
type Multi []Sink

func (m Multi) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

// Stamp fills Time when the emitter left it zero.
func Stamp(e Event) Event {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	return e
}

type logSink struct {
	log *slog.Logger
}

// NewLogSink writes events through slog. Errors log at warn level, fetch and
// parse progress at debug, everything else at info.
func NewLogSink(log *slog.Logger) Sink {
	if log == nil {
		log = slog.Default()
	}
	return &logSink{log: log}
}

func (s *logSink) Emit(e Event) {
	attrs := []any{slog.String("kind", string(e.Kind))}
	if e.Component != "" {
		attrs = append(attrs, slog.String("component", e.Component))
	}
	if e.RunID != "" {
		attrs = append(attrs, slog.String("run_id", e.RunID))
	}
	if e.Source != "" {
		attrs = append(attrs, slog.String("source", e.Source))
	}
	if e.Category != "" {
		attrs = append(attrs, slog.String("category", e.Category))
	}
	if e.URL != "" {
		attrs = append(attrs, slog.String("url", e.URL))
	}
	if e.Count != 0 {
		attrs = append(attrs, slog.Int("count", e.Count))
	}
	if e.Dur > 0 {
		attrs = append(attrs, slog.Duration("dur", e.Dur))
	}

	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}

	switch {
	case e.Err != nil:
		attrs = append(attrs, slog.Any("err", e.Err))
		s.log.Warn(msg, attrs...)
	case e.Kind == KindFetchStart || e.Kind == KindFetchComplete || e.Kind == KindParseComplete:
		s.log.Debug(msg, attrs...)
	default:
		s.log.Info(msg, attrs...)
	}
}

// Recorder keeps every event in memory. Used by tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns only the event kinds, in emission order.
func (r *Recorder) Kinds() []Kind {
	events := r.Events()
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}
