package diag

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiFansOut(t *testing.T) {
	var a, b Recorder
	m := Multi{&a, nil, &b}
	m.Emit(Event{Kind: KindFetchStart, Source: "s1"})

	require.Equal(t, []Kind{KindFetchStart}, a.Kinds())
	require.Equal(t, []Kind{KindFetchStart}, b.Kinds())
}

func TestOrDiscard(t *testing.T) {
	require.Equal(t, Discard, OrDiscard(nil))
	var r Recorder
	require.Equal(t, Sink(&r), OrDiscard(&r))
}

func TestStamp(t *testing.T) {
	e := Stamp(Event{Kind: KindMerge})
	require.False(t, e.Time.IsZero())
}

func TestLogSinkLevels(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	s := NewLogSink(log)

	s.Emit(Event{Kind: KindFetchStart, Source: "hidden"})
	require.Empty(t, buf.String())

	s.Emit(Event{Kind: KindFetchError, Source: "s1", Err: errors.New("boom")})
	out := buf.String()
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, "source=s1")
	require.Contains(t, out, "err=boom")

	buf.Reset()
	s.Emit(Event{Kind: KindAggregate, Category: "tech", Count: 10})
	require.Contains(t, buf.String(), "count=10")
	require.Contains(t, buf.String(), "category=tech")
}
