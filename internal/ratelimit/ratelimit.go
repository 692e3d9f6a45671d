package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrBudgetExhausted is returned once a provider's daily budget is used up.
var ErrBudgetExhausted = errors.New("daily budget exhausted")

// Budget configures one external provider. Daily <= 0 means unlimited;
// PerSecond <= 0 disables pacing.
type Budget struct {
	Name      string
	Daily     int
	PerSecond float64
	Burst     int
}

type provider struct {
	used        int
	max         int
	pace        *rate.Limiter
	cacheHits   int
	cacheMisses int
}

// Limiter tracks daily request budgets for external APIs (news search,
// translation) and paces bursts with a token bucket.
type Limiter struct {
	mu        sync.Mutex
	providers map[string]*provider
	resetTime time.Time
	now       func() time.Time
	log       *slog.Logger
}

func New(budgets ...Budget) *Limiter {
	l := &Limiter{
		providers: make(map[string]*provider, len(budgets)),
		now:       time.Now,
		log:       slog.Default().With(slog.String("component", "ratelimit")),
	}
	l.resetTime = l.now().Add(24 * time.Hour) // Reset daily
	for _, b := range budgets {
		p := &provider{max: b.Daily}
		if b.PerSecond > 0 {
			burst := b.Burst
			if burst < 1 {
				burst = 1
			}
			p.pace = rate.NewLimiter(rate.Limit(b.PerSecond), burst)
		}
		l.providers[b.Name] = p
	}
	return l
}

// CanUse checks whether the provider still has budget left today.
func (l *Limiter) CanUse(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()
	p := l.providers[name]
	return p == nil || p.max <= 0 || p.used < p.max
}

// Use reserves one request: it fails fast when the daily budget is spent and
// otherwise waits for the pacing token.
func (l *Limiter) Use(ctx context.Context, name string) error {
	l.mu.Lock()
	l.checkReset()
	p := l.providers[name]
	if p == nil {
		l.mu.Unlock()
		return nil
	}
	if p.max > 0 && p.used >= p.max {
		l.mu.Unlock()
		return fmt.Errorf("%s: %w (%d/%d)", name, ErrBudgetExhausted, p.used, p.max)
	}
	p.used++
	p.cacheMisses++
	pace := p.pace
	used, max := p.used, p.max
	l.mu.Unlock()

	l.log.Debug("api usage", slog.String("provider", name), slog.Int("used", used), slog.Int("limit", max))

	if pace == nil {
		return nil
	}
	if err := pace.Wait(ctx); err != nil {
		return fmt.Errorf("%s: wait for rate limit: %w", name, err)
	}
	return nil
}

// RecordCacheHit counts a request that was served without calling the provider.
func (l *Limiter) RecordCacheHit(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p := l.providers[name]; p != nil {
		p.cacheHits++
	}
}

// GetStats returns current limiter statistics, keyed "<provider>_<counter>".
func (l *Limiter) GetStats() map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := map[string]interface{}{
		"reset_time": l.resetTime,
	}
	names := make([]string, 0, len(l.providers))
	for name := range l.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := l.providers[name]
		stats[name+"_used"] = p.used
		stats[name+"_limit"] = p.max
		stats[name+"_cache_hits"] = p.cacheHits
		stats[name+"_cache_hit_rate"] = hitRate(p)
	}
	return stats
}

func hitRate(p *provider) float64 {
	total := p.cacheHits + p.cacheMisses
	if total == 0 {
		return 0
	}
	return float64(p.cacheHits) / float64(total) * 100
}

// checkReset resets counters if reset time has passed
func (l *Limiter) checkReset() {
	now := l.now()
	if now.Before(l.resetTime) {
		return
	}
	l.log.Info("resetting api usage counters")
	for _, p := range l.providers {
		p.used = 0
		p.cacheHits = 0
		p.cacheMisses = 0
	}
	l.resetTime = now.Add(24 * time.Hour)
}
