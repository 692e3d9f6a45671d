package translate

import (
	"context"
	"time"

	"github.com/gulcinmobile/newsengine/internal/cache"
	"github.com/gulcinmobile/newsengine/internal/ratelimit"
)

// Cached remembers successful translations for ttl.
type Cached struct {
	next    Translator
	cache   *cache.Cache[string]
	ttl     time.Duration
	limiter *ratelimit.Limiter
	budget  string
}

// NewCached wraps next. Cache hits are counted against budget on limiter
// when both are set.
func NewCached(next Translator, c *cache.Cache[string], ttl time.Duration, limiter *ratelimit.Limiter, budget string) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl, limiter: limiter, budget: budget}
}

func (c *Cached) Name() string { return c.next.Name() }

func (c *Cached) Translate(ctx context.Context, text, from, to string) (string, error) {
	key := cache.GenerateKey(from, to, text)
	if v, ok := c.cache.Get(key); ok {
		if c.limiter != nil {
			c.limiter.RecordCacheHit(c.budget)
		}
		return v, nil
	}

	out, err := c.next.Translate(ctx, text, from, to)
	if err != nil {
		return out, err
	}
	// An unchanged result is the chain's fallback; retry it next time.
	if out != text {
		c.cache.Set(key, out, c.ttl)
	}
	return out, nil
}
