package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/snaplink/snaplink-go/pkg/withdrawal"
)

// LimitsProvider yields the current withdrawal policy values.
type LimitsProvider interface {
	Limits(ctx context.Context) (withdrawal.WithdrawalLimits, error)
}

// LimitsCache is the storage behind CachedLimits.
type LimitsCache interface {
	Get(key string) (withdrawal.WithdrawalLimits, bool)
	Set(key string, l withdrawal.WithdrawalLimits, ttl time.Duration)
}

const limitsCacheKey = "withdrawal_limits"

// CachedLimits decorates a LimitsProvider with a TTL cache. The
// policy values change rarely; refetching them on every screen is
// wasted traffic. When the backend is unreachable the documented
// defaults are served instead, so amount validation keeps working.
type CachedLimits struct {
	next   LimitsProvider
	cache  LimitsCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedLimits wraps next with caching.
func NewCachedLimits(next LimitsProvider, cache LimitsCache, ttl time.Duration, logger *slog.Logger) *CachedLimits {
	return &CachedLimits{next: next, cache: cache, ttl: ttl, logger: logger}
}

// Limits returns cached policy values, fetching through on a miss.
// A fetch failure falls back to withdrawal.DefaultLimits and is not
// cached, so the next call retries the backend.
func (c *CachedLimits) Limits(ctx context.Context) (withdrawal.WithdrawalLimits, error) {
	if l, ok := c.cache.Get(limitsCacheKey); ok {
		c.logger.Debug("limits cache hit")
		return l, nil
	}

	l, err := c.next.Limits(ctx)
	if err != nil {
		c.logger.Warn("limits fetch failed, assuming defaults", "error", err)
		return withdrawal.DefaultLimits(), nil
	}

	c.cache.Set(limitsCacheKey, l, c.ttl)
	return l, nil
}
