package counter

import (
	"context"
	"time"

	"github.com/ksmdental/clinic/pkg/cache"
)

const cacheKey = "snapshot"

// Cached serves Load from memory for ttl. Add and Set write through and
// refresh the cached copy.
type Cached struct {
	next  Store
	cache cache.Cache[Snapshot]
	ttl   time.Duration
}

// NewCached wraps next. The cache is owned by the caller and may be shared
// storage such as cache.Redis.
func NewCached(next Store, c cache.Cache[Snapshot], ttl time.Duration) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl}
}

func (c *Cached) Load(ctx context.Context) (Snapshot, error) {
	return cache.GetOrSet(ctx, c.cache, cacheKey, func(ctx context.Context) (Snapshot, time.Duration, error) {
		snap, err := c.next.Load(ctx)
		return snap, c.ttl, err
	})
}

func (c *Cached) Add(ctx context.Context, delta int64) (Snapshot, error) {
	snap, err := c.next.Add(ctx, delta)
	if err != nil {
		_ = c.cache.Delete(ctx, cacheKey)
		return snap, err
	}
	_ = c.cache.Set(ctx, cacheKey, snap, c.ttl)
	return snap, nil
}

func (c *Cached) Set(ctx context.Context, n int64) (Snapshot, error) {
	snap, err := c.next.Set(ctx, n)
	if err != nil {
		_ = c.cache.Delete(ctx, cacheKey)
		return snap, err
	}
	_ = c.cache.Set(ctx, cacheKey, snap, c.ttl)
	return snap, nil
}
