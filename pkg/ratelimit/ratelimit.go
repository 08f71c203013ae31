package ratelimit

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidConfig = errors.New("ratelimit: limit must be positive and window at least 1ms")
	ErrBackend       = errors.New("ratelimit: backend failure")
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds the limit shared by all clients.
type Config struct {
	Backend        string        `env:"RATE_LIMIT_BACKEND" envDefault:"memory"`
	Limit          int           `env:"RATE_LIMIT" envDefault:"30"`
	Window         time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
	TrustedProxies int           `env:"TRUSTED_PROXIES" envDefault:"1"`
}

func (c Config) validate() error {
	if c.Limit <= 0 || c.Window < time.Millisecond {
		return ErrInvalidConfig
	}
	return nil
}

// Decision is the outcome for one request.
type Decision struct {
	// ResetAfter is how long until the client's quota is fully restored.
	ResetAfter time.Duration
	// RetryAfter is set when the request is denied.
	RetryAfter time.Duration
	Limit      int
	Remaining  int
	Allowed    bool
}

// Limiter consumes one unit of quota for key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// slotOf numbers the fixed window that t falls in.
func slotOf(t time.Time, window time.Duration) int64 {
	return t.UnixMilli() / window.Milliseconds()
}

// decide builds the Decision for the count-th request of slot.
func decide(now time.Time, slot int64, window time.Duration, limit, count int) Decision {
	windowEnd := time.UnixMilli((slot + 1) * window.Milliseconds())
	d := Decision{
		Allowed:    count <= limit,
		Limit:      limit,
		Remaining:  max(limit-count, 0),
		ResetAfter: windowEnd.Sub(now),
	}
	if !d.Allowed {
		d.RetryAfter = d.ResetAfter
	}
	return d
}
