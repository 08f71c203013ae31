package health

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	defaultTimeout = 5 * time.Second
)

// CheckFunc reports a dependency failure as a non-nil error.
type CheckFunc func(ctx context.Context) error

// Checks maps a check name to its function.
type Checks map[string]CheckFunc

// Response is the probe body.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
	OK     bool             `json:"ok"`
}

// Check is one check's outcome.
type Check struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures the readiness probe.
type Option func(*config)

// WithTimeout bounds all checks together. Default: 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failed checks at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run executes checks concurrently and aggregates the outcome.
func Run(ctx context.Context, checks Checks, opts ...Option) Response {
	cfg := &config{timeout: defaultTimeout, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(checks) == 0 {
		return Response{OK: true, Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]Check, len(checks))
	)
	for name, check := range checks {
		wg.Go(func() {
			start := time.Now()
			res := Check{Status: StatusHealthy}
			if err := runOne(ctx, check); err != nil {
				res.Status = StatusUnhealthy
				res.Error = err.Error()
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}
			res.Duration = time.Since(start).Round(time.Millisecond).String()

			mu.Lock()
			results[name] = res
			mu.Unlock()
		})
	}
	wg.Wait()

	resp := Response{OK: true, Status: StatusHealthy, Checks: results}
	for _, r := range results {
		if r.Status != StatusHealthy {
			resp.OK = false
			resp.Status = StatusUnhealthy
			break
		}
	}
	return resp
}

// runOne returns the context error when a check ignores cancellation.
func runOne(ctx context.Context, check CheckFunc) error {
	done := make(chan error, 1)
	go func() { done <- check(ctx) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
