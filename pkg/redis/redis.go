package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	ErrFailedToParseURL   = errors.New("redis: failed to parse connection URL")
	// ErrConnectionFailed means every ping attempt failed.
	ErrConnectionFailed  = errors.New("redis: failed to establish connection")
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)

// Config holds connection settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	RetryCount   int           `env:"REDIS_CONNECT_RETRIES" envDefault:"3"`
	RetryBackoff time.Duration `env:"REDIS_CONNECT_BACKOFF" envDefault:"2s"`
}

// Enabled reports whether a URL is configured.
func (c Config) Enabled() bool { return c.URL != "" }

// Options returns the functional options matching c.
func (c Config) Options() []Option {
	return []Option{
		WithPoolSize(c.PoolSize),
		WithDialTimeout(c.DialTimeout),
		WithRetry(c.RetryCount, c.RetryBackoff),
	}
}

// Option configures a Redis connection.
type Option func(*options)

type options struct {
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
	ioTimeout     time.Duration
	dialTimeout   time.Duration
}

// WithPoolSize sets the maximum number of connections. Default: 10.
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithRetry sets the connection attempts and the base backoff between them.
// The wait grows linearly with the attempt number. Default: 3 attempts, 2s.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithIOTimeout sets read and write timeouts. Default: 3s.
func WithIOTimeout(d time.Duration) Option {
	return func(o *options) { o.ioTimeout = d }
}

// WithDialTimeout sets the connect timeout. Default: 5s.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.dialTimeout = d
		}
	}
}

// Open parses a redis:// or rediss:// URL and pings until the server answers
// or the attempts run out.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, fmt.Errorf("%w: unsupported scheme", ErrFailedToParseURL)
	}

	o := &options{
		poolSize:      10,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		ioTimeout:     3 * time.Second,
		dialTimeout:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	ro.PoolSize = o.poolSize
	ro.ReadTimeout = o.ioTimeout
	ro.WriteTimeout = o.ioTimeout
	ro.DialTimeout = o.dialTimeout

	var lastErr error
	for attempt := range max(o.retryAttempts, 1) {
		if attempt > 0 {
			if err := sleep(ctx, time.Duration(attempt)*o.retryInterval); err != nil {
				return nil, errors.Join(ErrConnectionFailed, err)
			}
		}
		client := redis.NewClient(ro)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()
	}
	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Healthcheck returns a readiness check that pings the server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the client.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
