package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ksmdental/clinic/internal/config"
	"github.com/ksmdental/clinic/internal/notify"
	"github.com/ksmdental/clinic/middlewares"
	"github.com/ksmdental/clinic/pkg/cache"
	"github.com/ksmdental/clinic/pkg/counter"
	"github.com/ksmdental/clinic/pkg/jwt"
	"github.com/ksmdental/clinic/pkg/logger"
	"github.com/ksmdental/clinic/pkg/mailer"
	"github.com/ksmdental/clinic/pkg/mailer/resend"
	"github.com/ksmdental/clinic/pkg/mailer/smtp"
	"github.com/ksmdental/clinic/pkg/places"
	"github.com/ksmdental/clinic/pkg/ratelimit"
	"github.com/ksmdental/clinic/pkg/redis"
	"github.com/ksmdental/clinic/pkg/storage"
)

const (
	redisCachePrefix     = "clinic:cache"
	redisRateLimitPrefix = "clinic:ratelimit"
	flushTimeout         = 2 * time.Second
)

// deps owns the long-lived services built from the configuration.
// Everything opened through it is released by close, in reverse order.
type deps struct {
	cfg     config.Config
	log     *slog.Logger
	flush   func(time.Duration)
	redis   goredis.UniversalClient
	closers []io.Closer
}

// newDeps builds the logger and, when configured, connects to redis.
func newDeps(ctx context.Context, cfg config.Config, logOut io.Writer) (*deps, error) {
	log, flush := logger.NewWithSentry(cfg.Log, logOut, middlewares.RequestIDExtractor())
	d := &deps{cfg: cfg, log: log, flush: flush}

	if cfg.Redis.Enabled() {
		rdb, err := redis.Open(ctx, cfg.Redis.URL, cfg.Redis.Options()...)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		d.redis = rdb
		d.closers = append(d.closers, rdb)
	}
	return d, nil
}

func (d *deps) close() {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		d.log.Warn("closing dependencies", slog.Any("error", err))
	}
	d.flush(flushTimeout)
}

// counterStore returns the configured backend behind a TTL cache. With
// redis available the cache is shared between instances.
func (d *deps) counterStore() (counter.Store, error) {
	cfg := d.cfg.Counter

	var store counter.Store
	switch cfg.Backend {
	case counter.BackendRedis:
		if d.redis == nil {
			return nil, errors.New("COUNTER_BACKEND=redis requires REDIS_URL")
		}
		store = counter.NewRedisStore(d.redis, cfg.Key, cfg.Seed)
	case counter.BackendS3:
		s3, err := storage.New(d.cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("object storage: %w", err)
		}
		store = counter.NewObjectStore(s3, cfg.Key, cfg.Seed)
	default:
		store = counter.NewFileStore(cfg.File, cfg.Seed)
	}

	if cfg.CacheTTL <= 0 {
		return store, nil
	}
	return counter.NewCached(store, newCache[counter.Snapshot](d, "stats", cfg.CacheTTL), cfg.CacheTTL), nil
}

// places returns the reviews client with a review cache.
func (d *deps) places() *places.Client {
	var opts []places.Option
	if ttl := d.cfg.Places.CacheTTL; ttl > 0 {
		opts = append(opts, places.WithCache(newCache[[]places.Review](d, "reviews", ttl)))
	}
	return places.New(d.cfg.Places, opts...)
}

func newCache[V any](d *deps, name string, ttl time.Duration) cache.Cache[V] {
	if d.redis != nil {
		return cache.NewRedis[V](d.redis, nil, redisCachePrefix+":"+name, ttl)
	}
	mc := cache.NewMemory[V](cache.WithDefaultTTL(ttl))
	d.closers = append(d.closers, mc)
	return mc
}

// notifier builds the mail transport selected by MAIL_TRANSPORT.
func (d *deps) notifier() (*notify.Notifier, error) {
	var sender mailer.Sender
	switch d.cfg.Transport {
	case config.TransportResend:
		sender = resend.New(d.cfg.Resend)
	default:
		sender = smtp.New(d.cfg.SMTP)
	}

	m := notify.NewMailer(sender, d.cfg.Mailer)
	return notify.New(m, d.cfg.Notify, notify.WithLogger(d.log.With(slog.String("component", "notify"))))
}

// limiter returns the per-IP rate limiter.
func (d *deps) limiter() (ratelimit.Limiter, error) {
	cfg := d.cfg.RateLimit
	if cfg.Backend == ratelimit.BackendRedis {
		if d.redis == nil {
			return nil, errors.New("RATE_LIMIT_BACKEND=redis requires REDIS_URL")
		}
		return ratelimit.NewRedis(d.redis, redisRateLimitPrefix, cfg.Limit, cfg.Window)
	}

	l, err := ratelimit.NewMemory(cfg.Limit, cfg.Window)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, l)
	return l, nil
}

// tokens returns the admin token service, or nil when ADMIN_JWT_SECRET is
// unset.
func (d *deps) tokens() (*jwt.Service, error) {
	if !d.cfg.JWT.Enabled() {
		return nil, nil
	}
	return jwt.NewFromConfig(d.cfg.JWT)
}
