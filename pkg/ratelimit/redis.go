package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis counts requests per key in fixed windows aligned to the epoch.
type Redis struct {
	client redis.UniversalClient
	now    func() time.Time
	prefix string
	window time.Duration
	limit  int
}

// NewRedis stores counters under prefix + ":" + key. A trailing ":" on
// prefix is not doubled.
func NewRedis(client redis.UniversalClient, prefix string, limit int, window time.Duration) (*Redis, error) {
	if err := (Config{Limit: limit, Window: window}).validate(); err != nil {
		return nil, err
	}
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &Redis{client: client, prefix: prefix, limit: limit, window: window, now: time.Now}, nil
}

func (r *Redis) key(key string, slot int64) string {
	return r.prefix + key + ":" + strconv.FormatInt(slot, 10)
}

func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	now := r.now()
	slot := slotOf(now, r.window)
	k := r.key(key, slot)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.ExpireNX(ctx, k, r.window)
		return nil
	})
	if err != nil {
		return Decision{}, errors.Join(ErrBackend, err)
	}

	return decide(now, slot, r.window, r.limit, int(incr.Val())), nil
}
