package counter

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldCount     = "happyPatients"
	fieldUpdatedAt = "updatedAt"
)

// RedisStore keeps the counter in a hash, so replicas share one value and
// increments are atomic.
type RedisStore struct {
	client redis.UniversalClient
	now    func() time.Time
	key    string
	seed   int64
}

func NewRedisStore(client redis.UniversalClient, key string, seed int64) *RedisStore {
	return &RedisStore{client: client, key: key, seed: seed, now: time.Now}
}

func (s *RedisStore) Load(ctx context.Context) (Snapshot, error) {
	vals, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return Snapshot{}, errors.Join(ErrRead, err)
	}
	if len(vals) == 0 {
		return seeded(s.seed), nil
	}
	return parseHash(vals)
}

func (s *RedisStore) Add(ctx context.Context, delta int64) (Snapshot, error) {
	now := s.now().UTC()
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSetNX(ctx, s.key, fieldCount, s.seed)
		incr = p.HIncrBy(ctx, s.key, fieldCount, delta)
		p.HSet(ctx, s.key, fieldUpdatedAt, now.Format(time.RFC3339Nano))
		return nil
	})
	if err != nil {
		return Snapshot{}, errors.Join(ErrWrite, err)
	}
	return Snapshot{HappyPatients: incr.Val(), UpdatedAt: now}, nil
}

func (s *RedisStore) Set(ctx context.Context, n int64) (Snapshot, error) {
	if n < 0 {
		return Snapshot{}, ErrNegative
	}
	now := s.now().UTC()
	err := s.client.HSet(ctx, s.key,
		fieldCount, n,
		fieldUpdatedAt, now.Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return Snapshot{}, errors.Join(ErrWrite, err)
	}
	return Snapshot{HappyPatients: n, UpdatedAt: now}, nil
}

func parseHash(vals map[string]string) (Snapshot, error) {
	n, err := strconv.ParseInt(vals[fieldCount], 10, 64)
	if err != nil {
		return Snapshot{}, errors.Join(ErrCorrupt, err)
	}
	snap := Snapshot{HappyPatients: n}
	if ts := vals[fieldUpdatedAt]; ts != "" {
		if snap.UpdatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return Snapshot{}, errors.Join(ErrCorrupt, err)
		}
	}
	return snap, validate(snap)
}
