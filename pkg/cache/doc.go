// Package cache provides a small generic TTL cache with in-memory and Redis
// backends.
//
// The in-memory backend suits a single instance. The Redis backend shares
// cached values between replicas. Both satisfy [Cache]:
//
//	reviews := cache.NewMemory[[]places.Review](cache.WithDefaultTTL(10 * time.Minute))
//	defer reviews.Close()
//
//	list, err := cache.GetOrSet(ctx, reviews, "reviews", func(ctx context.Context) ([]places.Review, time.Duration, error) {
//		list, err := client.Reviews(ctx)
//		return list, 0, err
//	})
//
// TTL semantics for Set: positive expires after the duration, zero uses the
// backend default and negative never expires.
//
// [GetOrSet] collapses concurrent misses for the same key into one call.
// Errors returned by the loader are not cached.
package cache
