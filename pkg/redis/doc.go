// Package redis opens go-redis clients with retry on startup and exposes a
// health check and shutdown hook for them.
//
// Redis is optional for the clinic server. It backs the shared rate limit
// window, the patient counter and the reviews cache when REDIS_URL is set:
//
//	client, err := redis.Open(ctx, cfg.Redis.URL, redis.WithRetry(3, time.Second))
//	if err != nil {
//		return err
//	}
//	app := clinic.New(
//		clinic.WithHealthChecks(clinic.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//	clinic.Run(app, clinic.ShutdownHook(redis.Shutdown(client)))
package redis
