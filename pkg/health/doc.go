// Package health serves liveness and readiness probes.
//
// Readiness runs every named check in parallel under one timeout and reports
// each result:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"counter": counter.Healthcheck(store),
//		"redis":   redis.Healthcheck(client),
//	}, health.WithTimeout(3*time.Second)))
//
// Responses are JSON: {"ok":true,"status":"healthy","checks":{...}}.
// A failed check turns the status into 503.
package health
