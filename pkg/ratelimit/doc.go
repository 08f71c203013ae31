// Package ratelimit decides whether a client may make another request.
//
// Two Limiter implementations are provided:
//
//   - Memory counts requests per key in process.
//   - Redis counts them in keys shared by every replica.
//
// Both use fixed windows aligned to the Unix epoch, so a key never gets more
// than Limit requests inside one window.
//
// Both return a Decision carrying the values for the RateLimit-* and
// Retry-After response headers. The HTTP middleware lives in middlewares.
package ratelimit
