package middlewares

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/pkg/ratelimit"
)

// RateLimitMessage is the message of the 429 response.
const RateLimitMessage = "Too many requests, please try again later."

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	// KeyFunc picks the bucket for a request. Defaults to the client IP.
	KeyFunc func(c internal.Context) string
	// Skip bypasses limiting for matching requests.
	Skip           func(c internal.Context) bool
	TrustedProxies int
}

// RateLimitOption configures RateLimitConfig.
type RateLimitOption func(*RateLimitConfig)

// WithTrustedProxies sets how many X-Forwarded-For hops are trusted.
func WithTrustedProxies(n int) RateLimitOption {
	return func(cfg *RateLimitConfig) { cfg.TrustedProxies = n }
}

// WithRateLimitKey replaces the client IP key.
func WithRateLimitKey(fn func(c internal.Context) string) RateLimitOption {
	return func(cfg *RateLimitConfig) { cfg.KeyFunc = fn }
}

// WithRateLimitSkip exempts requests for which fn returns true.
func WithRateLimitSkip(fn func(c internal.Context) bool) RateLimitOption {
	return func(cfg *RateLimitConfig) { cfg.Skip = fn }
}

// RateLimit consumes one unit of quota per request and sets the
// RateLimit-Limit, RateLimit-Remaining and RateLimit-Reset headers.
// Denied requests get a 429 with Retry-After. When the limiter itself
// fails the request is let through.
func RateLimit(limiter ratelimit.Limiter, opts ...RateLimitOption) internal.Middleware {
	cfg := &RateLimitConfig{TrustedProxies: 1}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.KeyFunc == nil {
		hops := cfg.TrustedProxies
		cfg.KeyFunc = func(c internal.Context) string {
			return ClientIP(c.Request(), hops)
		}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if cfg.Skip != nil && cfg.Skip(c) {
				return next(c)
			}

			d, err := limiter.Allow(c.Context(), cfg.KeyFunc(c))
			if err != nil {
				c.LogError("rate limiter unavailable", "error", err)
				return next(c)
			}

			c.SetHeader("RateLimit-Limit", strconv.Itoa(d.Limit))
			c.SetHeader("RateLimit-Remaining", strconv.Itoa(d.Remaining))
			c.SetHeader("RateLimit-Reset", seconds(d.ResetAfter))

			if !d.Allowed {
				c.SetHeader("Retry-After", seconds(d.RetryAfter))
				return internal.ErrTooManyRequests(RateLimitMessage)
			}
			return next(c)
		}
	}
}

// seconds rounds d up to whole seconds.
func seconds(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}

// ClientIP returns the address of the client as seen by the outermost of
// trustedProxies reverse proxies. With zero trusted proxies, or no
// X-Forwarded-For header, it is the peer address.
func ClientIP(r *http.Request, trustedProxies int) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(peer); err == nil {
		peer = host
	}
	if trustedProxies <= 0 {
		return peer
	}

	var hops []string
	for _, v := range r.Header.Values("X-Forwarded-For") {
		for part := range strings.SplitSeq(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				hops = append(hops, p)
			}
		}
	}
	if len(hops) == 0 {
		return peer
	}

	// The last trusted proxy appended the address it saw, so walk
	// trustedProxies entries in from the right.
	return hops[max(len(hops)-trustedProxies, 0)]
}
