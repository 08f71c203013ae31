package middlewares

import (
	"log/slog"
	"time"

	"github.com/ksmdental/clinic/internal"
)

// AccessLog logs one line per request with status, size and latency.
// Client errors log at warn, server errors at error.
func AccessLog(trustedProxies int) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			start := time.Now()
			rw := c.ResponseWriter()
			r := c.Request()

			defer func() {
				status := rw.Status()
				if p := recover(); p != nil {
					status = 500
					defer panic(p)
				}
				level := slog.LevelInfo
				switch {
				case status >= 500:
					level = slog.LevelError
				case status >= 400:
					level = slog.LevelWarn
				}
				c.Logger().Log(c.Context(), level, "request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", status),
					slog.Int64("bytes", rw.Size()),
					slog.Duration("duration", time.Since(start)),
					slog.String("ip", ClientIP(r, trustedProxies)),
					slog.String("user_agent", r.UserAgent()),
				)
			}()

			return next(c)
		}
	}
}
