package middlewares

import (
	"context"
	"log/slog"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/pkg/id"
	"github.com/ksmdental/clinic/pkg/logger"
)

// RequestIDHeader carries the request id on responses.
const RequestIDHeader = "X-Request-ID"

type requestIDConfig struct {
	generate func() string
	inbound  []string
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDGenerator replaces the ULID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if gen != nil {
			cfg.generate = gen
		}
	}
}

// WithInboundRequestIDHeaders sets the request headers whose id is reused,
// checked in order. Pass none to always generate.
func WithInboundRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) { cfg.inbound = headers }
}

// RequestID tags each request with an id. An inbound X-Request-ID or
// X-Correlation-ID from the proxy is reused when id.ValidRequestID accepts
// it; otherwise a ULID is generated. The id is echoed in X-Request-ID, added
// to log records by RequestIDExtractor and used as the prefix of the
// X-Entity-Ref-ID on emails sent for the request.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{
		generate: id.NewULID,
		inbound:  []string{RequestIDHeader, "X-Correlation-ID"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqID := ""
			for _, h := range cfg.inbound {
				if v := c.Header(h); v != "" {
					reqID = v
					break
				}
			}
			if !id.ValidRequestID(reqID) {
				reqID = cfg.generate()
			}

			c.SetContext(id.WithRequestID(c.Context(), reqID))
			c.SetHeader(RequestIDHeader, reqID)
			return next(c)
		}
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c internal.Context) string {
	return id.RequestID(c.Context())
}

// RequestIDExtractor adds "request_id" to log records written with a
// request context. Pass it to logger.New.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := id.RequestID(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
