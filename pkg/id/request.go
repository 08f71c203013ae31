package id

import (
	"context"
	"strings"
)

type requestKey struct{}

// WithRequestID returns a copy of ctx carrying the request id v.
func WithRequestID(ctx context.Context, v string) context.Context {
	return context.WithValue(ctx, requestKey{}, v)
}

// RequestID returns the request id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestKey{}).(string)
	return v
}

// Reference returns the X-Entity-Ref-ID for one outbound email. Mail sent
// while serving a request is tagged "<request id>.<kind>" so a message can be
// matched to its access log line; anything else gets a random UUID.
func Reference(ctx context.Context, kind string) string {
	rid := RequestID(ctx)
	if rid == "" {
		return NewReference()
	}
	kind = strings.TrimSuffix(kind, ".md")
	if kind == "" {
		return rid
	}
	return rid + "." + kind
}

// ValidRequestID reports whether v is safe to echo in response and mail
// headers: 1 to 128 bytes of letters, digits, '-', '_' or '.'.
func ValidRequestID(v string) bool {
	if v == "" || len(v) > 128 {
		return false
	}
	for i := 0; i < len(v); i++ {
		switch c := v[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
