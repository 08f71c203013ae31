package middlewares

import (
	"net/http"

	"github.com/ksmdental/clinic/internal"
)

// DefaultBodyLimit is 100 KiB.
const DefaultBodyLimit int64 = 100 << 10

// BodyLimitMessage is the message of the 413 response.
const BodyLimitMessage = "Request body too large."

// BodyLimit caps request bodies at limit bytes. A declared Content-Length
// over the limit is rejected up front; otherwise reads past the limit fail
// and BindJSON reports internal.ErrBodyTooLarge.
func BodyLimit(limit int64) internal.Middleware {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			if r.ContentLength > limit {
				return internal.ErrPayloadTooLarge(BodyLimitMessage)
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(c.Response(), r.Body, limit)
			}
			return next(c)
		}
	}
}
