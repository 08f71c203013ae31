package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/ksmdental/clinic/internal"
)

// DefaultTimeout bounds a request when no positive timeout is given.
const DefaultTimeout = 60 * time.Second

// Timeout returns middleware that gives the rest of the chain a context with
// a deadline. Handlers observe it through c.Done() or c.Context(). When the
// deadline passes before anything is written, a TimeoutError is returned for
// the ErrorHandler to render.
//
// The handler runs on the request goroutine, so a handler that ignores
// its context delays the timeout response until it returns.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			parent := c.Context()
			ctx, cancel := context.WithTimeout(parent, timeout)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && parent.Err() == nil && !c.Written() {
				c.LogWarn("request timeout", "timeout", timeout.String())
				return &TimeoutError{Duration: timeout}
			}
			return err
		}
	}
}
