package mailer

import (
	"context"
	"fmt"
	"time"
)

// withTimeout runs fn with a deadline and returns as soon as either fn
// finishes or the deadline passes. Some transports ignore the context once a
// connection is established, so fn keeps running in the background after a
// timeout and its result is discarded.
func withTimeout(ctx context.Context, d time.Duration, op string, fn func(context.Context) error) error {
	if d <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: %s after %s", ErrTimeout, op, d)
		}
		return ctx.Err()
	}
}
