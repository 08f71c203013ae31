package middlewares

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PanicError is a panic recovered by Recover, tagged with the request it
// interrupted.
type PanicError struct {
	Value  any
	Method string
	Path   string
	Stack  []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("panic: %v", e.Value)
	}
	return fmt.Sprintf("panic in %s %s: %v", e.Method, e.Path, e.Value)
}

// TimeoutError means a request ran past REQUEST_TIMEOUT. It matches
// context.DeadlineExceeded under errors.Is.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

func (e *TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// TimedOut reports whether err ended a request because the request's own
// deadline passed. A handler that returns ctx.Err() after Timeout fired
// counts; an upstream call timing out while the request is still live
// does not.
func TimedOut(ctx context.Context, err error) bool {
	if _, ok := AsTimeoutError(err); ok {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) && errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
