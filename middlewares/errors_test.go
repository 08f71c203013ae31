package middlewares_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/middlewares"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{&middlewares.PanicError{Value: "boom"}, "panic: boom"},
		{&middlewares.PanicError{Value: 42}, "panic: 42"},
		{&middlewares.PanicError{}, "panic: <nil>"},
		{&middlewares.PanicError{Value: "nil map", Method: "POST", Path: "/api/appointment"}, "panic in POST /api/appointment: nil map"},
		{&middlewares.TimeoutError{Duration: 5 * time.Second}, "request timeout after 5s"},
		{&middlewares.TimeoutError{Duration: 250 * time.Millisecond}, "request timeout after 250ms"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.err.Error())
	}
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	pe := &middlewares.PanicError{Value: "x"}
	te := &middlewares.TimeoutError{Duration: time.Second}
	plain := errors.New("plain")

	require.True(t, middlewares.IsPanicError(fmt.Errorf("wrapped: %w", pe)))
	require.False(t, middlewares.IsPanicError(te))
	require.False(t, middlewares.IsPanicError(nil))

	require.ErrorIs(t, te, context.DeadlineExceeded)

	got, ok := middlewares.AsPanicError(errors.Join(plain, pe))
	require.True(t, ok)
	require.Same(t, pe, got)

	_, ok = middlewares.AsTimeoutError(plain)
	require.False(t, ok)
}

func TestTimedOut(t *testing.T) {
	t.Parallel()

	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	live := context.Background()
	canceled, cancelNow := context.WithCancel(context.Background())
	cancelNow()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want bool
	}{
		{name: "timeout error", ctx: live, err: &middlewares.TimeoutError{Duration: time.Second}, want: true},
		{name: "wrapped timeout error", ctx: live, err: fmt.Errorf("send: %w", &middlewares.TimeoutError{}), want: true},
		{name: "handler returned ctx.Err after deadline", ctx: expired, err: expired.Err(), want: true},
		{name: "wrapped deadline after deadline", ctx: expired, err: fmt.Errorf("fetch reviews: %w", context.DeadlineExceeded), want: true},
		{name: "upstream deadline on live request", ctx: live, err: context.DeadlineExceeded, want: false},
		{name: "client went away", ctx: canceled, err: context.Canceled, want: false},
		{name: "plain error after deadline", ctx: expired, err: errors.New("smtp down"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, middlewares.TimedOut(tt.ctx, tt.err))
		})
	}
}
