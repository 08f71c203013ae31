package handlers_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/internal/handlers"
	"github.com/ksmdental/clinic/middlewares"
)

type routeFunc struct {
	path string
	h    internal.HandlerFunc
}

func (r routeFunc) Routes(rt internal.Router) { rt.GET(r.path, r.h) }

func TestErrorHandler_RequestDeadline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler internal.HandlerFunc
		status  int
		message string
	}{
		{
			name: "handler gives up at the deadline",
			handler: func(c internal.Context) error {
				<-c.Done()
				return c.Err()
			},
			status:  http.StatusServiceUnavailable,
			message: "Request timed out. Please try again.",
		},
		{
			name: "wrapped deadline from a store call",
			handler: func(c internal.Context) error {
				<-c.Done()
				return fmt.Errorf("counter: load: %w", c.Err())
			},
			status:  http.StatusServiceUnavailable,
			message: "Request timed out. Please try again.",
		},
		{
			name: "upstream deadline on a live request",
			handler: func(c internal.Context) error {
				return fmt.Errorf("places: %w", context.DeadlineExceeded)
			},
			status:  http.StatusInternalServerError,
			message: "Internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log := slog.New(slog.DiscardHandler)
			app := internal.New(
				internal.WithLogger(log, "test"),
				internal.WithMiddleware(middlewares.Timeout(20*time.Millisecond)),
				internal.WithHandlers(routeFunc{path: "/api/slow", h: tt.handler}),
				internal.WithErrorHandler(handlers.ErrorHandler(log)),
			)

			rec, body := do(t, app, http.MethodGet, "/api/slow", nil)
			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tt.message, body["error"])
		})
	}
}
