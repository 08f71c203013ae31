package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/middlewares"
	"github.com/ksmdental/clinic/pkg/ratelimit"
)

type mockLimiter struct{ mock.Mock }

func (m *mockLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ratelimit.Decision), args.Error(1)
}

func okRoute() route {
	return route{path: "/", h: func(c internal.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	}}
}

func TestRateLimit_Headers(t *testing.T) {
	t.Parallel()

	lim := &mockLimiter{}
	lim.On("Allow", mock.Anything, "203.0.113.7").Return(ratelimit.Decision{
		Allowed:    true,
		Limit:      30,
		Remaining:  29,
		ResetAfter: 1500 * time.Millisecond,
	}, nil).Once()

	app := newTestApp([]internal.Middleware{middlewares.RateLimit(lim)}, okRoute())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "30", rec.Header().Get("RateLimit-Limit"))
	require.Equal(t, "29", rec.Header().Get("RateLimit-Remaining"))
	require.Equal(t, "2", rec.Header().Get("RateLimit-Reset"))
	lim.AssertExpectations(t)
}

func TestRateLimit_Denied(t *testing.T) {
	t.Parallel()

	lim := &mockLimiter{}
	lim.On("Allow", mock.Anything, mock.Anything).Return(ratelimit.Decision{
		Limit:      30,
		ResetAfter: 40 * time.Second,
		RetryAfter: 2 * time.Second,
	}, nil)

	app := newTestApp([]internal.Middleware{middlewares.RateLimit(lim)}, okRoute())
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "2", rec.Header().Get("Retry-After"))
	require.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))
	require.Equal(t, middlewares.RateLimitMessage, decodeBody(rec.Body.Bytes())["error"])
}

func TestRateLimit_FailsOpen(t *testing.T) {
	t.Parallel()

	lim := &mockLimiter{}
	lim.On("Allow", mock.Anything, mock.Anything).Return(ratelimit.Decision{}, errors.New("redis down"))

	app := newTestApp([]internal.Middleware{middlewares.RateLimit(lim)}, okRoute())
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("RateLimit-Limit"))
}

func TestRateLimit_MemoryBackend(t *testing.T) {
	t.Parallel()

	mem, err := ratelimit.NewMemory(2, 24*time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mem.Close() })

	app := newTestApp([]internal.Middleware{middlewares.RateLimit(mem, middlewares.WithTrustedProxies(0))}, okRoute())

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.4:5555"
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		xff     []string
		remote  string
		trusted int
		want    string
	}{
		{name: "no proxies", xff: []string{"1.1.1.1"}, remote: "10.0.0.1:80", trusted: 0, want: "10.0.0.1"},
		{name: "no header", remote: "10.0.0.1:80", trusted: 1, want: "10.0.0.1"},
		{name: "one hop", xff: []string{"1.1.1.1, 2.2.2.2"}, remote: "10.0.0.1:80", trusted: 1, want: "2.2.2.2"},
		{name: "two hops", xff: []string{"1.1.1.1, 2.2.2.2"}, remote: "10.0.0.1:80", trusted: 2, want: "1.1.1.1"},
		{name: "more hops than entries", xff: []string{"1.1.1.1"}, remote: "10.0.0.1:80", trusted: 3, want: "1.1.1.1"},
		{name: "repeated headers", xff: []string{"1.1.1.1", "2.2.2.2"}, remote: "10.0.0.1:80", trusted: 1, want: "2.2.2.2"},
		{name: "remote without port", remote: "10.0.0.9", trusted: 0, want: "10.0.0.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for _, v := range tt.xff {
				req.Header.Add("X-Forwarded-For", v)
			}
			require.Equal(t, tt.want, middlewares.ClientIP(req, tt.trusted))
		})
	}
}
