package middlewares_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/middlewares"
)

// testContext is a minimal internal.Context for calling a middleware directly.
type testContext struct {
	request  *http.Request
	response *internal.ResponseWriter
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{request: r, response: internal.NewResponseWriter(w)}
}

func (c *testContext) Deadline() (time.Time, bool)              { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}                    { return c.request.Context().Done() }
func (c *testContext) Err() error                               { return c.request.Context().Err() }
func (c *testContext) Value(key any) any                        { return c.request.Context().Value(key) }
func (c *testContext) Request() *http.Request                   { return c.request }
func (c *testContext) Response() http.ResponseWriter            { return c.response }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context                 { return c.request.Context() }
func (c *testContext) SetContext(ctx context.Context)           { c.request = c.request.WithContext(ctx) }
func (c *testContext) Param(string) string                      { return "" }
func (c *testContext) Query(name string) string                 { return c.request.URL.Query().Get(name) }
func (c *testContext) Header(name string) string                { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string)             { c.response.Header().Set(name, value) }
func (c *testContext) Written() bool                            { return c.response.Written() }
func (c *testContext) Logger() *slog.Logger                     { return slog.New(slog.DiscardHandler) }
func (c *testContext) LogDebug(string, ...any)                  {}
func (c *testContext) LogInfo(string, ...any)                   {}
func (c *testContext) LogWarn(string, ...any)                   {}
func (c *testContext) LogError(string, ...any)                  {}
func (c *testContext) Get(key any) any                          { return c.request.Context().Value(key) }

func (c *testContext) Set(key, value any) {
	c.SetContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) BindJSON(v any) (internal.ValidationErrors, error) {
	return nil, json.NewDecoder(c.request.Body).Decode(v)
}

var _ internal.Context = (*testContext)(nil)

// route registers h for GET and POST on path.
type route struct {
	path string
	h    internal.HandlerFunc
}

func (r route) Routes(rt internal.Router) {
	rt.GET(r.path, r.h)
	rt.POST(r.path, r.h)
}

// jsonErrors renders errors the way the API does: {ok:false, error}.
func jsonErrors(c internal.Context, err error) error {
	status, msg := http.StatusInternalServerError, "Internal server error"
	var he *internal.HTTPError
	switch {
	case errors.As(err, &he):
		status, msg = he.Code, he.Message
	case middlewares.TimedOut(c, err):
		status, msg = http.StatusServiceUnavailable, "Request timed out"
	}
	return c.JSON(status, map[string]any{"ok": false, "error": msg})
}

func newTestApp(mw []internal.Middleware, routes ...route) http.Handler {
	handlers := make([]internal.Handler, 0, len(routes))
	for _, r := range routes {
		handlers = append(handlers, r)
	}
	return internal.New(
		internal.WithMiddleware(mw...),
		internal.WithHandlers(handlers...),
		internal.WithErrorHandler(jsonErrors),
	)
}

func decodeBody(body []byte) map[string]any {
	var m map[string]any
	_ = json.Unmarshal(body, &m)
	return m
}
