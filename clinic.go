package clinic

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/pkg/health"
	"github.com/ksmdental/clinic/pkg/logger"
)

type (
	// App wires routing, middleware and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request and response access to handlers.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler renders errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures App.Run.
	RunOption = internal.RunOption

	// HealthOption configures the probe endpoints.
	HealthOption = internal.HealthOption

	// ValidationErrors is a collection of field errors.
	ValidationErrors = internal.ValidationErrors

	// HTTPError is an error with a status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ResponseWriter records the status and size of a response.
	ResponseWriter = internal.ResponseWriter

	// ContextExtractor adds a request-scoped attribute to log records.
	ContextExtractor = logger.ContextExtractor
)

// New builds an App. The App is immutable afterwards.
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware, outermost first.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers. Each handler's Routes is called once.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithErrorHandler sets the renderer for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets the 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets the 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
//
//	clinic.WithHealthChecks(
//	    clinic.WithReadinessCheck("counter", counter.Healthcheck(store)),
//	    clinic.WithReadinessCheck("redis", redis.Healthcheck(rdb)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger and tags it with component.
func WithLogger(l *slog.Logger, component string) Option {
	return internal.WithLogger(l, component)
}

// Health check options

// WithLivenessPath overrides "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath overrides "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessTimeout bounds the readiness checks.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return internal.WithReadinessTimeout(d)
}

// WithReadinessCheck adds a named readiness check. Checks run in parallel.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger overrides the logger used for server lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown and the shutdown hooks.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs before the listener opens. An error aborts Run.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers cleanup run after the server stops, in order.
//
//	clinic.ShutdownHook(redis.Shutdown(rdb))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// Listener serves on ln instead of opening the address.
func Listener(ln net.Listener) RunOption {
	return internal.Listener(ln)
}

// WithContext sets the parent context. Cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}

// WithError attaches the underlying cause. It is logged, never rendered.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithErrorCode sets a machine-readable code such as EAUTH.
func WithErrorCode(code string) HTTPErrorOption {
	return internal.WithErrorCode(code)
}

// WithDetails attaches a JSON-serialisable payload.
func WithDetails(details any) HTTPErrorOption {
	return internal.WithDetails(details)
}

// ContextValue returns the value stored under key, or the zero T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}
