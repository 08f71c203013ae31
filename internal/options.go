package internal

import (
	"log/slog"

	"github.com/ksmdental/clinic/pkg/health"
)

// Option configures the App.
type Option func(*App)

// WithMiddleware appends global middleware. The first one listed runs first.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers route handlers.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithErrorHandler sets the handler for errors returned by handlers and middleware.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.errorHandler = h }
}

// WithNotFoundHandler sets the handler for unmatched routes.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFoundHandler = h }
}

// WithMethodNotAllowedHandler sets the handler for a known path with the wrong method.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) { a.methodNotAllowedHandler = h }
}

// WithHealthChecks enables /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger sets the application logger, tagged with component.
func WithLogger(l *slog.Logger, component string) Option {
	return func(a *App) {
		if l == nil {
			return
		}
		if component != "" {
			l = l.With(slog.String("component", component))
		}
		a.logger = l
	}
}
