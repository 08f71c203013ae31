package middlewares

import (
	"net/http"
	"runtime"

	"github.com/ksmdental/clinic/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace in logs
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack trace in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that turns a panic anywhere below it into a
// PanicError for the ErrorHandler. It must be the outermost middleware.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					req := c.Request()
					pe := &PanicError{Value: r, Method: req.Method, Path: req.URL.Path}
					if cfg.DisablePrintStack {
						c.LogError("panic recovered", "panic", r, "method", pe.Method, "path", pe.Path)
					} else {
						pe.Stack = make([]byte, cfg.StackSize)
						pe.Stack = pe.Stack[:runtime.Stack(pe.Stack, false)]
						c.LogError("panic recovered", "panic", r, "method", pe.Method, "path", pe.Path, "stack", string(pe.Stack))
					}
					err = pe
				}
			}()

			return next(c)
		}
	}
}
