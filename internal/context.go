package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ksmdental/clinic/pkg/sanitizer"
	"github.com/ksmdental/clinic/pkg/validator"
)

// ValidationErrors is a collection of field validation errors.
type ValidationErrors = validator.ValidationErrors

// JWTClaimsKey is the context key for parsed JWT claims.
type JWTClaimsKey struct{}

// Validatable is implemented by request payloads that check themselves
// after binding and sanitising.
type Validatable interface {
	Validate() error
}

// Context provides request and response access to handlers.
// It implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	ResponseWriter() *ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// SetContext replaces the request context, e.g. to add a deadline.
	SetContext(ctx context.Context)

	// Param returns a URL path parameter.
	Param(name string) string

	// Query returns a query string parameter.
	Query(name string) string

	Header(name string) string
	SetHeader(name, value string)

	// JSON writes v as a JSON response.
	JSON(code int, v any) error
	NoContent(code int) error

	// Error creates an HTTPError without writing it. Return it from the handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// BindJSON decodes the body into v, applies `sanitize` struct tags and
	// calls v.Validate when v implements Validatable. Field failures are
	// returned as ValidationErrors; decoding failures as the error, wrapping
	// ErrInvalidBody or ErrBodyTooLarge.
	BindJSON(v any) (ValidationErrors, error)

	// Written reports whether a response has been started.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)
	// Get reads a value from the request context.
	Get(key any) any
}

type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
}

func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *requestContext {
	return &requestContext{
		request:  r,
		response: NewResponseWriter(w),
		logger:   logger,
	}
}

func (c *requestContext) Deadline() (time.Time, bool)   { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}         { return c.request.Context().Done() }
func (c *requestContext) Err() error                    { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any             { return c.request.Context().Value(key) }
func (c *requestContext) Request() *http.Request        { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.response }
func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.response
}
func (c *requestContext) Context() context.Context { return c.request.Context() }

func (c *requestContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) BindJSON(v any) (ValidationErrors, error) {
	if err := decodeJSON(c.request.Body, v); err != nil {
		return nil, err
	}
	if err := sanitizer.SanitizeStruct(v); err != nil {
		return nil, fmt.Errorf("sanitize: %w", err)
	}
	val, ok := v.(Validatable)
	if !ok {
		return nil, nil
	}
	if err := val.Validate(); err != nil {
		if validator.IsValidationError(err) {
			return validator.ExtractValidationErrors(err), nil
		}
		return nil, fmt.Errorf("validate: %w", err)
	}
	return nil, nil
}

// decodeJSON treats an empty body as an empty object so that required
// fields surface as validation errors.
func decodeJSON(body io.Reader, v any) error {
	if body == nil || body == http.NoBody {
		return nil
	}
	err := json.NewDecoder(body).Decode(v)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &tooLarge):
		return errors.Join(ErrBodyTooLarge, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.SetContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
