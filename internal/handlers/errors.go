package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/middlewares"
	"github.com/ksmdental/clinic/pkg/mailer"
	"github.com/ksmdental/clinic/pkg/validator"
)

const (
	msgInvalidForm   = "Invalid form data."
	msgServerConfig  = "Server configuration error."
	msgNotFound      = "Not found"
	msgMethod        = "Method not allowed"
	msgInternal      = "Internal server error"
	msgTimeout       = "Request timed out. Please try again."
	msgMailAuth      = "Email authentication failed. Please check your SMTP credentials."
	msgMailConnect   = "Could not connect to email server. Please check your SMTP settings."
	msgMessageFailed = "Could not send message. Please try again in a moment."
	msgBookingFailed = "Could not send booking. Please try again in a moment."
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Details any    `json:"details,omitempty"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	OK      bool   `json:"ok"`
}

// mailDetails is included in development mode only.
type mailDetails struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// mailErrorMessage maps a transport failure to the message shown to visitors.
func mailErrorMessage(err error, fallback string) string {
	switch mailer.ErrorCode(err) {
	case mailer.CodeAuth:
		return msgMailAuth
	case mailer.CodeConnection:
		return msgMailConnect
	default:
		return fallback
	}
}

// ErrorHandler renders handler errors as JSON.
//
//   - *internal.HTTPError keeps its status, message and details.
//   - validator.ValidationErrors become 400 "Invalid form data.".
//   - a request that ran past its deadline (middlewares.TimedOut) becomes 503.
//   - anything else, including panics, becomes 500.
func ErrorHandler(log *slog.Logger) internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		var (
			he *internal.HTTPError
			ve validator.ValidationErrors
		)
		switch {
		case errors.As(err, &he):
			if he.Code >= http.StatusInternalServerError {
				log.ErrorContext(c, "request failed", slog.Any("error", err), slog.Int("status", he.Code))
			}
			return c.JSON(he.Code, errorBody{Error: he.Message, Details: he.Details, Code: he.ErrorCode})
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, errorBody{Error: msgInvalidForm, Details: newFormErrors(ve)})
		case middlewares.TimedOut(c, err):
			return c.JSON(http.StatusServiceUnavailable, errorBody{Error: msgTimeout})
		case middlewares.IsPanicError(err):
			return c.JSON(http.StatusInternalServerError, errorBody{Error: msgInternal})
		default:
			log.ErrorContext(c, "unhandled error", slog.Any("error", err))
			return c.JSON(http.StatusInternalServerError, errorBody{Error: msgInternal})
		}
	}
}

// NotFound answers unknown routes.
func NotFound(c internal.Context) error {
	return c.JSON(http.StatusNotFound, errorBody{Error: msgNotFound})
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed(c internal.Context) error {
	return c.JSON(http.StatusMethodNotAllowed, errorBody{Error: msgMethod})
}

// bindForm decodes, sanitises and validates a form body. Malformed JSON and
// field failures both yield 400 "Invalid form data.".
func bindForm(c internal.Context, v internal.Validatable) error {
	ve, err := c.BindJSON(v)
	switch {
	case errors.Is(err, internal.ErrBodyTooLarge):
		return internal.ErrPayloadTooLarge(middlewares.BodyLimitMessage)
	case errors.Is(err, internal.ErrInvalidBody):
		return internal.ErrBadRequest(msgInvalidForm, internal.WithError(err),
			internal.WithDetails(formErrors{FormErrors: []string{"Malformed JSON body."}, FieldErrors: map[string][]string{}}))
	case err != nil:
		return err
	case len(ve) > 0:
		return ve
	}
	return nil
}
