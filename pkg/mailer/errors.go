package mailer

import (
	"context"
	"errors"
)

var (
	ErrNoRecipient        = errors.New("email must have at least one recipient")
	ErrNoSubject          = errors.New("email must have a subject")
	ErrNoContent          = errors.New("email must have a body")
	ErrInvalidHeader      = errors.New("email header contains a line break")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrLayoutNotFound     = errors.New("layout not found")
	ErrRenderFailed       = errors.New("failed to render template")
	ErrSendFailed         = errors.New("failed to send email")
	ErrVerifyFailed       = errors.New("failed to verify mail transport")
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// Transport failure classes. Senders wrap their errors with these.
	ErrNotConfigured = errors.New("mail transport is not configured")
	ErrAuth          = errors.New("mail server rejected credentials")
	ErrConnection    = errors.New("could not connect to mail server")
	ErrTimeout       = errors.New("mail operation timed out")
)

// Error codes reported to clients and logs.
const (
	CodeAuth       = "EAUTH"
	CodeConnection = "ECONNECTION"
	CodeTimeout    = "ETIMEDOUT"
	CodeConfig     = "ECONFIG"
	CodeSend       = "ESEND"
)

// ErrorCode classifies err into one of the Code constants.
// Returns "" for a nil error.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuth):
		return CodeAuth
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, ErrConnection):
		return CodeConnection
	case errors.Is(err, ErrNotConfigured):
		return CodeConfig
	default:
		return CodeSend
	}
}
