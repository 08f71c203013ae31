package mailer

import "context"

// Sender delivers a rendered Email. Implementations wrap authentication
// failures with ErrAuth and network failures with ErrConnection so callers
// can map them to user-facing messages.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Verifier is implemented by senders that can check their connection and
// credentials without sending anything.
type Verifier interface {
	Verify(ctx context.Context) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) error

func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}
