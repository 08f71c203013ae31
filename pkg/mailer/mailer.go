package mailer

import (
	"context"
	"errors"
	"fmt"
	"maps"
)

// Mailer renders templates and hands the result to a Sender, bounding every
// transport call with the configured timeouts.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a new Mailer with the given sender and renderer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

// SendParams contains parameters for sending a templated email.
type SendParams struct {
	Data     any
	Headers  map[string]string
	Tags     Tags
	To       string
	Template string // template filename, e.g. "appointment_admin.md"

	// Optional overrides
	Subject     string
	Layout      string
	From        string
	ReplyTo     string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Verify checks the transport connection and credentials.
// Senders that do not implement Verifier are assumed ready.
func (m *Mailer) Verify(ctx context.Context) error {
	v, ok := m.sender.(Verifier)
	if !ok {
		return nil
	}
	err := withTimeout(ctx, m.config.VerifyTimeout, "verify", v.Verify)
	if err != nil {
		return errors.Join(ErrVerifyFailed, err)
	}
	return nil
}

// Compose renders a template into an Email without sending it.
// Subject resolution: params.Subject > template "Subject" metadata > config fallback.
// The chosen subject is itself executed as a template with params.Data.
func (m *Mailer) Compose(params SendParams) (*Email, error) {
	if params.To == "" {
		return nil, ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		if s, ok := result.Metadata["Subject"].(string); ok {
			subject = s
		} else {
			subject = m.config.FallbackSubject
		}
	}
	subject, err = m.renderer.RenderString(subject, params.Data)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	email := &Email{
		To:          []string{params.To},
		Subject:     subject,
		HTML:        result.HTML,
		Text:        result.Text,
		From:        params.From,
		ReplyTo:     params.ReplyTo,
		CC:          params.CC,
		BCC:         params.BCC,
		Attachments: params.Attachments,
		Tags:        params.Tags,
	}
	if len(params.Headers) > 0 {
		email.Headers = maps.Clone(params.Headers)
	}
	return email, nil
}

// Send renders a template and sends the resulting email.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	email, err := m.Compose(params)
	if err != nil {
		return err
	}
	return m.SendRaw(ctx, email)
}

// SendRaw sends a pre-built email without template rendering.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	err := withTimeout(ctx, m.config.SendTimeout, fmt.Sprintf("send %q", email.Subject), func(ctx context.Context) error {
		return m.sender.Send(ctx, email)
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
