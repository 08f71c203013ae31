// Package smtp implements mailer.Sender and mailer.Verifier over SMTP.
package smtp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/ksmdental/clinic/pkg/mailer"
)

// Sender delivers mail through an SMTP server. Each call opens its own
// connection, so a Sender is safe for concurrent use.
type Sender struct {
	config Config
}

// New creates a new SMTP sender. The configuration is checked lazily:
// Send and Verify return mailer.ErrNotConfigured when no host is set.
func New(cfg Config) *Sender {
	return &Sender{config: cfg}
}

// Verify connects, negotiates TLS, authenticates and disconnects.
func (s *Sender) Verify(ctx context.Context) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if err := client.DialWithContext(ctx); err != nil {
		return classify(err)
	}
	if err := client.Close(); err != nil {
		return classify(err)
	}
	return nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	msg, err := s.buildMessage(email)
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return classify(err)
	}
	return nil
}

func (s *Sender) client() (*mail.Client, error) {
	if !s.config.Configured() {
		return nil, fmt.Errorf("%w: SMTP_HOST is not set", mailer.ErrNotConfigured)
	}

	opts := []mail.Option{}
	if s.config.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if s.config.Port > 0 {
		opts = append(opts, mail.WithPort(s.config.Port))
	}
	if s.config.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.config.Timeout))
	}
	if s.config.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.config.Username),
			mail.WithPassword(s.config.Password),
		)
	}

	client, err := mail.NewClient(s.config.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mailer.ErrNotConfigured, err)
	}
	return client, nil
}

func (s *Sender) from(email *mailer.Email) string {
	if email.From != "" {
		return email.From
	}
	addr := s.config.SenderEmail
	if addr == "" {
		addr = s.config.Username
	}
	return mailer.Recipient(s.config.SenderName, addr)
}

func (s *Sender) buildMessage(email *mailer.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(s.from(email)); err != nil {
		return nil, fmt.Errorf("smtp: invalid from address: %w", err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("smtp: invalid recipient: %w", err)
	}
	if len(email.CC) > 0 {
		if err := msg.Cc(email.CC...); err != nil {
			return nil, fmt.Errorf("smtp: invalid cc: %w", err)
		}
	}
	if len(email.BCC) > 0 {
		if err := msg.Bcc(email.BCC...); err != nil {
			return nil, fmt.Errorf("smtp: invalid bcc: %w", err)
		}
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return nil, fmt.Errorf("smtp: invalid reply-to: %w", err)
		}
	}

	msg.Subject(email.Subject)
	msg.SetMessageID()
	msg.SetDate()
	for k, v := range email.Headers {
		msg.SetGenHeader(mail.Header(k), v)
	}

	switch {
	case email.Text != "" && email.HTML != "":
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	case email.HTML != "":
		msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
	}

	for _, a := range email.Attachments {
		var opts []mail.FileOption
		if a.ContentType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(a.ContentType)))
		}
		var err error
		if a.ContentID != "" {
			err = msg.EmbedReader(a.ContentID, bytes.NewReader(a.Content), opts...)
		} else {
			err = msg.AttachReader(a.Filename, bytes.NewReader(a.Content), opts...)
		}
		if err != nil {
			return nil, fmt.Errorf("smtp: attach %s: %w", a.Filename, err)
		}
	}

	return msg, nil
}

// classify wraps err with the mailer failure class it belongs to.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535, 538:
			return errors.Join(mailer.ErrAuth, err)
		}
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range []string{"smtp auth", "authentication", "auth failed"} {
		if strings.Contains(msg, hint) {
			return errors.Join(mailer.ErrAuth, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(mailer.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return errors.Join(mailer.ErrTimeout, err)
		}
		return errors.Join(mailer.ErrConnection, err)
	}
	if strings.Contains(msg, "dial") {
		return errors.Join(mailer.ErrConnection, err)
	}

	return err
}
