// Package resend implements mailer.Sender on top of the Resend HTTP API.
package resend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/ksmdental/clinic/pkg/mailer"
)

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("%w: RESEND_API_KEY is not set", mailer.ErrNotConfigured)
	}

	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}
	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return classify(fmt.Errorf("resend: failed to send email: %w", err))
	}
	return nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(mailer.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Join(mailer.ErrConnection, err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "api key") || strings.Contains(msg, "401") || strings.Contains(msg, "403") {
		return errors.Join(mailer.ErrAuth, err)
	}
	return err
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result
}

// convertTags maps tags to Resend name/value pairs.
// Resend only accepts ASCII letters, digits, '_' and '-' so other runes become '_'.
func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  tagSafe(name),
			Value: tagSafe(tagValue(value)),
		})
	}
	return result
}

func tagSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}

// tagValue converts any value to a string. Presence-only tags become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
