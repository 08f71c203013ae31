package mailer

import (
	"fmt"
	"strings"
)

// Tags are provider labels for a message. A struct{} value marks a
// presence-only tag; anything else is sent as a name/value pair.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a display name and address as "Name <email>".
// Quotes and angle brackets in the name are dropped so the result stays a
// single valid address.
func Recipient(name, email string) string {
	name = strings.Trim(strings.TrimSpace(name), `"'`)
	name = strings.NewReplacer("<", "", ">", "", `"`, "").Replace(name)
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully rendered message ready for a Sender.
type Email struct {
	Headers     map[string]string
	Tags        Tags
	Subject     string
	HTML        string
	Text        string
	From        string // empty means the sender's default
	ReplyTo     string
	To          []string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Validate checks the fields every transport needs.
func (e *Email) Validate() error {
	if e == nil || len(e.To) == 0 {
		return ErrNoRecipient
	}
	for _, to := range e.To {
		if strings.TrimSpace(to) == "" {
			return ErrNoRecipient
		}
	}
	if strings.TrimSpace(e.Subject) == "" {
		return ErrNoSubject
	}
	if e.HTML == "" && e.Text == "" {
		return ErrNoContent
	}
	if strings.ContainsAny(e.Subject, "\r\n") {
		return ErrInvalidHeader
	}
	for k, v := range e.Headers {
		if strings.ContainsAny(k+v, "\r\n") {
			return ErrInvalidHeader
		}
	}
	return nil
}

// Attachment is a file attached to an Email.
type Attachment struct {
	Filename    string
	ContentType string
	ContentID   string // set for inline parts
	Content     []byte
}
