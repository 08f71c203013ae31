package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/internal/notify"
	"github.com/ksmdental/clinic/pkg/mailer"
)

// ContactNotifier forwards contact messages to the clinic.
type ContactNotifier interface {
	Configured() bool
	NotifyContact(ctx context.Context, c notify.Contact) error
}

// Contact serves POST /api/contact.
type Contact struct {
	notifier ContactNotifier
	cfg      Config
}

func NewContact(n ContactNotifier, cfg Config) *Contact {
	return &Contact{notifier: n, cfg: cfg}
}

func (h *Contact) Routes(r internal.Router) {
	r.POST("/api/contact", h.submit)
}

func (h *Contact) submit(c internal.Context) error {
	var form ContactForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	if !h.notifier.Configured() {
		c.LogError("OWNER_EMAIL is not set")
		return internal.ErrInternal(msgServerConfig)
	}

	if err := h.notifier.NotifyContact(c.Context(), form.contact()); err != nil {
		code := mailer.ErrorCode(err)
		c.LogError("contact email failed", slog.Any("error", err), slog.String("code", code))

		opts := []internal.HTTPErrorOption{internal.WithError(err)}
		if h.cfg.Development() {
			opts = append(opts, internal.WithDetails(mailDetails{Message: err.Error(), Code: code}))
		}
		return internal.ErrInternal(mailErrorMessage(err, msgMessageFailed), opts...)
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
