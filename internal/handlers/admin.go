package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/pkg/mailer"
)

// TestMailer sends the transport test email.
type TestMailer interface {
	SendTest(ctx context.Context) error
}

// Admin serves GET /api/test-email. Pass a guard (the JWT middleware) to
// require authentication.
type Admin struct {
	mailer TestMailer
	guard  []internal.Middleware
}

func NewAdmin(m TestMailer, guard ...internal.Middleware) *Admin {
	return &Admin{mailer: m, guard: guard}
}

func (h *Admin) Routes(r internal.Router) {
	r.GET("/api/test-email", h.testEmail, h.guard...)
}

func (h *Admin) testEmail(c internal.Context) error {
	if err := h.mailer.SendTest(c.Context()); err != nil {
		code := mailer.ErrorCode(err)
		c.LogError("test email failed", slog.Any("error", err), slog.String("code", code))
		return internal.ErrInternal(err.Error(), internal.WithError(err), internal.WithErrorCode(code))
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "message": "Test email sent successfully!"})
}

// Health serves GET /api/health, the endpoint the site pings.
type Health struct{}

func (Health) Routes(r internal.Router) {
	r.GET("/api/health", func(c internal.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})
}
