package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/internal/notify"
	"github.com/ksmdental/clinic/pkg/counter"
	"github.com/ksmdental/clinic/pkg/mailer"
)

// counterTimeout bounds the post-response counter update.
const counterTimeout = 5 * time.Second

// AppointmentNotifier sends the booking emails.
type AppointmentNotifier interface {
	Configured() bool
	NotifyAppointment(ctx context.Context, a notify.Appointment) notify.AppointmentResult
}

// Appointment serves POST /api/appointment.
type Appointment struct {
	notifier AppointmentNotifier
	counter  counter.Store
	cfg      Config
}

func NewAppointment(n AppointmentNotifier, store counter.Store, cfg Config) *Appointment {
	return &Appointment{notifier: n, counter: store, cfg: cfg}
}

func (h *Appointment) Routes(r internal.Router) {
	r.POST("/api/appointment", h.submit)
}

type appointmentResponse struct {
	EmailError     string `json:"emailError,omitempty"`
	Details        any    `json:"details,omitempty"`
	OK             bool   `json:"ok"`
	EmailSent      bool   `json:"emailSent"`
	AdminEmailSent bool   `json:"adminEmailSent"`
	UserEmailSent  bool   `json:"userEmailSent"`
}

func (h *Appointment) submit(c internal.Context) error {
	var form AppointmentForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	if !h.notifier.Configured() {
		c.LogError("OWNER_EMAIL is not set")
		return internal.ErrInternal(msgServerConfig)
	}

	res := h.notifier.NotifyAppointment(c.Context(), form.appointment())

	resp := appointmentResponse{
		OK:             true,
		EmailSent:      res.EmailSent(),
		AdminEmailSent: res.AdminSent,
		UserEmailSent:  res.UserSent,
	}
	if res.Err != nil {
		resp.EmailError = mailErrorMessage(res.Err, msgBookingFailed)
		if h.cfg.Development() {
			resp.Details = mailDetails{Message: res.Err.Error(), Code: mailer.ErrorCode(res.Err)}
		}
		c.LogWarn("appointment saved without admin email",
			slog.String("code", mailer.ErrorCode(res.Err)),
			slog.Bool("user_email_sent", res.UserSent))
	}
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return err
	}

	// The booking is recorded even when email failed.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Context()), counterTimeout)
	defer cancel()
	snap, err := h.counter.Add(ctx, 1)
	if err != nil {
		c.LogError("patient counter update failed", slog.Any("error", err))
		return nil
	}
	c.LogInfo("appointment booked", slog.Int64("happy_patients", snap.HappyPatients))
	return nil
}
