package notify

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/ksmdental/clinic/pkg/id"
	"github.com/ksmdental/clinic/pkg/mailer"
)

//go:embed templates
var embedded embed.FS

const (
	tmplAppointmentAdmin = "appointment_admin.md"
	tmplAppointmentUser  = "appointment_user.md"
	tmplContactAdmin     = "contact_admin.md"
	tmplTest             = "smtp_test.md"
)

// ErrOwnerNotConfigured means OWNER_EMAIL is empty, so there is nobody to notify.
var ErrOwnerNotConfigured = errors.New("notify: OWNER_EMAIL is not configured")

// Config describes the clinic as it appears in emails.
type Config struct {
	OwnerEmail  string `env:"OWNER_EMAIL"`
	ClinicName  string `env:"CLINIC_NAME" envDefault:"KSM Dental Care"`
	ClinicPhone string `env:"CLINIC_PHONE" envDefault:"+91 99999 99999"`
	Timezone    string `env:"CLINIC_TIMEZONE" envDefault:"Asia/Kolkata"`
	// FromEmail is the sender address. Empty means the transport default.
	FromEmail string `env:"FROM_EMAIL"`
}

// Templates returns the embedded email templates, rooted so that layouts
// live under "layouts/".
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Appointment is a validated booking request.
type Appointment struct {
	FullName      string
	Phone         string
	Email         string
	Service       string
	PreferredDate string
	PreferredTime string
	Message       string
}

// Contact is a validated contact form message.
type Contact struct {
	FullName string
	Email    string
	Phone    string
	Message  string
}

// AppointmentResult reports which emails went out. Err is the verify or
// admin send failure; a failed acknowledgement is only logged.
type AppointmentResult struct {
	Err       error
	AdminSent bool
	UserSent  bool
}

// EmailSent reports whether at least one email was delivered.
func (r AppointmentResult) EmailSent() bool { return r.AdminSent || r.UserSent }

// Notifier sends the clinic's emails through a mailer.Mailer.
type Notifier struct {
	mailer *mailer.Mailer
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
	cfg    Config
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger for send failures that do not surface to callers.
func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) { n.logger = l }
}

// WithClock replaces time.Now for the "Submitted" timestamp.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// New returns a Notifier. It fails when cfg.Timezone is not a known zone.
func New(m *mailer.Mailer, cfg Config, opts ...Option) (*Notifier, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("notify: load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.FromEmail = CleanAddress(cfg.FromEmail)
	n := &Notifier{
		mailer: m,
		cfg:    cfg,
		loc:    loc,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Configured reports whether an owner address is set.
func (n *Notifier) Configured() bool { return n.cfg.OwnerEmail != "" }

// Verify checks the mail transport.
func (n *Notifier) Verify(ctx context.Context) error {
	return n.mailer.Verify(ctx)
}

// emailData is the template view of one submission.
type emailData struct {
	ClinicName     string
	ClinicPhone    string
	ClinicPhoneURL string
	OwnerEmail     string
	OwnerEmailURL  string
	FullName       string
	Phone          string
	PhoneURL       string
	Email          string
	EmailURL       string
	Service        string
	Date           string
	Time           string
	Message        string
	Submitted      string
}

func (n *Notifier) baseData() emailData {
	return emailData{
		ClinicName:     n.cfg.ClinicName,
		ClinicPhone:    n.cfg.ClinicPhone,
		ClinicPhoneURL: telURL(n.cfg.ClinicPhone),
		OwnerEmail:     n.cfg.OwnerEmail,
		OwnerEmailURL:  mailtoURL(n.cfg.OwnerEmail),
		Submitted:      FormatSubmitted(n.now(), n.loc),
	}
}

func (n *Notifier) params(ctx context.Context, template, to string, data emailData, kind string) mailer.SendParams {
	return mailer.SendParams{
		Template: template,
		To:       to,
		From:     n.from(),
		Data:     data,
		Headers:  map[string]string{"X-Entity-Ref-ID": id.Reference(ctx, template)},
		Tags:     mailer.Tags{"category": kind},
	}
}

func (n *Notifier) from() string {
	if n.cfg.FromEmail == "" {
		return ""
	}
	return mailer.Recipient(n.cfg.ClinicName, n.cfg.FromEmail)
}

// NotifyAppointment verifies the transport, then sends the admin
// notification and the patient acknowledgement. The two sends fail
// independently.
func (n *Notifier) NotifyAppointment(ctx context.Context, a Appointment) AppointmentResult {
	if !n.Configured() {
		return AppointmentResult{Err: ErrOwnerNotConfigured}
	}

	data := n.baseData()
	data.FullName = a.FullName
	data.Phone = a.Phone
	data.PhoneURL = telURL(a.Phone)
	data.Email = a.Email
	data.EmailURL = mailtoURL(a.Email)
	data.Service = a.Service
	data.Date = FormatDate(a.PreferredDate)
	data.Time = orDefault(a.PreferredTime, notSpecified)
	data.Message = a.Message

	var res AppointmentResult
	if err := n.mailer.Verify(ctx); err != nil {
		n.logger.ErrorContext(ctx, "mail transport verify failed", slog.Any("error", err))
		res.Err = err
		return res
	}

	admin := n.params(ctx, tmplAppointmentAdmin, n.cfg.OwnerEmail, data, "appointment")
	admin.ReplyTo = a.Email
	if err := n.mailer.Send(ctx, admin); err != nil {
		n.logger.ErrorContext(ctx, "appointment admin email failed",
			slog.Any("error", err), slog.String("code", mailer.ErrorCode(err)))
		res.Err = err
	} else {
		res.AdminSent = true
	}

	user := n.params(ctx, tmplAppointmentUser, a.Email, data, "appointment")
	if err := n.mailer.Send(ctx, user); err != nil {
		n.logger.WarnContext(ctx, "appointment acknowledgement failed",
			slog.Any("error", err), slog.String("code", mailer.ErrorCode(err)))
	} else {
		res.UserSent = true
	}

	return res
}

// NotifyContact verifies the transport and forwards the message to the owner
// with Reply-To set to the sender.
func (n *Notifier) NotifyContact(ctx context.Context, c Contact) error {
	if !n.Configured() {
		return ErrOwnerNotConfigured
	}

	data := n.baseData()
	data.FullName = c.FullName
	data.Email = c.Email
	data.EmailURL = mailtoURL(c.Email)
	data.Phone = orDefault(c.Phone, notProvided)
	data.PhoneURL = telURL(c.Phone)
	data.Message = c.Message

	if err := n.mailer.Verify(ctx); err != nil {
		return err
	}
	p := n.params(ctx, tmplContactAdmin, n.cfg.OwnerEmail, data, "contact")
	p.ReplyTo = c.Email
	return n.mailer.Send(ctx, p)
}

// SendTest verifies the transport and sends a short test email to the owner.
func (n *Notifier) SendTest(ctx context.Context) error {
	if !n.Configured() {
		return ErrOwnerNotConfigured
	}
	if err := n.mailer.Verify(ctx); err != nil {
		return err
	}
	return n.mailer.Send(ctx, n.params(ctx, tmplTest, n.cfg.OwnerEmail, n.baseData(), "test"))
}

// NewMailer builds a mailer.Mailer over sender with the embedded templates.
func NewMailer(sender mailer.Sender, cfg mailer.Config) *mailer.Mailer {
	return mailer.New(sender, mailer.NewRenderer(Templates()), cfg)
}
