package mailer

import "time"

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	FallbackSubject string        `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Notification"`
	DefaultLayout   string        `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
	VerifyTimeout   time.Duration `env:"SMTP_VERIFY_TIMEOUT" envDefault:"10s"`
	SendTimeout     time.Duration `env:"SMTP_SEND_TIMEOUT" envDefault:"20s"`
}
