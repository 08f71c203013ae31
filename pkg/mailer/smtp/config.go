package smtp

import "time"

// Config holds SMTP transport configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`

	// SenderEmail is the default From address. SenderName is its display name.
	SenderEmail string `env:"FROM_EMAIL"`
	SenderName  string `env:"FROM_NAME"`

	Port int `env:"SMTP_PORT" envDefault:"587"`

	// Secure selects implicit TLS (usually port 465). When false the client
	// upgrades with STARTTLS if the server offers it.
	Secure bool `env:"SMTP_SECURE" envDefault:"false"`

	// Timeout bounds each network read and write on the connection.
	Timeout time.Duration `env:"SMTP_IO_TIMEOUT" envDefault:"20s"`
}

// Configured reports whether a host is set.
func (c Config) Configured() bool {
	return c.Host != ""
}
