// Package config loads the server configuration from the environment.
//
// Every package owns its Config struct; this package only nests them so a
// single env.Parse call fills everything. A .env file, when present, is
// loaded first and never overrides variables already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ksmdental/clinic/internal/handlers"
	"github.com/ksmdental/clinic/internal/notify"
	"github.com/ksmdental/clinic/pkg/counter"
	"github.com/ksmdental/clinic/pkg/jwt"
	"github.com/ksmdental/clinic/pkg/logger"
	"github.com/ksmdental/clinic/pkg/mailer"
	"github.com/ksmdental/clinic/pkg/mailer/resend"
	"github.com/ksmdental/clinic/pkg/mailer/smtp"
	"github.com/ksmdental/clinic/pkg/places"
	"github.com/ksmdental/clinic/pkg/ratelimit"
	"github.com/ksmdental/clinic/pkg/redis"
	"github.com/ksmdental/clinic/pkg/storage"
	"github.com/ksmdental/clinic/pkg/validator"
)

// Mail transports.
const (
	TransportSMTP   = "smtp"
	TransportResend = "resend"
)

// ErrInvalid wraps validation failures returned by Load.
var ErrInvalid = errors.New("config: invalid configuration")

// HTTP configures the listener and the request pipeline.
type HTTP struct {
	Port            int           `env:"PORT" envDefault:"5000"`
	Host            string        `env:"HOST"`
	ClientOrigins   []string      `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173" envSeparator:","`
	BodyLimit       int64         `env:"BODY_LIMIT" envDefault:"102400"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Addr is the listen address.
func (h HTTP) Addr() string { return fmt.Sprintf("%s:%d", h.Host, h.Port) }

// Config is the complete server configuration.
type Config struct {
	Transport string `env:"MAIL_TRANSPORT" envDefault:"smtp"`

	HTTP      HTTP
	Log       logger.Config
	Handlers  handlers.Config
	Notify    notify.Config
	Mailer    mailer.Config
	SMTP      smtp.Config
	Resend    resend.Config
	Places    places.Config
	Counter   counter.Config
	RateLimit ratelimit.Config
	Redis     redis.Config
	Storage   storage.Config
	JWT       jwt.Config
}

// Load reads envFile (when it exists), parses the environment and
// validates the result. An empty envFile skips the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize fills values derived from other settings.
func (c *Config) normalize() {
	from := notify.CleanAddress(c.Notify.FromEmail)
	if from == "" {
		from = c.SMTP.Username
	}
	c.Notify.FromEmail = from
	c.SMTP.SenderEmail = from
	c.Resend.SenderEmail = from
	if c.SMTP.SenderName == "" {
		c.SMTP.SenderName = c.Notify.ClinicName
	}
	if c.Resend.SenderName == "" {
		c.Resend.SenderName = c.Notify.ClinicName
	}

	origins := c.HTTP.ClientOrigins[:0]
	for _, o := range c.HTTP.ClientOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	c.HTTP.ClientOrigins = origins
	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
}

// Validate checks ranges and enumerations. Missing credentials are not
// errors: the affected endpoints report them at request time.
func (c Config) Validate() error {
	err := validator.Apply(
		validator.MinNum("PORT", c.HTTP.Port, 1),
		validator.MaxNum("PORT", c.HTTP.Port, 65535),
		validator.MinNum("BODY_LIMIT", c.HTTP.BodyLimit, 1),
		validator.MinNum("REQUEST_TIMEOUT", c.HTTP.RequestTimeout, time.Millisecond),
		validator.MinNum("SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout, time.Millisecond),
		validator.OneOfString("MAIL_TRANSPORT", c.Transport, TransportSMTP, TransportResend),
		validator.MinNum("SMTP_VERIFY_TIMEOUT", c.Mailer.VerifyTimeout, time.Millisecond),
		validator.MinNum("SMTP_SEND_TIMEOUT", c.Mailer.SendTimeout, time.Millisecond),
		validator.MinNum("SMTP_PORT", c.SMTP.Port, 1),
		validator.MaxNum("SMTP_PORT", c.SMTP.Port, 65535),
		validator.When(c.Notify.OwnerEmail != "", validator.EmailString("OWNER_EMAIL", c.Notify.OwnerEmail)),
		validator.When(c.Notify.FromEmail != "", validator.EmailString("FROM_EMAIL", c.Notify.FromEmail)),
		validator.RequiredString("CLINIC_TIMEZONE", c.Notify.Timezone),
		validator.MinNum("PLACES_TIMEOUT", c.Places.Timeout, time.Millisecond),
		validator.MinNum("PLACES_MAX_RPS", c.Places.MaxRPS, 0),
		validator.OneOfString("COUNTER_BACKEND", c.Counter.Backend,
			counter.BackendFile, counter.BackendRedis, counter.BackendS3),
		validator.MinNum("DEFAULT_PATIENT_COUNT", c.Counter.Seed, 0),
		validator.OneOfString("RATE_LIMIT_BACKEND", c.RateLimit.Backend,
			ratelimit.BackendMemory, ratelimit.BackendRedis),
		validator.MinNum("RATE_LIMIT", c.RateLimit.Limit, 1),
		validator.MinNum("RATE_LIMIT_WINDOW", c.RateLimit.Window, time.Second),
		validator.MinNum("TRUSTED_PROXIES", c.RateLimit.TrustedProxies, 0),
		validator.When(c.JWT.Enabled(), validator.MinLenString("ADMIN_JWT_SECRET", c.JWT.Secret, jwt.MinSecretLength)),
		validator.When(c.needsRedis(), validator.RequiredString("REDIS_URL", c.Redis.URL)),
		validator.When(c.Counter.Backend == counter.BackendS3, validator.RequiredString("S3_BUCKET", c.Storage.Bucket)),
	)
	if err != nil {
		return errors.Join(ErrInvalid, err)
	}
	return nil
}

func (c Config) needsRedis() bool {
	return c.Counter.Backend == counter.BackendRedis || c.RateLimit.Backend == ratelimit.BackendRedis
}
