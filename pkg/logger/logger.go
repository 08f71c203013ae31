package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config controls log output. Level accepts slog names (debug, info, warn, error).
type Config struct {
	Level             slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Format            string     `env:"LOG_FORMAT" envDefault:"json"`
	SentryDSN         string     `env:"SENTRY_DSN"`
	SentryEnvironment string     `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// SentryLevel is the lowest level stored in Sentry logs. Only errors raise issues.
	SentryLevel slog.Level `env:"SENTRY_LEVEL" envDefault:"warn"`
}

// New returns a logger writing to w in the configured format.
func New(cfg Config, w io.Writer, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(baseHandler(cfg, w), extractors...))
}

// NewWithSentry is New plus Sentry forwarding. The returned flush function
// waits for buffered events and must be called before the process exits.
// Without a DSN, or when the SDK fails to start, it degrades to New.
func NewWithSentry(cfg Config, w io.Writer, extractors ...ContextExtractor) (*slog.Logger, func(time.Duration)) {
	base := baseHandler(cfg, w)
	noop := func(time.Duration) {}

	if cfg.SentryDSN == "" {
		return slog.New(NewLogHandlerDecorator(base, extractors...)), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("sentry init failed", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(base, extractors...)), noop
	}

	sh := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   levelsFrom(cfg.SentryLevel),
	}.NewSentryHandler(context.Background())

	log := slog.New(NewLogHandlerDecorator(Fanout(base, sh), extractors...))
	return log, func(d time.Duration) { sentry.Flush(d) }
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func baseHandler(cfg Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func levelsFrom(floor slog.Level) []slog.Level {
	var out []slog.Level
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= floor {
			out = append(out, l)
		}
	}
	return out
}
