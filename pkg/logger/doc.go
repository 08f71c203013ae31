// Package logger builds the slog loggers used by the clinic server and CLI.
//
// Output is JSON by default and text when LOG_FORMAT=text. Context extractors
// attach request scoped attributes such as the request id to every record:
//
//	log := logger.New(logger.Config{Level: slog.LevelDebug}, os.Stdout,
//		middlewares.RequestIDExtractor(),
//	)
//
// NewWithSentry fans records out to Sentry as well when SENTRY_DSN is set.
// Errors become Sentry issues, warnings and errors are kept as searchable logs.
package logger
