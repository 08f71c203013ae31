package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ksmdental/clinic"
	"github.com/ksmdental/clinic/internal/handlers"
	"github.com/ksmdental/clinic/middlewares"
	"github.com/ksmdental/clinic/pkg/counter"
	"github.com/ksmdental/clinic/pkg/jwt"
	"github.com/ksmdental/clinic/pkg/redis"
)

const component = "clinic"

func newServeCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), o)
		},
	}
}

func runServe(ctx context.Context, o *options) error {
	cfg, err := o.load()
	if err != nil {
		return err
	}
	d, err := newDeps(ctx, cfg, o.logOut)
	if err != nil {
		return err
	}
	defer d.close()

	app, err := newApp(d)
	if err != nil {
		return err
	}

	log := d.log.With(slog.String("component", component))
	log.Info("starting",
		slog.String("addr", cfg.HTTP.Addr()),
		slog.String("mail_transport", cfg.Transport),
		slog.String("counter_backend", cfg.Counter.Backend),
		slog.String("rate_limit_backend", cfg.RateLimit.Backend),
		slog.Bool("redis", d.redis != nil),
		slog.Bool("admin_jwt", cfg.JWT.Enabled()),
	)

	return app.Run(cfg.HTTP.Addr(),
		clinic.WithContext(ctx),
		clinic.Logger(log),
		clinic.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)
}

// newApp assembles the API: middleware in the order documented by the
// middlewares package, the handlers and the probes.
func newApp(d *deps) (*clinic.App, error) {
	cfg := d.cfg

	store, err := d.counterStore()
	if err != nil {
		return nil, err
	}
	notifier, err := d.notifier()
	if err != nil {
		return nil, err
	}
	limiter, err := d.limiter()
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	tokens, err := d.tokens()
	if err != nil {
		return nil, fmt.Errorf("admin tokens: %w", err)
	}
	reviews := d.places()

	var guard []clinic.Middleware
	if tokens != nil {
		guard = append(guard, middlewares.JWT[jwt.StandardClaims](tokens))
	}

	checks := []clinic.HealthOption{
		clinic.WithReadinessCheck("counter", counter.Healthcheck(store)),
	}
	if d.redis != nil {
		checks = append(checks, clinic.WithReadinessCheck("redis", redis.Healthcheck(d.redis)))
	}

	return clinic.New(
		clinic.WithLogger(d.log, component),
		clinic.WithMiddleware(
			middlewares.Recover(),
			middlewares.RequestID(),
			middlewares.AccessLog(cfg.RateLimit.TrustedProxies),
			middlewares.SecureHeaders(),
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.HTTP.ClientOrigins...)),
			middlewares.RateLimit(limiter, middlewares.WithTrustedProxies(cfg.RateLimit.TrustedProxies)),
			middlewares.BodyLimit(cfg.HTTP.BodyLimit),
			middlewares.Timeout(cfg.HTTP.RequestTimeout),
		),
		clinic.WithHandlers(
			handlers.Health{},
			handlers.NewAppointment(notifier, store, cfg.Handlers),
			handlers.NewContact(notifier, cfg.Handlers),
			handlers.NewReviews(reviews),
			handlers.NewStats(reviews, store, cfg.Handlers),
			handlers.NewAdmin(notifier, guard...),
		),
		clinic.WithErrorHandler(handlers.ErrorHandler(d.log)),
		clinic.WithNotFoundHandler(handlers.NotFound),
		clinic.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		clinic.WithHealthChecks(checks...),
	), nil
}
