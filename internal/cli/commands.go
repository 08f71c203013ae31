package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ksmdental/clinic/internal/config"
	"github.com/ksmdental/clinic/pkg/mailer"
)

// withDeps loads the configuration, builds deps, runs fn and releases
// everything afterwards.
func withDeps(ctx context.Context, o *options, fn func(*deps) error) error {
	cfg, err := o.load()
	if err != nil {
		return err
	}
	d, err := newDeps(ctx, cfg, o.logOut)
	if err != nil {
		return err
	}
	defer d.close()
	return fn(d)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newMailCommand(o *options) *cobra.Command {
	mail := &cobra.Command{
		Use:   "mail",
		Short: "Mail transport tools",
	}
	mail.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Verify the transport and send the test email to OWNER_EMAIL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDeps(cmd.Context(), o, func(d *deps) error {
				n, err := d.notifier()
				if err != nil {
					return err
				}
				if err := n.SendTest(cmd.Context()); err != nil {
					return fmt.Errorf("%s: %w", mailer.ErrorCode(err), err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Test email sent to %s via %s\n", d.cfg.Notify.OwnerEmail, d.cfg.Transport)
				return err
			})
		},
	})
	return mail
}

func newCounterCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Inspect or change the happy patients counter",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the counter",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDeps(cmd.Context(), o, func(d *deps) error {
					store, err := d.counterStore()
					if err != nil {
						return err
					}
					snap, err := store.Load(cmd.Context())
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), snap)
				})
			},
		},
		&cobra.Command{
			Use:   "set N",
			Short: "Overwrite the counter with N",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid count %q: %w", args[0], err)
				}
				return withDeps(cmd.Context(), o, func(d *deps) error {
					store, err := d.counterStore()
					if err != nil {
						return err
					}
					snap, err := store.Set(cmd.Context(), n)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), snap)
				})
			},
		},
	)
	return cmd
}

func newReviewsCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reviews",
		Short: "Fetch and print the normalised Google reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDeps(cmd.Context(), o, func(d *deps) error {
				reviews, err := d.places().Reviews(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), reviews)
			})
		},
	}
}

var errJWTDisabled = errors.New("ADMIN_JWT_SECRET is not set")

func newTokenCommand(o *options) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for /api/test-email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			return mintToken(cmd.OutOrStdout(), cfg, ttl, cmd.Flags().Changed("ttl"))
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default ADMIN_JWT_TTL)")
	return cmd
}

func mintToken(w io.Writer, cfg config.Config, ttl time.Duration, ttlSet bool) error {
	if !cfg.JWT.Enabled() {
		return errJWTDisabled
	}
	d := &deps{cfg: cfg}
	svc, err := d.tokens()
	if err != nil {
		return err
	}
	if !ttlSet {
		ttl = cfg.JWT.TokenTTL
	}
	token, err := svc.Issue(cfg.JWT.Subject, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
