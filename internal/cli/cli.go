// Package cli is the clinic command line: the HTTP server plus a few
// maintenance commands that reuse the server's configuration.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ksmdental/clinic/internal/config"
)

// options are the flags shared by every command.
type options struct {
	envFile string
	logOut  io.Writer
}

func (o *options) load() (config.Config, error) {
	return config.Load(o.envFile)
}

// NewRootCommand returns the clinic command tree. Without a subcommand it
// serves HTTP.
func NewRootCommand() *cobra.Command {
	o := &options{logOut: os.Stderr}

	root := &cobra.Command{
		Use:           "clinic",
		Short:         "KSM Dental Care website backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), o)
		},
	}
	root.PersistentFlags().StringVar(&o.envFile, "env-file", ".env", "dotenv file loaded before the environment (missing file is ignored)")

	root.AddCommand(
		newServeCommand(o),
		newMailCommand(o),
		newCounterCommand(o),
		newReviewsCommand(o),
		newTokenCommand(o),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}
