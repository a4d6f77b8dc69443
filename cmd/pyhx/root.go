package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/logging"
	"github.com/dmitrijs2005/pyhx/internal/shell/cli"
	"github.com/dmitrijs2005/pyhx/internal/shell/config"
	"github.com/spf13/cobra"
)

// restartFn relaunches the process after a restart request. Tests replace it.
var restartFn = restart

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pyhx",
		Short: "PyHx OS interactive shell",
		Long: `PyHx is a small interactive shell with user accounts, file tools
and a zip-based package mechanism (convert, install, run).

Settings come from PYHX_* environment variables and an optional
config/pyhx.yaml under the shell home.`,
		Version:       fmt.Sprintf("%s '%s'", cli.Version, cli.Codename),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := runShell(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			switch {
			case errors.Is(err, cli.ErrRestart):
				stop()
				return restartFn()
			case errors.Is(err, common.ErrAuthFailure):
				// the failure was already shown at the prompt
				return nil
			}
			return err
		},
	}
}

func runShell(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logging.NewCharmLogger(stderr, cfg.LogLevel)

	app, err := cli.NewApp(cfg, log, stdin, stdout, stderr)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
