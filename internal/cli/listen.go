package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sockbot.dev/sockbot/internal/config"
	"sockbot.dev/sockbot/internal/retry"
	"sockbot.dev/sockbot/internal/slack"
	"sockbot.dev/sockbot/internal/tui"
)

// newListenCmd creates the listen command
func newListenCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Connect to Slack over socket mode and process events",
		Long: `Connect to Slack over socket mode and process events.

Requires the SLACK_APP_TOKEN environment variable (an app-level token with
connections:write scope). The connection is re-established automatically when
Slack asks the client to disconnect, backing off exponentially on failures.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog, err := tui.NewSplogWithConfig(tui.GetLogFilePath())
			if err != nil {
				splog = tui.NewSplog()
			}
			defer func() { _ = splog.Close() }()

			cfg := config.Load()
			token, err := cfg.RequireSlackToken()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := &slack.Client{
				Token: token,
				Once:  once,
				Log:   splog,
				Backoff: retry.NewExponentialBackoff(
					retry.WithInitialDelay(time.Second),
					retry.WithMaxDelay(time.Minute),
				),
			}

			if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			splog.Info("shutting down")
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run a single socket mode session without reconnecting")

	return cmd
}
