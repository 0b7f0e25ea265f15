// Package cli wires up the sockbot command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sockbot",
		Short: "Sockbot is a Slack Socket Mode relay with built-in release tooling",
		Long: `Sockbot is a Slack Socket Mode relay with built-in release tooling.

Run 'sockbot listen' to connect to Slack and process events over socket mode.
Run 'sockbot release' to publish a release and push the matching version tag.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(newListenCmd())
	rootCmd.AddCommand(newReleaseCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
