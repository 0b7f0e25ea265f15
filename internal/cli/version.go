package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sockbot.dev/sockbot/internal/manifest"
)

// newVersionCmd creates the version command
func newVersionCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Printf("sockbot %s (commit %s, built %s)\n", version, commit, date)

			// When run inside a project, also report the manifest version
			if projectVersion, err := manifest.ExtractVersion(manifest.DefaultPath, manifest.DefaultVersionField); err == nil {
				fmt.Printf("project version: %s\n", projectVersion)
			}
			return nil
		},
	}

	return cmd
}
