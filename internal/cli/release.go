package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"sockbot.dev/sockbot/internal/git"
	"sockbot.dev/sockbot/internal/manifest"
	"sockbot.dev/sockbot/internal/release"
	"sockbot.dev/sockbot/internal/tui"
)

// newReleaseCmd creates the release command
func newReleaseCmd() *cobra.Command {
	var (
		manifestPath string
		field        string
		remote       string
		notes        string
		draft        bool
		dryRun       bool
		yes          bool
	)

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Publish a release and push the matching version tag",
		Long: `Publish a release and push the matching version tag.

The version is read from the project manifest. The release is published first,
then an annotated tag v<version> is created at HEAD and pushed to the remote.
The run fails without side effects if the tag already exists locally or on the
remote, or if the manifest version cannot be determined.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog, err := tui.NewSplogWithConfig(tui.GetLogFilePath())
			if err != nil {
				splog = tui.NewSplog()
			}
			defer func() { _ = splog.Close() }()

			ctx := cmd.Context()

			repoRoot, err := git.GetRepoRoot()
			if err != nil {
				return err
			}
			if remote == "" {
				remote = git.GetRemote(repoRoot)
			}

			// Resolve the version up front so the confirmation can name the tag
			version, err := manifest.ExtractVersion(manifestPath, field)
			if err != nil {
				return err
			}
			tagName := git.TagName(version)

			if !yes && !dryRun && tui.IsInteractive() {
				confirmed := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Release %s to %s?", tagName, remote),
					Default: true,
				}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return fmt.Errorf("canceled")
				}
				if !confirmed {
					splog.Info("release aborted")
					return nil
				}
			}

			var publisher release.Publisher
			if !dryRun {
				repoInfo, err := git.GetRepoInfo(repoRoot, remote)
				if err != nil {
					return err
				}
				publisher, err = release.NewDefaultGitHubPublisher(ctx, repoInfo)
				if err != nil {
					return err
				}
			}

			pipeline := &release.Pipeline{
				RepoDir:      repoRoot,
				Remote:       remote,
				ManifestPath: manifestPath,
				VersionField: field,
				Publisher:    publisher,
				Notes:        notes,
				Draft:        draft,
				DryRun:       dryRun,
				Log:          splog,
			}

			result, err := pipeline.Run(ctx)
			if err != nil {
				splog.Info("%s", tui.RenderFailure(fmt.Sprintf("release %s failed", tagName)))
				return err
			}

			if result.DryRun {
				splog.Info("%s", tui.RenderDim(fmt.Sprintf("dry run complete, %s is ready to release", result.TagName)))
				return nil
			}

			splog.Info("%s", tui.RenderSuccess(fmt.Sprintf("released %s", tui.RenderTag(result.TagName))))
			if result.Release != nil && result.Release.URL != "" {
				splog.Info("%s", tui.RenderURL(result.Release.URL))
			}
			return nil
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", manifest.DefaultPath, "Path to the project manifest file")
	cmd.Flags().StringVarP(&field, "field", "f", manifest.DefaultVersionField, "Dotted field path of the version in the manifest")
	cmd.Flags().StringVarP(&remote, "remote", "r", "", "Remote to push the tag to (defaults to the current branch's remote)")
	cmd.Flags().StringVar(&notes, "notes", "", "Release notes body (defaults to generated notes)")
	cmd.Flags().BoolVar(&draft, "draft", false, "Create the release as a draft")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Validate the version and tag without publishing anything")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
