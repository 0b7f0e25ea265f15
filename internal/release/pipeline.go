package release

import (
	"context"
	"fmt"

	sockboterrors "sockbot.dev/sockbot/internal/errors"
	"sockbot.dev/sockbot/internal/git"
	"sockbot.dev/sockbot/internal/manifest"
)

// Logger is the subset of the splog interface the pipeline reports through
type Logger interface {
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Pipeline runs the release steps in order: extract the version from the
// manifest, check that the tag is new, publish the release, then create and
// push the tag. Every step is single-shot; any failure is terminal for the
// run with no retries.
type Pipeline struct {
	RepoDir      string
	Remote       string
	ManifestPath string
	VersionField string
	Publisher    Publisher
	Notes        string
	Draft        bool
	DryRun       bool
	Log          Logger
}

// Result describes a completed (or dry) pipeline run
type Result struct {
	Version string
	TagName string
	Release *Info
	DryRun  bool
}

// Run executes the pipeline
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	manifestPath := p.ManifestPath
	if manifestPath == "" {
		manifestPath = manifest.DefaultPath
	}
	field := p.VersionField
	if field == "" {
		field = manifest.DefaultVersionField
	}
	remote := p.Remote
	if remote == "" {
		remote = git.GetRemote(p.RepoDir)
	}

	// Extract and validate the version before touching anything
	version, err := manifest.ExtractVersion(manifestPath, field)
	if err != nil {
		return nil, err
	}
	tagName := git.TagName(version)
	p.logDebug("extracted version %s from %s", version, manifestPath)

	// Preflight: the tag must not exist locally or on the remote
	exists, err := git.LocalTagExists(p.RepoDir, tagName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("cannot release %s: %w", version, sockboterrors.NewTagExistsError(tagName, "local"))
	}

	exists, err = git.RemoteTagExists(ctx, p.RepoDir, remote, tagName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("cannot release %s: %w", version, sockboterrors.NewTagExistsError(tagName, remote))
	}

	result := &Result{
		Version: version,
		TagName: tagName,
		DryRun:  p.DryRun,
	}

	if p.DryRun {
		p.logInfo("dry run: would release %s", tagName)
		return result, nil
	}

	// Publish before tagging so a rejected publish leaves the tag set unchanged
	if p.Publisher != nil {
		info, err := p.Publisher.Publish(ctx, Options{
			TagName: tagName,
			Notes:   p.Notes,
			Draft:   p.Draft,
		})
		if err != nil {
			return nil, err
		}
		result.Release = info
		p.logInfo("published release %s", tagName)
	}

	if err := git.CreateTag(p.RepoDir, tagName, fmt.Sprintf("Release %s", version)); err != nil {
		return nil, err
	}

	if err := git.PushTag(ctx, p.RepoDir, remote, tagName); err != nil {
		// The local tag was created this run; remove it so the repository is
		// left in its prior state
		_ = git.DeleteLocalTag(p.RepoDir, tagName)
		return nil, err
	}
	p.logInfo("pushed tag %s to %s", tagName, remote)

	return result, nil
}

func (p *Pipeline) logInfo(format string, args ...interface{}) {
	if p.Log != nil {
		p.Log.Info(format, args...)
	}
}

func (p *Pipeline) logDebug(format string, args ...interface{}) {
	if p.Log != nil {
		p.Log.Debug(format, args...)
	}
}
