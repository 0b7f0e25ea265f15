package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	sockboterrors "sockbot.dev/sockbot/internal/errors"
)

// TagName constructs the release tag name for a version string
func TagName(version string) string {
	return "v" + version
}

// LocalTagExists reports whether a tag with the given name exists in the
// repository at dir
func LocalTagExists(dir, tagName string) (bool, error) {
	repo, err := OpenRepo(dir)
	if err != nil {
		return false, err
	}

	_, err = repo.Tag(tagName)
	if err != nil {
		if errors.Is(err, gogit.ErrTagNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up tag %s: %w", tagName, err)
	}
	return true, nil
}

// RemoteTagExists reports whether a tag with the given name exists on the remote.
// It queries the remote directly, so it requires network access.
func RemoteTagExists(ctx context.Context, dir, remote, tagName string) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "-C", dir, "ls-remote", "--tags", remote, "refs/tags/"+tagName)
	if err != nil {
		return false, fmt.Errorf("failed to list tags on remote %s: %w", remote, err)
	}
	return strings.TrimSpace(output) != "", nil
}

// CreateTag creates an annotated tag at HEAD of the repository at dir.
// Returns a TagExistsError if the tag already exists locally.
func CreateTag(dir, tagName, message string) error {
	repo, err := OpenRepo(dir)
	if err != nil {
		return err
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	tagger := &object.Signature{
		Name:  "sockbot",
		Email: "release@sockbot.dev",
		When:  time.Now(),
	}
	// Prefer the committer identity from the repository config when present
	if cfg, err := repo.ConfigScoped(gitconfig.SystemScope); err == nil && cfg.User.Name != "" {
		tagger.Name = cfg.User.Name
		tagger.Email = cfg.User.Email
	}

	_, err = repo.CreateTag(tagName, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  tagger,
		Message: message,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrTagExists) {
			return sockboterrors.NewTagExistsError(tagName, "local")
		}
		return fmt.Errorf("failed to create tag %s: %w", tagName, err)
	}

	return nil
}

// PushTag pushes a tag to the remote. Returns a TagExistsError if the remote
// rejects the push because the tag already exists there.
func PushTag(ctx context.Context, dir, remote, tagName string) error {
	_, err := RunGitCommandWithContext(ctx, "-C", dir, "push", remote, "refs/tags/"+tagName)
	if err != nil {
		var cmdErr *sockboterrors.GitCommandError
		if errors.As(err, &cmdErr) && strings.Contains(cmdErr.Stderr, "already exists") {
			return sockboterrors.NewTagExistsError(tagName, remote)
		}
		return fmt.Errorf("failed to push tag %s to %s: %w", tagName, remote, err)
	}
	return nil
}

// DeleteLocalTag removes a local tag. Used to clean up when a push is rejected
// so that re-running after fixing the remote does not trip over local state.
func DeleteLocalTag(dir, tagName string) error {
	_, err := RunGitCommandInDir(dir, "tag", "-d", tagName)
	if err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", tagName, err)
	}
	return nil
}
