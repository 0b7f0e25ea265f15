// Package errors provides sentinel errors and custom error types for the sockbot application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrTagExists indicates that a release tag already exists locally or on the remote
	ErrTagExists = errors.New("tag already exists")

	// ErrNoVersion indicates that no version could be extracted from the manifest
	ErrNoVersion = errors.New("no version found")

	// ErrNotARepository indicates that the working directory is not inside a git repository
	ErrNotARepository = errors.New("not a git repository")

	// ErrNoToken indicates that no GitHub token could be resolved
	ErrNoToken = errors.New("no GitHub token")
)

// TagExistsError represents an error when the release tag already exists
type TagExistsError struct {
	TagName string
	Where   string // "local" or remote name
}

func (e *TagExistsError) Error() string {
	return fmt.Sprintf("tag %s already exists on %s", e.TagName, e.Where)
}

// Is returns true if the target error is ErrTagExists
func (e *TagExistsError) Is(target error) bool {
	return target == ErrTagExists
}

// NewTagExistsError creates a new TagExistsError
func NewTagExistsError(tagName, where string) *TagExistsError {
	return &TagExistsError{TagName: tagName, Where: where}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
