package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	sockboterrors "sockbot.dev/sockbot/internal/errors"
)

func TestTagExistsError(t *testing.T) {
	err := sockboterrors.NewTagExistsError("v1.0.0", "origin")

	require.Contains(t, err.Error(), "v1.0.0")
	require.Contains(t, err.Error(), "origin")
	require.ErrorIs(t, err, sockboterrors.ErrTagExists)

	var tagErr *sockboterrors.TagExistsError
	require.True(t, stderrors.As(err, &tagErr))
	require.Equal(t, "v1.0.0", tagErr.TagName)
}

func TestGitCommandError(t *testing.T) {
	underlying := stderrors.New("exit status 128")
	err := sockboterrors.NewGitCommandError("git", []string{"push", "origin", "refs/tags/v1.0.0"}, "", "fatal: tag already exists", underlying)

	require.Contains(t, err.Error(), "git command failed")
	require.Contains(t, err.Error(), "tag already exists")
	require.ErrorIs(t, err, underlying)
}
