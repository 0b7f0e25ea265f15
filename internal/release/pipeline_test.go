package release_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sockboterrors "sockbot.dev/sockbot/internal/errors"
	"sockbot.dev/sockbot/internal/manifest"
	"sockbot.dev/sockbot/internal/release"
	"sockbot.dev/sockbot/testhelpers"
)

// newReleaseScene builds a repository with one commit, an origin remote and a
// manifest declaring the given version.
func newReleaseScene(t *testing.T, version string) *testhelpers.Scene {
	t.Helper()
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("initial", "init")
	})

	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)

	require.NoError(t, scene.Repo.WriteFile("sockbot.yaml",
		"package:\n  name: sockbot\n  version: \""+version+"\"\n"))

	return scene
}

func newPipeline(scene *testhelpers.Scene, publisher release.Publisher) *release.Pipeline {
	return &release.Pipeline{
		RepoDir:      scene.Dir,
		Remote:       "origin",
		ManifestPath: filepath.Join(scene.Dir, "sockbot.yaml"),
		Publisher:    publisher,
	}
}

func TestPipelineRun(t *testing.T) {
	t.Run("releases a new version end to end", func(t *testing.T) {
		scene := newReleaseScene(t, "2.0.0")

		config := testhelpers.NewMockGitHubServerConfig()
		server := testhelpers.NewMockGitHubServer(t, config)
		publisher := release.NewGitHubPublisher(testhelpers.NewMockGitHubClient(t, server), config.Owner, config.Repo)

		result, err := newPipeline(scene, publisher).Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, "2.0.0", result.Version)
		require.Equal(t, "v2.0.0", result.TagName)
		require.NotNil(t, result.Release)

		// Exactly one release was published for the tag
		require.Len(t, config.CreatedReleases, 1)
		require.Equal(t, "v2.0.0", config.CreatedReleases[0].GetTagName())

		// The tag landed on the remote
		remoteTags, err := scene.Repo.ListRemoteTags("origin")
		require.NoError(t, err)
		require.Contains(t, remoteTags, "v2.0.0")
	})

	t.Run("fails when the version is already tagged on the remote", func(t *testing.T) {
		scene := newReleaseScene(t, "1.0.0")

		require.NoError(t, scene.Repo.CreateTag("v1.0.0"))
		require.NoError(t, scene.Repo.PushTag("origin", "v1.0.0"))
		require.NoError(t, scene.Repo.RunGitCommand("tag", "-d", "v1.0.0"))

		config := testhelpers.NewMockGitHubServerConfig()
		server := testhelpers.NewMockGitHubServer(t, config)
		publisher := release.NewGitHubPublisher(testhelpers.NewMockGitHubClient(t, server), config.Owner, config.Repo)

		_, err := newPipeline(scene, publisher).Run(context.Background())
		require.ErrorIs(t, err, sockboterrors.ErrTagExists)

		// No release was published and the tag sets are unchanged
		require.Empty(t, config.CreatedReleases)

		remoteTags, err := scene.Repo.ListRemoteTags("origin")
		require.NoError(t, err)
		require.Equal(t, []string{"v1.0.0"}, remoteTags)

		localTags, err := scene.Repo.ListLocalTags()
		require.NoError(t, err)
		require.Empty(t, localTags)
	})

	t.Run("fails when the version is already tagged locally", func(t *testing.T) {
		scene := newReleaseScene(t, "1.0.0")
		require.NoError(t, scene.Repo.CreateTag("v1.0.0"))

		config := testhelpers.NewMockGitHubServerConfig()
		server := testhelpers.NewMockGitHubServer(t, config)
		publisher := release.NewGitHubPublisher(testhelpers.NewMockGitHubClient(t, server), config.Owner, config.Repo)

		_, err := newPipeline(scene, publisher).Run(context.Background())
		require.ErrorIs(t, err, sockboterrors.ErrTagExists)
		require.Empty(t, config.CreatedReleases)
	})

	t.Run("fails before tagging when the manifest has no version", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("initial", "init")
		})
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.WriteFile("sockbot.yaml", "package:\n  name: sockbot\n"))

		config := testhelpers.NewMockGitHubServerConfig()
		server := testhelpers.NewMockGitHubServer(t, config)
		publisher := release.NewGitHubPublisher(testhelpers.NewMockGitHubClient(t, server), config.Owner, config.Repo)

		_, err = newPipeline(scene, publisher).Run(context.Background())
		require.Error(t, err)

		var extractErr *manifest.ExtractError
		require.True(t, errors.As(err, &extractErr))

		require.Empty(t, config.CreatedReleases)
		localTags, tagErr := scene.Repo.ListLocalTags()
		require.NoError(t, tagErr)
		require.Empty(t, localTags)
	})

	t.Run("aborts before tagging when the publish is rejected", func(t *testing.T) {
		scene := newReleaseScene(t, "3.1.4")

		config := testhelpers.NewMockGitHubServerConfig()
		config.FailCreate = true
		server := testhelpers.NewMockGitHubServer(t, config)
		publisher := release.NewGitHubPublisher(testhelpers.NewMockGitHubClient(t, server), config.Owner, config.Repo)

		_, err := newPipeline(scene, publisher).Run(context.Background())
		require.Error(t, err)

		localTags, tagErr := scene.Repo.ListLocalTags()
		require.NoError(t, tagErr)
		require.Empty(t, localTags)

		remoteTags, tagErr := scene.Repo.ListRemoteTags("origin")
		require.NoError(t, tagErr)
		require.Empty(t, remoteTags)
	})

	t.Run("dry run touches nothing", func(t *testing.T) {
		scene := newReleaseScene(t, "2.0.0")

		config := testhelpers.NewMockGitHubServerConfig()
		server := testhelpers.NewMockGitHubServer(t, config)
		publisher := release.NewGitHubPublisher(testhelpers.NewMockGitHubClient(t, server), config.Owner, config.Repo)

		pipeline := newPipeline(scene, publisher)
		pipeline.DryRun = true

		result, err := pipeline.Run(context.Background())
		require.NoError(t, err)
		require.True(t, result.DryRun)
		require.Equal(t, "v2.0.0", result.TagName)
		require.Nil(t, result.Release)

		require.Empty(t, config.CreatedReleases)
		localTags, tagErr := scene.Repo.ListLocalTags()
		require.NoError(t, tagErr)
		require.Empty(t, localTags)
	})

	t.Run("rejects a malformed manifest version before any side effects", func(t *testing.T) {
		scene := newReleaseScene(t, "not-a-version")

		_, err := newPipeline(scene, nil).Run(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "not a valid semantic version")

		localTags, tagErr := scene.Repo.ListLocalTags()
		require.NoError(t, tagErr)
		require.Empty(t, localTags)
	})
}
