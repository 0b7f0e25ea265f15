package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sockbot.dev/sockbot/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("reads tokens from the environment", func(t *testing.T) {
		t.Setenv(config.EnvSlackAppToken, "xapp-env")
		t.Setenv(config.EnvGitHubToken, "ghp-env")

		cfg := config.Load()
		require.Equal(t, "xapp-env", cfg.SlackAppToken)
		require.Equal(t, "ghp-env", cfg.GitHubToken)
	})

	t.Run("loads a .env file named by SOCKBOT_ENV_FILE", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), "sockbot.env")
		require.NoError(t, os.WriteFile(envFile, []byte("SLACK_APP_TOKEN=xapp-file\n"), 0600))

		t.Setenv(config.EnvSlackAppToken, "")
		os.Unsetenv(config.EnvSlackAppToken)
		t.Setenv(config.EnvEnvFile, envFile)

		cfg := config.Load()
		require.Equal(t, "xapp-file", cfg.SlackAppToken)
	})

	t.Run("environment wins over the .env file", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), "sockbot.env")
		require.NoError(t, os.WriteFile(envFile, []byte("SLACK_APP_TOKEN=xapp-file\n"), 0600))

		t.Setenv(config.EnvEnvFile, envFile)
		t.Setenv(config.EnvSlackAppToken, "xapp-env")

		cfg := config.Load()
		require.Equal(t, "xapp-env", cfg.SlackAppToken)
	})
}

func TestRequireSlackToken(t *testing.T) {
	t.Run("returns the token when present", func(t *testing.T) {
		cfg := &config.Config{SlackAppToken: "xapp-1"}
		token, err := cfg.RequireSlackToken()
		require.NoError(t, err)
		require.Equal(t, "xapp-1", token)
	})

	t.Run("fails when unset", func(t *testing.T) {
		cfg := &config.Config{}
		_, err := cfg.RequireSlackToken()
		require.ErrorIs(t, err, config.ErrNoSlackToken)
	})
}
