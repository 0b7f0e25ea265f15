// Package config provides environment-driven configuration for sockbot.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// ErrNoSlackToken is returned when no Slack app-level token is configured.
// Callers can check for this with errors.Is(err, config.ErrNoSlackToken).
var ErrNoSlackToken = errors.New("env var 'SLACK_APP_TOKEN' is not set")

// Environment variable names
const (
	EnvSlackAppToken = "SLACK_APP_TOKEN"
	EnvGitHubToken   = "GITHUB_TOKEN"
	EnvEnvFile       = "SOCKBOT_ENV_FILE"
)

// Config holds the runtime configuration resolved from the environment
type Config struct {
	SlackAppToken string
	GitHubToken   string
}

// Load resolves configuration from the environment. A .env file in the
// working directory (or the file named by SOCKBOT_ENV_FILE) is loaded first;
// values already present in the environment win.
func Load() *Config {
	if custom := os.Getenv(EnvEnvFile); custom != "" {
		_ = godotenv.Load(custom)
	} else {
		// Missing .env is fine; the environment alone may be complete
		_ = godotenv.Load()
	}

	return &Config{
		SlackAppToken: os.Getenv(EnvSlackAppToken),
		GitHubToken:   os.Getenv(EnvGitHubToken),
	}
}

// RequireSlackToken returns the Slack app token or an error if unset
func (c *Config) RequireSlackToken() (string, error) {
	if c.SlackAppToken == "" {
		return "", ErrNoSlackToken
	}
	return c.SlackAppToken, nil
}
