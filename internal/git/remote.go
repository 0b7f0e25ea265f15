package git

import (
	"fmt"
	"strings"
)

// RepoInfo identifies a repository on a git hosting service
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// GetRemote returns the default remote name (usually "origin")
func GetRemote(dir string) string {
	// Try the remote of the current branch first
	branch, err := RunGitCommandInDir(dir, "symbolic-ref", "--short", "HEAD")
	if err == nil && branch != "" {
		remote, err := RunGitCommandInDir(dir, "config", "--get", fmt.Sprintf("branch.%s.remote", branch))
		if err == nil && remote != "" {
			return remote
		}
	}

	// Fallback to origin
	return "origin"
}

// GetRepoInfo returns the hosting info for a remote of the repository at dir
func GetRepoInfo(dir, remote string) (*RepoInfo, error) {
	url, err := RunGitCommandInDir(dir, "config", "--get", fmt.Sprintf("remote.%s.url", remote))
	if err != nil {
		return nil, fmt.Errorf("failed to get URL for remote %s: %w", remote, err)
	}
	return ParseRemoteURL(url)
}

// ParseRemoteURL parses a git remote URL into its hosting components.
// Handles both https and ssh formats:
//
//	https://github.com/owner/repo.git
//	git@github.com:owner/repo.git
func ParseRemoteURL(url string) (*RepoInfo, error) {
	url = strings.TrimSpace(url)
	url = strings.TrimSuffix(url, ".git")

	if strings.Contains(url, "@") && strings.Contains(url, ":") && !strings.Contains(url, "://") {
		// SSH format: git@github.com:owner/repo
		atParts := strings.SplitN(url, "@", 2)
		colonParts := strings.SplitN(atParts[1], ":", 2)
		if len(colonParts) < 2 {
			return nil, fmt.Errorf("invalid SSH remote URL: %s", url)
		}
		pathParts := strings.Split(colonParts[1], "/")
		if len(pathParts) < 2 {
			return nil, fmt.Errorf("invalid SSH remote URL: %s", url)
		}
		return &RepoInfo{
			Hostname: colonParts[0],
			Owner:    pathParts[len(pathParts)-2],
			Repo:     pathParts[len(pathParts)-1],
		}, nil
	}

	// HTTPS format: https://github.com/owner/repo
	trimmed := url
	if idx := strings.Index(trimmed, "://"); idx != -1 {
		trimmed = trimmed[idx+len("://"):]
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid remote URL: %s", url)
	}
	return &RepoInfo{
		Hostname: parts[0],
		Owner:    parts[len(parts)-2],
		Repo:     parts[len(parts)-1],
	}, nil
}
