package release

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	sockboterrors "sockbot.dev/sockbot/internal/errors"
	"sockbot.dev/sockbot/internal/git"
)

// GitHubPublisher implements Publisher using the GitHub API
type GitHubPublisher struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGitHubPublisher creates a GitHubPublisher with an existing API client.
// Used by tests to point the publisher at a mock server.
func NewGitHubPublisher(client *github.Client, owner, repo string) *GitHubPublisher {
	return &GitHubPublisher{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// NewDefaultGitHubPublisher creates a GitHubPublisher for the given repository,
// resolving the auth token from the environment
func NewDefaultGitHubPublisher(ctx context.Context, repoInfo *git.RepoInfo) (*GitHubPublisher, error) {
	token, err := getGitHubToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get GitHub token: %w", err)
	}

	client, err := createGitHubClient(ctx, repoInfo.Hostname, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return NewGitHubPublisher(client, repoInfo.Owner, repoInfo.Repo), nil
}

// Publish creates the release. When no notes are supplied, the body is
// generated from commit history by the GitHub release-notes endpoint.
func (p *GitHubPublisher) Publish(ctx context.Context, opts Options) (*Info, error) {
	body := opts.Notes
	if body == "" {
		notes, _, err := p.client.Repositories.GenerateReleaseNotes(ctx, p.owner, p.repo, &github.GenerateNotesOptions{
			TagName: opts.TagName,
		})
		// Notes generation is best effort; the release itself is the contract
		if err == nil && notes != nil {
			body = notes.Body
		}
	}

	release := &github.RepositoryRelease{
		TagName: github.String(opts.TagName),
		Name:    github.String(opts.TagName),
		Draft:   github.Bool(opts.Draft),
	}
	if body != "" {
		release.Body = github.String(body)
	}

	created, _, err := p.client.Repositories.CreateRelease(ctx, p.owner, p.repo, release)
	if err != nil {
		return nil, fmt.Errorf("failed to create release %s: %w", opts.TagName, err)
	}

	info := &Info{
		Owner:   p.owner,
		Repo:    p.repo,
		TagName: created.GetTagName(),
		Name:    created.GetName(),
		URL:     created.GetHTMLURL(),
		Draft:   created.GetDraft(),
	}
	return info, nil
}

// getGitHubToken gets GitHub token from environment or gh CLI
func getGitHubToken(ctx context.Context) (string, error) {
	// Try environment variable first
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	// Try gh CLI
	output, err := exec.CommandContext(ctx, "gh", "auth", "token").Output()
	if err != nil {
		return "", fmt.Errorf("%w: set GITHUB_TOKEN or authenticate with 'gh auth login'", sockboterrors.ErrNoToken)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", sockboterrors.ErrNoToken
	}

	return token, nil
}

// createGitHubClient creates a GitHub API client for the given hostname
func createGitHubClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	// GitHub Enterprise uses per-host API endpoints
	if hostname != "" && hostname != "github.com" {
		baseURL := fmt.Sprintf("https://%s/api/v3/", hostname)
		uploadURL := fmt.Sprintf("https://%s/api/uploads/", hostname)
		enterprise, err := client.WithEnterpriseURLs(baseURL, uploadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise URLs for %s: %w", hostname, err)
		}
		return enterprise, nil
	}

	return client, nil
}
