package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// CreatedReleases stores releases that were created (for assertions)
	CreatedReleases []*github.RepositoryRelease
	// GeneratedNotesBody is returned by the generate-notes endpoint
	GeneratedNotesBody string
	// FailCreate makes release creation fail with 422 (e.g. auth/validation failure)
	FailCreate bool
	// Owner and Repo for the mock server
	Owner string
	Repo  string
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		CreatedReleases:    make([]*github.RepositoryRelease, 0),
		GeneratedNotesBody: "## What's Changed",
		Owner:              "owner",
		Repo:               "repo",
	}
}

// NewMockGitHubServer creates an httptest server that mocks the GitHub
// releases endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()
	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/releases"

	mux.HandleFunc(basePath+"/generate-notes", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req github.GenerateNotesOptions
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&github.RepositoryReleaseNotes{
			Name: req.TagName,
			Body: config.GeneratedNotesBody,
		})
	})

	mux.HandleFunc(basePath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if config.FailCreate {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"message": "Validation Failed"})
			return
		}

		var release github.RepositoryRelease
		if err := json.NewDecoder(r.Body).Decode(&release); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		id := int64(len(config.CreatedReleases) + 1)
		release.ID = &id
		htmlURL := fmt.Sprintf("https://github.com/%s/%s/releases/tag/%s", config.Owner, config.Repo, release.GetTagName())
		release.HTMLURL = &htmlURL
		config.CreatedReleases = append(config.CreatedReleases, &release)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&release)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// NewMockGitHubClient creates a go-github client pointed at a mock server
func NewMockGitHubClient(t *testing.T, server *httptest.Server) *github.Client {
	t.Helper()

	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	if err != nil {
		t.Fatalf("Failed to parse mock server URL: %v", err)
	}
	client.BaseURL = baseURL
	client.UploadURL = baseURL
	return client
}
