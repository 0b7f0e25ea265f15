package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultConnectionsOpenURL is the Slack endpoint that hands out socket mode
// websocket URLs.
const DefaultConnectionsOpenURL = "https://slack.com/api/apps.connections.open"

// OpenConnection requests a socket mode websocket URL from Slack.
// The app-level token authorizes the request; a non-ok API response is an
// error carrying Slack's error code.
func OpenConnection(ctx context.Context, httpClient *http.Client, apiURL, token string) (string, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if apiURL == "" {
		apiURL = DefaultConnectionsOpenURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build apps.connections.open request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("apps.connections.open request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed connectionsOpenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode apps.connections.open response: %w", err)
	}

	if !parsed.OK {
		reason := parsed.Error
		if reason == "" {
			reason = "unknown error"
		}
		return "", fmt.Errorf("apps.connections.open failed: %s", reason)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("apps.connections.open returned no websocket URL")
	}

	return parsed.URL, nil
}
