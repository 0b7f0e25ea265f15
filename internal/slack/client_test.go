package slack_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"sockbot.dev/sockbot/internal/slack"
)

// socketScript runs a websocket server that sends the given frames and
// collects everything the client writes back.
type socketScript struct {
	frames   []string
	received chan string
}

func newSocketServer(t *testing.T, script *socketScript) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Drain client writes so acks are captured
		go func() {
			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					return
				}
				script.received <- string(msg)
			}
		}()

		for _, frame := range script.frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}

		// Give the client time to process before the connection drops
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)
	return server
}

// newConnectionsOpenServer returns an apps.connections.open stub pointing at wsURL
func newConnectionsOpenServer(t *testing.T, wsURL string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"ok": true, "url": %q}`, wsURL)
	}))
	t.Cleanup(server.Close)
	return server
}

func wsURLOf(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestClientRun(t *testing.T) {
	t.Run("acknowledges events and honors disconnect", func(t *testing.T) {
		script := &socketScript{
			frames: []string{
				`{"type":"hello"}`,
				`{"type":"events_api","envelope_id":"env-1","payload":{"event":{"type":"message"}}}`,
				`{"type":"disconnect","reason":"refresh_requested"}`,
			},
			received: make(chan string, 10),
		}
		wsServer := newSocketServer(t, script)
		apiServer := newConnectionsOpenServer(t, wsURLOf(wsServer))

		var handled []slack.Envelope
		client := &slack.Client{
			Token:  "xapp-test",
			APIURL: apiServer.URL,
			Once:   true,
			Handler: func(_ context.Context, envelope slack.Envelope) error {
				handled = append(handled, envelope)
				return nil
			},
		}

		err := client.Run(context.Background())
		require.NoError(t, err)

		// The handler saw the event
		require.Len(t, handled, 1)
		require.Equal(t, "env-1", handled[0].EnvelopeID)

		// The event was acknowledged with its envelope ID
		select {
		case ack := <-script.received:
			var parsed map[string]any
			require.NoError(t, json.Unmarshal([]byte(ack), &parsed))
			require.Equal(t, "env-1", parsed["envelope_id"])
		case <-time.After(2 * time.Second):
			t.Fatal("no acknowledgement received")
		}
	})

	t.Run("ignores unknown frames and keeps the session alive", func(t *testing.T) {
		script := &socketScript{
			frames: []string{
				`{"type":"hello"}`,
				`not json at all`,
				`{"type":"something_new"}`,
				`{"type":"disconnect","reason":"going away"}`,
			},
			received: make(chan string, 10),
		}
		wsServer := newSocketServer(t, script)
		apiServer := newConnectionsOpenServer(t, wsURLOf(wsServer))

		client := &slack.Client{
			Token:  "xapp-test",
			APIURL: apiServer.URL,
			Once:   true,
		}

		require.NoError(t, client.Run(context.Background()))
	})

	t.Run("handler errors do not end the session", func(t *testing.T) {
		script := &socketScript{
			frames: []string{
				`{"type":"events_api","envelope_id":"env-1"}`,
				`{"type":"events_api","envelope_id":"env-2"}`,
				`{"type":"disconnect","reason":"done"}`,
			},
			received: make(chan string, 10),
		}
		wsServer := newSocketServer(t, script)
		apiServer := newConnectionsOpenServer(t, wsURLOf(wsServer))

		var handled int
		client := &slack.Client{
			Token:  "xapp-test",
			APIURL: apiServer.URL,
			Once:   true,
			Handler: func(_ context.Context, _ slack.Envelope) error {
				handled++
				return fmt.Errorf("handler exploded")
			},
		}

		require.NoError(t, client.Run(context.Background()))
		require.Equal(t, 2, handled)
	})

	t.Run("returns the connection error when the open fails", func(t *testing.T) {
		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok": false, "error": "invalid_auth"}`))
		}))
		t.Cleanup(apiServer.Close)

		client := &slack.Client{
			Token:  "xapp-bad",
			APIURL: apiServer.URL,
			Once:   true,
		}

		err := client.Run(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid_auth")
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		script := &socketScript{
			frames:   []string{`{"type":"hello"}`},
			received: make(chan string, 10),
		}
		wsServer := newSocketServer(t, script)
		apiServer := newConnectionsOpenServer(t, wsURLOf(wsServer))

		ctx, cancel := context.WithCancel(context.Background())
		client := &slack.Client{
			Token:  "xapp-test",
			APIURL: apiServer.URL,
		}

		done := make(chan error, 1)
		go func() { done <- client.Run(ctx) }()

		time.Sleep(100 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("client did not stop after cancellation")
		}
	})
}
