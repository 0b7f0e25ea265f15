// Package slack implements a Slack Socket Mode client: it opens a connection
// through apps.connections.open, consumes envelopes over a websocket and
// acknowledges event deliveries.
package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"sockbot.dev/sockbot/internal/retry"
)

// Logger is the subset of the splog interface the client reports through
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// EventHandler observes events_api envelopes. Acknowledgement is handled by
// the client regardless of what the handler does; a handler error is logged
// and does not end the session.
type EventHandler func(ctx context.Context, envelope Envelope) error

// Client is a Slack Socket Mode client
type Client struct {
	Token      string
	APIURL     string       // apps.connections.open endpoint; default when empty
	HTTPClient *http.Client // used for apps.connections.open; default when nil
	Dialer     *websocket.Dialer
	Handler    EventHandler
	Backoff    *retry.ExponentialBackoff
	Once       bool // Run a single session without reconnecting
	Log        Logger
}

// Run connects to Slack and processes envelopes until the context is
// canceled. Unless Once is set, it reconnects after each session ends,
// backing off exponentially on failures.
func (c *Client) Run(ctx context.Context) error {
	backoff := c.Backoff
	if backoff == nil {
		backoff = retry.NewExponentialBackoff()
	}

	attempt := 0
	for {
		err := c.runSession(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if c.Once {
			return err
		}

		if err == nil {
			// Server-requested disconnect: reconnect straight away
			attempt = 0
			continue
		}

		delay := backoff.NextDelay(attempt)
		attempt++
		c.logWarn("session failed (reconnecting in %s): %v", delay.Round(time.Millisecond), err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// runSession opens one socket mode connection and processes envelopes until
// the server disconnects (nil) or the connection fails (error).
func (c *Client) runSession(ctx context.Context) error {
	wssURL, err := OpenConnection(ctx, c.HTTPClient, c.APIURL, c.Token)
	if err != nil {
		return err
	}

	dialer := c.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, _, err := dialer.DialContext(ctx, wssURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect websocket: %w", err)
	}
	defer conn.Close()

	// Unblock the read loop when the context is canceled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return fmt.Errorf("websocket closed: %w", err)
			}
			return fmt.Errorf("failed to read websocket frame: %w", err)
		}

		if messageType != websocket.TextMessage {
			c.logDebug("ignoring non-text frame (type %d)", messageType)
			continue
		}

		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			c.logWarn("unknown text frame: %s: %v", string(data), err)
			continue
		}

		switch envelope.Type {
		case TypeHello:
			c.logInfo("connected to Slack")

		case TypeDisconnect:
			c.logInfo("disconnect requested: %s", envelope.Reason)
			return nil

		case TypeEventsAPI:
			c.logDebug("event received: %s", envelope.EnvelopeID)
			if c.Handler != nil {
				if err := c.Handler(ctx, envelope); err != nil {
					c.logWarn("event handler failed for %s: %v", envelope.EnvelopeID, err)
				}
			}
			ack := acknowledgeMessage{EnvelopeID: envelope.EnvelopeID}
			if err := conn.WriteJSON(ack); err != nil {
				return fmt.Errorf("failed to acknowledge %s: %w", envelope.EnvelopeID, err)
			}

		default:
			c.logDebug("ignoring envelope type %q", envelope.Type)
		}
	}
}

func (c *Client) logInfo(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Info(format, args...)
	}
}

func (c *Client) logWarn(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Warn(format, args...)
	}
}

func (c *Client) logDebug(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Debug(format, args...)
	}
}
