package slack

import (
	"encoding/json"
)

// Envelope is a message received over the socket mode connection.
// The type discriminates the frames Slack sends: "hello" after connecting,
// "disconnect" when the server wants the client to go away (or reconnect),
// and "events_api" for event deliveries that must be acknowledged.
type Envelope struct {
	Type       string          `json:"type"`
	Reason     string          `json:"reason,omitempty"`
	EnvelopeID string          `json:"envelope_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Envelope types sent by Slack over socket mode
const (
	TypeHello      = "hello"
	TypeDisconnect = "disconnect"
	TypeEventsAPI  = "events_api"
)

// acknowledgeMessage is sent back for every events_api envelope
type acknowledgeMessage struct {
	EnvelopeID string          `json:"envelope_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// connectionsOpenResponse is the response of apps.connections.open
type connectionsOpenResponse struct {
	OK    bool   `json:"ok"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}
