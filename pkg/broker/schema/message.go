package schema

import (
	"encoding/json"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is one received message. The body is the raw payload as
// published; the broker does not interpret it.
type Message struct {
	Id   string `json:"id"`
	Body string `json:"body"`
}

// PublishReceipt maps each subscribed queue to the message id assigned
// by the broker when a message is fanned out from a topic.
type PublishReceipt map[string]string

// ErrorResponse is the body the broker attaches to non-success statuses.
// Older broker versions return a plain-text reason instead.
type ErrorResponse struct {
	Reason string `json:"error,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return stringify(m)
}

func (r PublishReceipt) String() string {
	return stringify(r)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Reason extracts the server-supplied message from a response body,
// tolerating both the JSON and plain-text forms.
func Reason(body []byte) string {
	var response ErrorResponse
	if err := json.Unmarshal(body, &response); err == nil && response.Reason != "" {
		return response.Reason
	}
	return strings.TrimSpace(string(body))
}
