package schema

import (
	"strings"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type TopicName string

// TopicList is the response to a topic listing.
type TopicList struct {
	Topics []string `json:"topics"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t TopicList) String() string {
	return stringify(t)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name normalizes and validates the topic name.
func (t TopicName) Name() (string, error) {
	if topic := strings.ToLower(strings.TrimSpace(string(t))); topic == "" {
		return "", httpresponse.ErrBadRequest.With("Missing topic name")
	} else if !types.IsIdentifier(topic) {
		return "", httpresponse.ErrBadRequest.Withf("Invalid topic name: %q", topic)
	} else {
		return topic, nil
	}
}
