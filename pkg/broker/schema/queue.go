package schema

import (
	"strings"
	"time"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type QueueName string

// QueueMeta is the configuration payload for a queue. All fields are
// optional; only set fields are applied by the broker.
type QueueMeta struct {
	TTL        *time.Duration `json:"ttl,omitempty" help:"Time-to-live for queue messages"`
	Retries    *uint64        `json:"retries,omitempty" help:"Number of delivery retries before failing"`
	RetryDelay *time.Duration `json:"retry_delay,omitempty" help:"Backoff delay between deliveries"`
}

// Queue is the detail object returned for a single queue.
type Queue struct {
	Queue string `json:"queue"`
	QueueMeta
	Topics   []string `json:"topics,omitempty"`   // topics this queue is subscribed to
	Messages uint64   `json:"messages,omitempty"` // messages currently waiting
}

// QueueList is the response to a queue listing.
type QueueList struct {
	Queues []string `json:"queues"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (q Queue) String() string {
	return stringify(q)
}

func (q QueueMeta) String() string {
	return stringify(q)
}

func (q QueueList) String() string {
	return stringify(q)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name normalizes and validates the queue name.
func (q QueueName) Name() (string, error) {
	if queue := strings.ToLower(strings.TrimSpace(string(q))); queue == "" {
		return "", httpresponse.ErrBadRequest.With("Missing queue name")
	} else if !types.IsIdentifier(queue) {
		return "", httpresponse.ErrBadRequest.Withf("Invalid queue name: %q", queue)
	} else {
		return queue, nil
	}
}
