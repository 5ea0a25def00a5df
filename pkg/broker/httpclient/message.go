package httpclient

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	// Packages
	dynamiq "github.com/mutablelogic/go-dynamiq"
	schema "github.com/mutablelogic/go-dynamiq/pkg/broker/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Enqueue sends a message directly to a queue (PUT queues/{name}/message).
// The body is passed through to the broker unmodified. On success it
// returns the assigned message id, which is the raw response body.
func (c *Client) Enqueue(ctx context.Context, name string, data []byte) (string, error) {
	queue, err := schema.QueueName(name).Name()
	if err != nil {
		return "", err
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodPut,
		Path:   []string{"queues", queue, "message"},
		Body:   data,
	}, http.StatusOK)
	if err != nil {
		return "", err
	}
	if resp.Status != http.StatusOK {
		return "", dynamiq.ErrDeliveryFailure.WithResponse(resp)
	}

	// The message id is the raw body, not JSON
	return string(resp.Body), nil
}

// Receive returns up to batch messages from a queue
// (GET queues/{name}/messages/{batch}). It returns ErrNotFound when no
// such queue exists and ErrInvalidArgument when the broker rejects the
// batch size.
func (c *Client) Receive(ctx context.Context, name string, batch uint64) ([]schema.Message, error) {
	queue, err := schema.QueueName(name).Name()
	if err != nil {
		return nil, err
	}
	if batch == 0 {
		batch = schema.DefaultBatchSize
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodGet,
		Path:   []string{"queues", queue, "messages", strconv.FormatUint(batch, 10)},
	}, http.StatusOK, http.StatusNotFound, http.StatusUnprocessableEntity)
	if err != nil {
		return nil, err
	}

	// Classify the terminal status
	switch resp.Status {
	case http.StatusOK:
		var messages []schema.Message
		if err := decode(resp, &messages); err != nil {
			return nil, err
		}
		return messages, nil
	case http.StatusNotFound:
		return nil, dynamiq.ErrNotFound.Withf("queue %q", queue)
	case http.StatusUnprocessableEntity:
		return nil, dynamiq.ErrInvalidArgument.With(schema.Reason(resp.Body))
	default:
		return nil, dynamiq.ErrRequestFailed.WithResponse(resp)
	}
}

// Acknowledge deletes one received message from a queue, confirming it
// has been processed (DELETE queues/{name}/message/{id}).
func (c *Client) Acknowledge(ctx context.Context, name, id string) error {
	queue, err := schema.QueueName(name).Name()
	if err != nil {
		return err
	}
	if id == "" {
		return dynamiq.ErrInvalidArgument.With("missing message id")
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodDelete,
		Path:   []string{"queues", queue, "message", id},
	}, http.StatusOK)
	if err != nil {
		return err
	}
	if resp.Status != http.StatusOK {
		return dynamiq.ErrAcknowledgementFailure.WithResponse(resp)
	}

	// Return success
	return nil
}

// AcknowledgeMany deletes a set of received messages from a queue
// (DELETE queues/{name}/messages/{id1,id2,...}) and returns the number
// of messages the broker deleted.
func (c *Client) AcknowledgeMany(ctx context.Context, name string, ids []string) (uint64, error) {
	queue, err := schema.QueueName(name).Name()
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, dynamiq.ErrInvalidArgument.With("missing message ids")
	}
	for _, id := range ids {
		if id == "" {
			return 0, dynamiq.ErrInvalidArgument.With("missing message id")
		}
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodDelete,
		Path:   []string{"queues", queue, "messages", strings.Join(ids, ",")},
	}, http.StatusOK)
	if err != nil {
		return 0, err
	}
	if resp.Status != http.StatusOK {
		return 0, dynamiq.ErrAcknowledgementFailure.WithResponse(resp)
	}

	// The body is the deletion count
	var count uint64
	if err := decode(resp, &count); err != nil {
		return 0, err
	}
	return count, nil
}
