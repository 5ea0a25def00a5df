package httpclient

import (
	"context"
	"encoding/json"
	"net/http"

	// Packages
	dynamiq "github.com/mutablelogic/go-dynamiq"
	schema "github.com/mutablelogic/go-dynamiq/pkg/broker/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateQueue creates a queue (PUT queues/{name}). It returns
// ErrAlreadyExists when a queue with the same name exists.
func (c *Client) CreateQueue(ctx context.Context, name string) error {
	queue, err := schema.QueueName(name).Name()
	if err != nil {
		return err
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodPut,
		Path:   []string{"queues", queue},
	}, http.StatusCreated, http.StatusUnprocessableEntity)
	if err != nil {
		return err
	}

	// Classify the terminal status
	switch resp.Status {
	case http.StatusCreated:
		return nil
	case http.StatusUnprocessableEntity:
		return dynamiq.ErrAlreadyExists.With(schema.Reason(resp.Body))
	default:
		return dynamiq.ErrRequestFailed.WithResponse(resp)
	}
}

// DeleteQueue deletes a queue (DELETE queues/{name}). It returns
// ErrNotFound when no such queue exists.
func (c *Client) DeleteQueue(ctx context.Context, name string) error {
	queue, err := schema.QueueName(name).Name()
	if err != nil {
		return err
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodDelete,
		Path:   []string{"queues", queue},
	}, http.StatusOK, http.StatusNotFound)
	if err != nil {
		return err
	}

	// Classify the terminal status
	switch resp.Status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return dynamiq.ErrNotFound.Withf("queue %q", queue)
	default:
		return dynamiq.ErrRequestFailed.WithResponse(resp)
	}
}

// ConfigureQueue applies configuration to a queue (PATCH queues/{name}).
// Only the fields set in the meta are applied.
func (c *Client) ConfigureQueue(ctx context.Context, name string, meta schema.QueueMeta) error {
	queue, err := schema.QueueName(name).Name()
	if err != nil {
		return err
	}
	body, err := json.Marshal(meta)
	if err != nil {
		return dynamiq.ErrInvalidArgument.With(err.Error())
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method:      http.MethodPatch,
		Path:        []string{"queues", queue},
		Body:        body,
		ContentType: "application/json",
	}, http.StatusOK)
	if err != nil {
		return err
	}
	if resp.Status != http.StatusOK {
		return dynamiq.ErrRequestFailed.WithResponse(resp)
	}

	// Return success
	return nil
}

// GetQueue returns the detail object for one queue (GET queues/{name}).
// It returns ErrNotFound when no such queue exists.
func (c *Client) GetQueue(ctx context.Context, name string) (*schema.Queue, error) {
	queue, err := schema.QueueName(name).Name()
	if err != nil {
		return nil, err
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodGet,
		Path:   []string{"queues", queue},
	}, http.StatusOK, http.StatusNotFound)
	if err != nil {
		return nil, err
	}

	// Classify the terminal status
	switch resp.Status {
	case http.StatusOK:
		var response schema.Queue
		if err := decode(resp, &response); err != nil {
			return nil, err
		}
		return &response, nil
	case http.StatusNotFound:
		return nil, dynamiq.ErrNotFound.Withf("queue %q", queue)
	default:
		return nil, dynamiq.ErrRequestFailed.WithResponse(resp)
	}
}

// ListQueues returns the names of all queues (GET queues).
func (c *Client) ListQueues(ctx context.Context) ([]string, error) {
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodGet,
		Path:   []string{"queues"},
	}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, dynamiq.ErrRequestFailed.WithResponse(resp)
	}

	// Return the queue names
	var queues schema.QueueList
	if err := decode(resp, &queues); err != nil {
		return nil, err
	}
	return queues.Queues, nil
}
