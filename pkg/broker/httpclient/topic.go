package httpclient

import (
	"context"
	"net/http"

	// Packages
	dynamiq "github.com/mutablelogic/go-dynamiq"
	schema "github.com/mutablelogic/go-dynamiq/pkg/broker/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateTopic creates a topic (PUT topics/{name}). It returns
// ErrAlreadyExists when a topic with the same name exists.
func (c *Client) CreateTopic(ctx context.Context, name string) error {
	topic, err := schema.TopicName(name).Name()
	if err != nil {
		return err
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodPut,
		Path:   []string{"topics", topic},
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

// DeleteTopic deletes a topic (DELETE topics/{name}). It returns
// ErrNotFound when no such topic exists.
func (c *Client) DeleteTopic(ctx context.Context, name string) error {
	topic, err := schema.TopicName(name).Name()
	if err != nil {
		return err
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodDelete,
		Path:   []string{"topics", topic},
	}, http.StatusOK, http.StatusNotFound)
	if err != nil {
		return err
	}

	// Classify the terminal status
	switch resp.Status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return dynamiq.ErrNotFound.Withf("topic %q", topic)
	default:
		return dynamiq.ErrRequestFailed.WithResponse(resp)
	}
}

// Subscribe attaches a queue to a topic (PUT topics/{topic}/queues/{queue})
// and returns the names of the queues now subscribed to the topic.
func (c *Client) Subscribe(ctx context.Context, topic, queue string) ([]string, error) {
	topicName, err := schema.TopicName(topic).Name()
	if err != nil {
		return nil, err
	}
	queueName, err := schema.QueueName(queue).Name()
	if err != nil {
		return nil, err
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodPut,
		Path:   []string{"topics", topicName, "queues", queueName},
	}, http.StatusOK, http.StatusUnprocessableEntity)
	if err != nil {
		return nil, err
	}

	// Classify the terminal status
	switch resp.Status {
	case http.StatusOK:
		var queues []string
		if err := decode(resp, &queues); err != nil {
			return nil, err
		}
		return queues, nil
	case http.StatusUnprocessableEntity:
		return nil, dynamiq.ErrAlreadyExists.With(schema.Reason(resp.Body))
	default:
		return nil, dynamiq.ErrRequestFailed.WithResponse(resp)
	}
}

// Publish sends a message to a topic (PUT topics/{topic}/message). The
// body is passed through to the broker unmodified. On success it returns
// the message id assigned for each subscribed queue.
func (c *Client) Publish(ctx context.Context, topic string, data []byte) (schema.PublishReceipt, error) {
	topicName, err := schema.TopicName(topic).Name()
	if err != nil {
		return nil, err
	}

	// Perform request
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodPut,
		Path:   []string{"topics", topicName, "message"},
		Body:   data,
	}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, dynamiq.ErrDeliveryFailure.WithResponse(resp)
	}

	// Return the per-queue message ids
	var receipt schema.PublishReceipt
	if err := decode(resp, &receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// ListTopics returns the names of all topics (GET topics).
func (c *Client) ListTopics(ctx context.Context) ([]string, error) {
	resp, err := c.Do(ctx, dynamiq.Request{
		Method: http.MethodGet,
		Path:   []string{"topics"},
	}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, dynamiq.ErrRequestFailed.WithResponse(resp)
	}

	// Return the topic names
	var topics schema.TopicList
	if err := decode(resp, &topics); err != nil {
		return nil, err
	}
	return topics.Topics, nil
}
