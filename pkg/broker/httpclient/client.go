package httpclient

import (
	"encoding/json"

	// Packages
	dynamiq "github.com/mutablelogic/go-dynamiq"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a typed client for the broker REST API.
type Client struct {
	*dynamiq.Client
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new client with the given endpoint and options.
func New(endpoint string, opts ...dynamiq.Opt) (*Client, error) {
	client, err := dynamiq.New(append([]dynamiq.Opt{dynamiq.OptEndpoint(endpoint)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Client{client}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// decode unmarshals a success body, translating a malformed body into a
// request failure.
func decode(resp *dynamiq.Response, v any) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return dynamiq.ErrRequestFailed.Withf("invalid response body: %v", err)
	}
	return nil
}
