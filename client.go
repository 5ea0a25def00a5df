package dynamiq

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"slices"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a connection to the broker REST API. It applies the retry
// envelope to each request and classifies transport failures. The
// underlying transport pools connections and is safe for concurrent use;
// the client itself holds no other mutable state apart from metrics
// counters, so a single client can be shared between goroutines.
type Client struct {
	client     *http.Client
	endpoint   *url.URL
	retryCount uint
	tracer     *tracer
	metrics    *requestMetrics
}

// Request describes one HTTP exchange against the broker. Path segments
// are escaped and joined below the fixed version prefix.
type Request struct {
	Method      string
	Path        []string
	Query       url.Values
	Body        []byte
	ContentType string
}

// Response is the last response observed by the retry envelope, with
// the body fully read and the connection released.
type Response struct {
	Status int
	Body   []byte
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for the broker at the endpoint set by OptEndpoint.
func New(opts ...Opt) (*Client, error) {
	o, err := apply(opts...)
	if err != nil {
		return nil, err
	}

	// The transport performs no retries of its own; the envelope is the
	// single authoritative retry layer
	transport := o.transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DisableKeepAlives: !o.persistent,
		}
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   o.timeout,
		},
		endpoint:   o.endpoint,
		retryCount: o.retryCount,
		tracer:     o.tracer,
		metrics:    newRequestMetrics(),
	}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Endpoint returns the URL requests are made against, including the
// version prefix.
func (c *Client) Endpoint() string {
	return c.endpoint.JoinPath(APIVersion).String()
}

// Do performs a request, retrying until the response status is in the
// terminal set or the retry count is exhausted, and returns the last
// response observed. Exhausting retries is not itself an error; callers
// classify the returned status. A transport failure is never retried and
// is returned as ErrConnectionFailure or ErrTimeoutFailure.
func (c *Client) Do(ctx context.Context, req Request, terminal ...int) (*Response, error) {
	u := c.endpoint.JoinPath(append([]string{APIVersion}, req.Path...)...)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var last *Response
	for attempt := uint(0); attempt <= c.retryCount; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, transportErr(err)
		}

		ctx, end := c.tracer.Start(ctx, req.Method, u.String())
		resp, err := c.attempt(ctx, req.Method, u, req.Body, req.ContentType)
		end(status(resp), err)
		c.metrics.count(req.Method, resp, err)
		if err != nil {
			return nil, err
		}

		last = resp
		if slices.Contains(terminal, resp.Status) {
			break
		}
	}

	// Return the last response, terminal or not
	return last, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// attempt performs a single HTTP exchange and reads the body in full.
func (c *Client) attempt(ctx context.Context, method string, u *url.URL, body []byte, contentType string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, ErrRequestFailed.With(err.Error())
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportErr(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(err)
	}

	return &Response{
		Status: resp.StatusCode,
		Body:   data,
	}, nil
}

// transportErr classifies a transport-level failure as a timeout or a
// connection failure.
func transportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeoutFailure.With(err.Error())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeoutFailure.With(err.Error())
	}
	return ErrConnectionFailure.With(err.Error())
}

func status(resp *Response) int {
	if resp == nil {
		return 0
	}
	return resp.Status
}
