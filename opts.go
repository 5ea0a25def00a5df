package dynamiq

import (
	"net"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	// Packages
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type opt struct {
	*tracer
	endpoint   *url.URL
	timeout    time.Duration
	retryCount uint
	persistent bool
	transport  http.RoundTripper
}

// Opt is a function which applies options to a client
type Opt func(*opt) error

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultPort       = "8081"
	DefaultTimeout    = 2 * time.Second
	DefaultRetryCount = 2
	APIVersion        = "v1"
	defaultHost       = "localhost"
)

var (
	defaultScheme = []string{"http", "https"}
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply options to the opt struct
func apply(opts ...Opt) (*opt, error) {
	var o opt

	// Set defaults
	o.timeout = DefaultTimeout
	o.retryCount = DefaultRetryCount
	o.persistent = true

	// Apply options
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	// An endpoint is always required
	if o.endpoint == nil {
		return nil, ErrInvalidArgument.With("missing endpoint")
	}

	// Return success
	return &o, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// OptEndpoint sets the base URL for the broker. The scheme defaults to
// http and the port to the default broker port when not specified.
func OptEndpoint(value string) Opt {
	return func(o *opt) error {
		url, err := parseUrl(value)
		if err != nil {
			return err
		}
		o.endpoint = url
		return nil
	}
}

// OptPort sets the port for the broker connection, overriding any port
// set by the endpoint. It should be applied after OptEndpoint.
func OptPort(port uint16) Opt {
	return func(o *opt) error {
		if o.endpoint == nil {
			return ErrInvalidArgument.With("OptPort requires an endpoint")
		}
		o.endpoint.Host = net.JoinHostPort(o.endpoint.Hostname(), strconv.FormatUint(uint64(port), 10))
		return nil
	}
}

// OptTimeout sets the per-attempt request timeout. A zero timeout means
// no timeout is applied by the client.
func OptTimeout(timeout time.Duration) Opt {
	return func(o *opt) error {
		if timeout < 0 {
			return ErrInvalidArgument.With("negative timeout")
		}
		o.timeout = timeout
		return nil
	}
}

// OptRetryCount sets the number of additional attempts made beyond the
// first when a response status is not in the terminal set for a call.
func OptRetryCount(count uint) Opt {
	return func(o *opt) error {
		o.retryCount = count
		return nil
	}
}

// OptPersistentConnections sets whether the transport keeps connections
// alive between requests. Enabled by default.
func OptPersistentConnections(persistent bool) Opt {
	return func(o *opt) error {
		o.persistent = persistent
		return nil
	}
}

// OptTransport sets the underlying HTTP transport. When set, the
// persistent connection option is ignored.
func OptTransport(transport http.RoundTripper) Opt {
	return func(o *opt) error {
		o.transport = transport
		return nil
	}
}

// OptTrace sets the trace function called after each request attempt.
func OptTrace(fn TraceFn) Opt {
	return func(o *opt) error {
		o.tracer = NewTracer(fn)
		return nil
	}
}

// OptTracer sets the OTEL tracer for the client. Each request attempt
// will create a new client span.
func OptTracer(tracer trace.Tracer) Opt {
	return func(o *opt) error {
		o.tracer = NewOTELTracer(tracer)
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Parse the URL
func parseUrl(value string) (*url.URL, error) {
	url, err := url.Parse(value)
	if err != nil {
		return nil, err
	}

	// Check scheme
	if url.Scheme == "" {
		url.Scheme = defaultScheme[0]
	} else if !slices.Contains(defaultScheme, url.Scheme) {
		return nil, ErrInvalidArgument.With("invalid endpoint scheme")
	}

	// Normalize host:port
	host := url.Hostname()
	port := url.Port()
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = DefaultPort
	}
	url.Host = net.JoinHostPort(host, port)

	// Any path prefix is kept; the version segment is appended when
	// requests are made
	url.Path = strings.TrimSuffix(url.Path, "/")

	// Check for unsupported parts
	if url.RawQuery != "" || url.Fragment != "" {
		return nil, ErrInvalidArgument.With("invalid endpoint")
	}

	// Return success
	return url, nil
}
