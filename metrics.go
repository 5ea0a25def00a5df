package dynamiq

import (
	"errors"
	"strconv"
	"sync"

	// Packages
	prometheus "github.com/prometheus/client_golang/prometheus"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// requestMetrics accumulates per-client request counters.
type requestMetrics struct {
	mu       sync.Mutex
	requests map[requestKey]uint64
	failures map[string]uint64
}

type requestKey struct {
	method string
	status int
}

// metrics exposes the counters as a prometheus collector.
type metrics struct {
	client   *Client
	requests *prometheus.Desc
	failures *prometheus.Desc
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newRequestMetrics() *requestMetrics {
	return &requestMetrics{
		requests: make(map[requestKey]uint64),
		failures: make(map[string]uint64),
	}
}

// RegisterMetrics registers a collector for the client's request counters
// on the provided prometheus registry. The client must be non-nil.
func RegisterMetrics(registerer prometheus.Registerer, client *Client) error {
	if client == nil {
		return ErrInvalidArgument.With("missing client")
	}
	return registerer.Register(&metrics{
		client: client,
		requests: prometheus.NewDesc(
			"dynamiq_client_requests",
			"Number of request attempts by method and response status",
			[]string{"method", "status"}, nil,
		),
		failures: prometheus.NewDesc(
			"dynamiq_client_failures",
			"Number of transport failures by error kind",
			[]string{"kind"}, nil,
		),
	})
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - COLLECTOR

// Describe sends metric descriptors to the channel
func (m *metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.requests
	ch <- m.failures
}

// Collect reads the client counters and sends them to the channel
func (m *metrics) Collect(ch chan<- prometheus.Metric) {
	counters := m.client.metrics
	counters.mu.Lock()
	defer counters.mu.Unlock()

	for key, count := range counters.requests {
		ch <- prometheus.MustNewConstMetric(
			m.requests,
			prometheus.CounterValue,
			float64(count),
			key.method,
			strconv.Itoa(key.status),
		)
	}
	for kind, count := range counters.failures {
		ch <- prometheus.MustNewConstMetric(
			m.failures,
			prometheus.CounterValue,
			float64(count),
			kind,
		)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// count records the outcome of one request attempt.
func (r *requestMetrics) count(method string, resp *Response, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		var kind Err
		if !errors.As(err, &kind) {
			kind = ErrRequestFailed
		}
		r.failures[kind.Error()]++
		return
	}
	r.requests[requestKey{method: method, status: resp.Status}]++
}
