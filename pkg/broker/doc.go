// Package broker provides client-side orchestration on top of the
// httpclient package: a worker pool which polls queues, dispatches
// received messages to handlers, and acknowledges them on success.
package broker
