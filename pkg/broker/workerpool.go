package broker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	// Packages
	dynamiq "github.com/mutablelogic/go-dynamiq"
	httpclient "github.com/mutablelogic/go-dynamiq/pkg/broker/httpclient"
	schema "github.com/mutablelogic/go-dynamiq/pkg/broker/schema"
	server "github.com/mutablelogic/go-server"
	ref "github.com/mutablelogic/go-server/pkg/ref"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// MessageHandler processes one received message. Return nil to acknowledge
// the message, or an error to leave it unacknowledged for redelivery.
type MessageHandler func(context.Context, string, schema.Message) error

// WorkerPool polls queues for messages and fans them out to a bounded set
// of workers. Messages are acknowledged only after their handler returns
// without error.
type WorkerPool struct {
	client *httpclient.Client
	opts   opts

	mu       sync.RWMutex
	handlers map[string]MessageHandler
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewWorkerPool creates a worker pool using the given client.
func NewWorkerPool(client *httpclient.Client, opt ...Opt) (*WorkerPool, error) {
	if client == nil {
		return nil, dynamiq.ErrInvalidArgument.With("missing client")
	}
	o, err := applyOpts(opt)
	if err != nil {
		return nil, err
	}

	return &WorkerPool{
		client:   client,
		opts:     o,
		handlers: make(map[string]MessageHandler),
	}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterQueue registers a handler for a queue, creating the queue on the
// broker when it does not yet exist and applying the configuration when
// one is given.
func (wp *WorkerPool) RegisterQueue(ctx context.Context, name string, meta *schema.QueueMeta, handler MessageHandler) error {
	if handler == nil {
		return dynamiq.ErrInvalidArgument.With("missing handler")
	}

	// Create the queue, tolerating one which already exists
	if err := wp.client.CreateQueue(ctx, name); err != nil && !errors.Is(err, dynamiq.ErrAlreadyExists) {
		return err
	}
	if meta != nil {
		if err := wp.client.ConfigureQueue(ctx, name, *meta); err != nil {
			return err
		}
	}

	wp.mu.Lock()
	wp.handlers[name] = handler
	wp.mu.Unlock()
	return nil
}

// Run starts the workers and one poll loop per registered queue, blocking
// until the context is cancelled or a queue becomes unavailable.
func (wp *WorkerPool) Run(ctx context.Context) error {
	var loopWg, workerWg sync.WaitGroup
	var result error
	var mu sync.Mutex

	// Get the logger from the context (may be nil in tests)
	var log server.Logger
	func() {
		defer func() { recover() }()
		log = ref.Log(ctx)
	}()

	// Create work channel and spawn workers
	workCh := make(chan func(), wp.opts.workers)
	for i := 0; i < wp.opts.workers; i++ {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for fn := range workCh {
				fn()
			}
		}()
	}

	// Collect registered queue names
	wp.mu.RLock()
	queues := make([]string, 0, len(wp.handlers))
	for q := range wp.handlers {
		queues = append(queues, q)
	}
	wp.mu.RUnlock()

	// Start one poll loop per queue
	for _, queue := range queues {
		loopWg.Add(1)
		go func(queue string) {
			defer loopWg.Done()
			if err := wp.runQueueLoop(ctx, workCh, queue, log); err != nil {
				if !errors.Is(err, context.Canceled) {
					mu.Lock()
					result = errors.Join(result, fmt.Errorf("queue %q: %w", queue, err))
					mu.Unlock()
				}
			}
		}(queue)
	}

	// Wait for loops to finish, then drain the workers. A plain context
	// cancellation is a clean stop, not an error.
	loopWg.Wait()
	close(workCh)
	workerWg.Wait()

	return result
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// runQueueLoop receives batches for one queue and dispatches them until
// the context is cancelled. Transient transport failures are logged and
// retried after the poll interval; a missing queue ends the loop.
func (wp *WorkerPool) runQueueLoop(ctx context.Context, workCh chan<- func(), queue string, log server.Logger) error {
	wp.mu.RLock()
	handler := wp.handlers[queue]
	wp.mu.RUnlock()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		messages, err := wp.client.Receive(ctx, queue, wp.opts.batch)
		switch {
		case errors.Is(err, dynamiq.ErrNotFound), errors.Is(err, dynamiq.ErrInvalidArgument):
			return err
		case err != nil:
			if log != nil {
				log.With("queue", queue).Print(ctx, "receive error ", err)
			}
			timer.Reset(wp.opts.interval)
			continue
		}

		// An empty batch means the queue is idle
		if len(messages) == 0 {
			timer.Reset(wp.opts.interval)
			continue
		}

		// Dispatch each message; acknowledgement happens on the worker
		var batchWg sync.WaitGroup
		for _, message := range messages {
			batchWg.Add(1)
			message := message
			select {
			case <-ctx.Done():
				batchWg.Done()
				return ctx.Err()
			case workCh <- func() {
				defer batchWg.Done()
				wp.process(ctx, queue, message, handler, log)
			}:
			}
		}
		batchWg.Wait()
		timer.Reset(0)
	}
}

// process runs the handler for one message and acknowledges it on success.
func (wp *WorkerPool) process(ctx context.Context, queue string, message schema.Message, handler MessageHandler, log server.Logger) {
	if err := handler(ctx, queue, message); err != nil {
		if log != nil {
			log.With("queue", queue).With("id", message.Id).Print(ctx, "handler error ", err)
		}
		return
	}
	if err := wp.client.Acknowledge(ctx, queue, message.Id); err != nil {
		if log != nil {
			log.With("queue", queue).With("id", message.Id).Print(ctx, "acknowledge error ", err)
		}
	}
}
