package broker

import (
	"time"

	// Packages
	dynamiq "github.com/mutablelogic/go-dynamiq"
	schema "github.com/mutablelogic/go-dynamiq/pkg/broker/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type opts struct {
	workers  int
	interval time.Duration
	batch    uint64
}

// Opt is a function which applies options to a worker pool
type Opt func(*opts) error

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultWorkers      = 4
	DefaultPollInterval = time.Second
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func applyOpts(opt []Opt) (opts, error) {
	o := opts{
		workers:  DefaultWorkers,
		interval: DefaultPollInterval,
		batch:    schema.DefaultBatchSize,
	}
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return o, err
		}
	}
	return o, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithWorkers sets the number of concurrent message handlers.
func WithWorkers(workers int) Opt {
	return func(o *opts) error {
		if workers < 1 {
			return dynamiq.ErrInvalidArgument.Withf("workers: %d", workers)
		}
		o.workers = workers
		return nil
	}
}

// WithPollInterval sets the delay between receives when a queue is empty.
func WithPollInterval(interval time.Duration) Opt {
	return func(o *opts) error {
		if interval <= 0 {
			return dynamiq.ErrInvalidArgument.Withf("interval: %v", interval)
		}
		o.interval = interval
		return nil
	}
}

// WithBatchSize sets the number of messages requested per receive.
func WithBatchSize(batch uint64) Opt {
	return func(o *opts) error {
		if batch == 0 || batch > schema.MaxBatchSize {
			return dynamiq.ErrInvalidArgument.Withf("batch: %d", batch)
		}
		o.batch = batch
		return nil
	}
}
