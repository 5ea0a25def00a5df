package broker_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	// Packages
	dynamiq "github.com/mutablelogic/go-dynamiq"
	broker "github.com/mutablelogic/go-dynamiq/pkg/broker"
	httpclient "github.com/mutablelogic/go-dynamiq/pkg/broker/httpclient"
	schema "github.com/mutablelogic/go-dynamiq/pkg/broker/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_WorkerPool_New(t *testing.T) {
	assert := assert.New(t)

	t.Run("MissingClient", func(t *testing.T) {
		_, err := broker.NewWorkerPool(nil)
		assert.ErrorIs(err, dynamiq.ErrInvalidArgument)
	})

	t.Run("InvalidWorkers", func(t *testing.T) {
		client, err := httpclient.New("http://localhost:8081")
		assert.NoError(err)

		_, err = broker.NewWorkerPool(client, broker.WithWorkers(0))
		assert.ErrorIs(err, dynamiq.ErrInvalidArgument)
	})

	t.Run("InvalidBatch", func(t *testing.T) {
		client, err := httpclient.New("http://localhost:8081")
		assert.NoError(err)

		_, err = broker.NewWorkerPool(client, broker.WithBatchSize(schema.MaxBatchSize+1))
		assert.ErrorIs(err, dynamiq.ErrInvalidArgument)
	})
}

func Test_WorkerPool_Run(t *testing.T) {
	assert := assert.New(t)

	var mu sync.Mutex
	delivered := false
	acked := make(map[string]bool)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "PUT" && r.URL.Path == "/v1/queues/jobs":
			w.WriteHeader(http.StatusCreated)
		case r.Method == "GET" && strings.HasPrefix(r.URL.Path, "/v1/queues/jobs/messages/"):
			mu.Lock()
			defer mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			if delivered {
				w.Write([]byte(`[]`))
				return
			}
			delivered = true
			w.Write([]byte(`[{"id":"m1","body":"a"},{"id":"m2","body":"b"}]`))
		case r.Method == "DELETE" && strings.HasPrefix(r.URL.Path, "/v1/queues/jobs/message/"):
			mu.Lock()
			acked[strings.TrimPrefix(r.URL.Path, "/v1/queues/jobs/message/")] = true
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := httpclient.New(server.URL)
	assert.NoError(err)

	pool, err := broker.NewWorkerPool(client, broker.WithWorkers(2), broker.WithPollInterval(10*time.Millisecond))
	assert.NoError(err)

	// The handler succeeds for the first message and fails for the
	// second, which should be left unacknowledged
	ctx, cancel := context.WithCancel(context.Background())
	handled := make(chan string, 2)
	err = pool.RegisterQueue(ctx, "jobs", nil, func(_ context.Context, queue string, message schema.Message) error {
		assert.Equal("jobs", queue)
		handled <- message.Id
		if message.Id == "m2" {
			return dynamiq.ErrRequestFailed.With("handler failure")
		}
		return nil
	})
	assert.NoError(err)

	done := make(chan error, 1)
	go func() {
		done <- pool.Run(ctx)
	}()

	// Wait for both messages to be handled, then stop the pool
	ids := map[string]bool{}
	for range 2 {
		select {
		case id := <-handled:
			ids[id] = true
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for messages")
		}
	}
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(err)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for pool to stop")
	}

	assert.True(ids["m1"])
	assert.True(ids["m2"])

	mu.Lock()
	defer mu.Unlock()
	assert.True(acked["m1"])
	assert.False(acked["m2"])
}

func Test_WorkerPool_RegisterQueue(t *testing.T) {
	assert := assert.New(t)

	t.Run("ExistingQueue", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The queue already exists; registration should tolerate this
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"queue exists"}`))
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL)
		assert.NoError(err)

		pool, err := broker.NewWorkerPool(client)
		assert.NoError(err)

		err = pool.RegisterQueue(context.Background(), "jobs", nil, func(context.Context, string, schema.Message) error {
			return nil
		})
		assert.NoError(err)
	})

	t.Run("MissingHandler", func(t *testing.T) {
		client, err := httpclient.New("http://localhost:8081")
		assert.NoError(err)

		pool, err := broker.NewWorkerPool(client)
		assert.NoError(err)

		err = pool.RegisterQueue(context.Background(), "jobs", nil, nil)
		assert.ErrorIs(err, dynamiq.ErrInvalidArgument)
	})
}
