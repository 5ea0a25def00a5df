package httpclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	// Packages
	dynamiq "github.com/mutablelogic/go-dynamiq"
	httpclient "github.com/mutablelogic/go-dynamiq/pkg/broker/httpclient"
	schema "github.com/mutablelogic/go-dynamiq/pkg/broker/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_Client_CreateQueue(t *testing.T) {
	assert := assert.New(t)

	t.Run("Created", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal("PUT", r.Method)
			assert.Equal("/v1/queues/jobs", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL)
		assert.NoError(err)

		assert.NoError(client.CreateQueue(context.Background(), "jobs"))
	})

	t.Run("AlreadyExists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte("queue exists"))
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL)
		assert.NoError(err)

		err = client.CreateQueue(context.Background(), "jobs")
		assert.ErrorIs(err, dynamiq.ErrAlreadyExists)
		assert.Contains(err.Error(), "queue exists")
	})
}

func Test_Client_DeleteQueue(t *testing.T) {
	assert := assert.New(t)

	t.Run("Deleted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal("DELETE", r.Method)
			assert.Equal("/v1/queues/jobs", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL)
		assert.NoError(err)

		assert.NoError(client.DeleteQueue(context.Background(), "jobs"))
	})

	t.Run("NotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL)
		assert.NoError(err)

		err = client.DeleteQueue(context.Background(), "missing")
		assert.ErrorIs(err, dynamiq.ErrNotFound)
	})
}

func Test_Client_ConfigureQueue(t *testing.T) {
	assert := assert.New(t)

	t.Run("Configured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal("PATCH", r.Method)
			assert.Equal("/v1/queues/jobs", r.URL.Path)
			assert.Equal("application/json", r.Header.Get("Content-Type"))

			var meta schema.QueueMeta
			assert.NoError(json.NewDecoder(r.Body).Decode(&meta))
			assert.NotNil(meta.TTL)
			assert.Equal(5*time.Minute, *meta.TTL)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL)
		assert.NoError(err)

		ttl := 5 * time.Minute
		assert.NoError(client.ConfigureQueue(context.Background(), "jobs", schema.QueueMeta{
			TTL: &ttl,
		}))
	})

	t.Run("RequestFailed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL, dynamiq.OptRetryCount(0))
		assert.NoError(err)

		err = client.ConfigureQueue(context.Background(), "jobs", schema.QueueMeta{})
		assert.ErrorIs(err, dynamiq.ErrRequestFailed)
	})
}

func Test_Client_GetQueue(t *testing.T) {
	assert := assert.New(t)

	t.Run("ExistingQueue", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal("GET", r.Method)
			assert.Equal("/v1/queues/jobs", r.URL.Path)

			ttl := 5 * time.Minute
			response := schema.Queue{
				Queue: "jobs",
				QueueMeta: schema.QueueMeta{
					TTL: &ttl,
				},
				Topics:   []string{"events"},
				Messages: 42,
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL)
		assert.NoError(err)

		queue, err := client.GetQueue(context.Background(), "jobs")
		assert.NoError(err)
		assert.NotNil(queue)
		assert.Equal("jobs", queue.Queue)
		assert.Equal([]string{"events"}, queue.Topics)
		assert.Equal(uint64(42), queue.Messages)
		assert.NotNil(queue.TTL)
		assert.Equal(5*time.Minute, *queue.TTL)
	})

	t.Run("NotFoundQueue", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL)
		assert.NoError(err)

		queue, err := client.GetQueue(context.Background(), "missing")
		assert.ErrorIs(err, dynamiq.ErrNotFound)
		assert.Nil(queue)
	})
}

func Test_Client_ListQueues(t *testing.T) {
	assert := assert.New(t)

	t.Run("EmptyList", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal("GET", r.Method)
			assert.Equal("/v1/queues", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"queues":[]}`))
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL)
		assert.NoError(err)

		queues, err := client.ListQueues(context.Background())
		assert.NoError(err)
		assert.Empty(queues)
	})

	t.Run("WithQueues", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"queues":["jobs","audit"]}`))
		}))
		defer server.Close()

		client, err := httpclient.New(server.URL)
		assert.NoError(err)

		queues, err := client.ListQueues(context.Background())
		assert.NoError(err)
		assert.Equal([]string{"jobs", "audit"}, queues)
	})
}
