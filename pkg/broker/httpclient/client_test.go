package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	// Packages
	dynamiq "github.com/mutablelogic/go-dynamiq"
	httpclient "github.com/mutablelogic/go-dynamiq/pkg/broker/httpclient"
	assert "github.com/stretchr/testify/assert"
)

func Test_Client_New(t *testing.T) {
	assert := assert.New(t)

	t.Run("ValidURL", func(t *testing.T) {
		client, err := httpclient.New("http://localhost:8081")
		assert.NoError(err)
		assert.NotNil(client)
	})

	t.Run("ValidURLWithPath", func(t *testing.T) {
		client, err := httpclient.New("http://localhost:8081/api")
		assert.NoError(err)
		assert.NotNil(client)
	})

	t.Run("EmptyURL", func(t *testing.T) {
		_, err := httpclient.New("")
		assert.Error(err)
	})
}

func Test_Client_Retry(t *testing.T) {
	assert := assert.New(t)

	// Two non-terminal responses followed by a terminal one: the
	// operation succeeds on the third attempt
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("GET", r.Method)
		assert.Equal("/v1/queues", r.URL.Path)
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"queues":["q1"]}`))
	}))
	defer server.Close()

	client, err := httpclient.New(server.URL, dynamiq.OptRetryCount(2))
	assert.NoError(err)

	queues, err := client.ListQueues(context.Background())
	assert.NoError(err)
	assert.Equal([]string{"q1"}, queues)
	assert.Equal(int32(3), atomic.LoadInt32(&calls))
}
