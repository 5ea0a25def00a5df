package dynamiq_test

import (
	"errors"
	"net/http"
	"testing"

	// Packages
	dynamiq "github.com/mutablelogic/go-dynamiq"
	assert "github.com/stretchr/testify/assert"
)

func Test_Err_001(t *testing.T) {
	assert := assert.New(t)

	t.Run("Kind", func(t *testing.T) {
		assert.Equal("not found", dynamiq.ErrNotFound.Error())
		assert.Equal("already exists", dynamiq.ErrAlreadyExists.Error())
		assert.Equal("timeout", dynamiq.ErrTimeoutFailure.Error())
	})

	t.Run("With", func(t *testing.T) {
		err := dynamiq.ErrNotFound.With("queue \"q\"")
		assert.ErrorIs(err, dynamiq.ErrNotFound)
		assert.Contains(err.Error(), "queue")
	})

	t.Run("Withf", func(t *testing.T) {
		err := dynamiq.ErrAlreadyExists.Withf("topic %q", "events")
		assert.ErrorIs(err, dynamiq.ErrAlreadyExists)
		assert.Contains(err.Error(), "events")
	})

	t.Run("WithResponse", func(t *testing.T) {
		err := dynamiq.ErrRequestFailed.WithResponse(&dynamiq.Response{
			Status: http.StatusBadGateway,
			Body:   []byte("upstream gone"),
		})
		assert.ErrorIs(err, dynamiq.ErrRequestFailed)
		assert.Equal(http.StatusBadGateway, dynamiq.ErrStatus(err))
		assert.Contains(err.Error(), "502")
		assert.Contains(err.Error(), "upstream gone")
	})

	t.Run("WithNilResponse", func(t *testing.T) {
		err := dynamiq.ErrRequestFailed.WithResponse(nil)
		assert.ErrorIs(err, dynamiq.ErrRequestFailed)
		assert.Equal(0, dynamiq.ErrStatus(err))
	})

	t.Run("KindsAreDistinct", func(t *testing.T) {
		err := dynamiq.ErrNotFound.With("x")
		assert.False(errors.Is(err, dynamiq.ErrAlreadyExists))
		assert.False(errors.Is(err, dynamiq.ErrInvalidArgument))
	})
}
