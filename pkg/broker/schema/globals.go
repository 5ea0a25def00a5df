package schema

import (
	"encoding/json"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultBatchSize = 10  // messages per receive when unset
	MaxBatchSize     = 100 // largest batch the broker will return
)

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func stringify[T any](v T) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
