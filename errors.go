package dynamiq

import (
	"fmt"
	"net/http"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Err is an error kind in the client taxonomy. Callers branch on kinds with
// errors.Is, for example errors.Is(err, dynamiq.ErrNotFound).
type Err uint

// errWith wraps an error kind with a message and, optionally, the HTTP
// response which produced it.
type errWith struct {
	kind   Err
	msg    string
	status int
	body   []byte
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrConnectionFailure
	ErrTimeoutFailure
	ErrAlreadyExists
	ErrNotFound
	ErrInvalidArgument
	ErrRequestFailed
	ErrDeliveryFailure
	ErrAcknowledgementFailure
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrConnectionFailure:
		return "connection failure"
	case ErrTimeoutFailure:
		return "timeout"
	case ErrAlreadyExists:
		return "already exists"
	case ErrNotFound:
		return "not found"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrRequestFailed:
		return "request failed"
	case ErrDeliveryFailure:
		return "delivery failure"
	case ErrAcknowledgementFailure:
		return "acknowledgement failure"
	}
	return fmt.Sprintf("error code %d", uint(e))
}

// With returns an error of this kind with a message appended.
func (e Err) With(args ...any) error {
	return &errWith{kind: e, msg: fmt.Sprint(args...)}
}

// Withf returns an error of this kind with a formatted message appended.
func (e Err) Withf(format string, args ...any) error {
	return &errWith{kind: e, msg: fmt.Sprintf(format, args...)}
}

// WithResponse returns an error of this kind carrying the status code and
// body of the response which produced it, for diagnostics.
func (e Err) WithResponse(resp *Response) error {
	if resp == nil {
		return e
	}
	return &errWith{kind: e, status: resp.Status, body: resp.Body}
}

func (e *errWith) Error() string {
	parts := []string{e.kind.Error()}
	if e.status != 0 {
		parts = append(parts, fmt.Sprintf("(status %d %s)", e.status, http.StatusText(e.status)))
	}
	if e.msg != "" {
		parts = append(parts, e.msg)
	} else if len(e.body) > 0 {
		parts = append(parts, strings.TrimSpace(string(e.body)))
	}
	return strings.Join(parts, " ")
}

func (e *errWith) Unwrap() error {
	return e.kind
}

// ErrStatus returns the HTTP status code attached to an error, or zero
// if the error carries no response.
func ErrStatus(err error) int {
	if e, ok := err.(*errWith); ok {
		return e.status
	}
	return 0
}
