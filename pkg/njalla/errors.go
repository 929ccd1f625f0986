package njalla

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingResult is returned when a response envelope carries neither
	// a result nor an error.
	ErrMissingResult = errors.New("missing 'result' in response")

	// ErrNotFound is returned when a client-side lookup finds no matching
	// entity. It is always wrapped with the identifier that was looked up.
	ErrNotFound = errors.New("not found")

	// ErrEmptyToken is returned by New when no API token is given.
	ErrEmptyToken = errors.New("api token must not be empty")
)

// TransportError reports a failed HTTP exchange: the request could not be
// sent, timed out, or came back with a non-2xx status.
type TransportError struct {
	Method string
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("http: %s: received status code %d", e.Method, e.StatusCode)
	}
	return fmt.Sprintf("http: %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that is not valid JSON or whose result
// does not match the expected shape.
type DecodeError struct {
	Method string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("json: %s: %v", e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError is an error object returned by the remote server. Code and
// Message are passed through unchanged.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api (%d): %s", e.Code, e.Message)
}
