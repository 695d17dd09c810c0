package models

import (
	"errors"
	"fmt"
)

// ErrorResponse is the JSON error body returned by the learning API. Either
// field may carry the human-readable reason depending on the endpoint.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Reason returns the most specific message available from the error body.
func (e *ErrorResponse) Reason() string {
	if len(e.Message) > 0 {
		return e.Message
	}
	return e.Error
}

// InvalidSessionCode is the error code the API reports when the session
// credential attached to a request is unknown or expired.
const InvalidSessionCode = "invalid_session"

// TransientError is a remote-side failure: a connection error, a timeout, or
// a 5xx response. Transient errors are eligible for transport-level retry and
// count toward the circuit breaker.
type TransientError struct {
	Op         string
	StatusCode int // zero when no HTTP response was received
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: remote failure (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: remote failure: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// CircuitOpenError is returned when the circuit breaker is open and the call
// was rejected without any network I/O.
type CircuitOpenError struct {
	Op  string
	Err error
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("%s: circuit breaker open, call rejected: %v", e.Op, e.Err)
}

func (e *CircuitOpenError) Unwrap() error {
	return e.Err
}

// InvalidSessionError indicates the remote side no longer recognises the
// session credential. The local session state has already been invalidated
// by the time this error reaches the caller.
type InvalidSessionError struct {
	Op string
}

func (e *InvalidSessionError) Error() string {
	return fmt.Sprintf("%s: remote session is no longer valid", e.Op)
}

// BusinessError is a well-formed 4xx carrying a legitimate domain condition,
// for example "no more questions". It is never retried and never counted by
// the circuit breaker.
type BusinessError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
}

// DecodeError indicates the response body did not match the expected shape.
// Not retried: retrying a malformed response from a healthy-looking server is
// unlikely to help and risks duplicate side effects.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err (or anything it wraps) is a remote-side
// transient failure.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// IsCircuitOpen reports whether err was caused by an open circuit breaker.
func IsCircuitOpen(err error) bool {
	var c *CircuitOpenError
	return errors.As(err, &c)
}

// IsInvalidSession reports whether err indicates the remote session
// credential is no longer valid.
func IsInvalidSession(err error) bool {
	var i *InvalidSessionError
	return errors.As(err, &i)
}

// AsBusiness extracts a BusinessError from err if present.
func AsBusiness(err error) (*BusinessError, bool) {
	var b *BusinessError
	if errors.As(err, &b) {
		return b, true
	}
	return nil, false
}
