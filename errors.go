package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrorKind classifies an [APIError] into one of a closed set of failure
// classes. Retry eligibility is decided on the kind alone.
type ErrorKind string

const (
	// ErrorKindTimeout covers per-attempt timeouts and aborted transport
	// calls. Retryable.
	ErrorKindTimeout ErrorKind = "timeout"

	// ErrorKindNetwork covers connection-level failures such as connection
	// refused or reset. Retryable.
	ErrorKindNetwork ErrorKind = "network"

	// ErrorKindHTTP covers non-2xx responses. Retryable only for 5xx.
	ErrorKindHTTP ErrorKind = "http"

	// ErrorKindDecode covers 2xx responses whose body could not be parsed
	// into the expected shape. Never retryable.
	ErrorKindDecode ErrorKind = "decode"
)

// APIError is the error type returned by all [Client] calls. Exactly one
// kind is assigned per failure; StatusCode is set only for ErrorKindHTTP.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches two APIErrors by kind, so errors.Is(err, &APIError{Kind:
// ErrorKindTimeout}) works regardless of message text.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Retryable reports whether the failure class is expected to resolve on
// retry: timeouts, network errors, and 5xx responses.
func (e *APIError) Retryable() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ErrorKindTimeout, ErrorKindNetwork:
		return true
	case ErrorKindHTTP:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// classifyTransportError maps an error returned by the transport into a
// tagged APIError. Timeouts and aborts map to ErrorKindTimeout, everything
// else at this level is a connection problem.
func classifyTransportError(err error) *APIError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		// Caller-initiated aborts share the timeout kind but keep their
		// own message so logs do not blame the backend
		return &APIError{Kind: ErrorKindTimeout, Message: "request canceled", Cause: err}
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &APIError{Kind: ErrorKindTimeout, Message: "request timed out", Cause: err}
	default:
		return &APIError{Kind: ErrorKindNetwork, Message: "network error", Cause: err}
	}
}

// newHTTPError builds an APIError for a non-2xx response, pulling a
// human-readable message out of the error body's "detail" field when one
// is present.
func newHTTPError(status int, body []byte) *APIError {
	msg := fmt.Sprintf("API error: %d", status)
	if detail := gjson.GetBytes(body, "detail"); detail.Exists() && detail.String() != "" {
		msg = detail.String()
	}
	return &APIError{Kind: ErrorKindHTTP, StatusCode: status, Message: msg}
}

func newDecodeError(err error) *APIError {
	return &APIError{Kind: ErrorKindDecode, Message: "unexpected response body", Cause: err}
}
