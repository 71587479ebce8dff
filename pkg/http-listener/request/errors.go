package request

import (
	"net/http"

	"emperror.dev/errors"
)

// ErrNotImplemented is returned by operations that exist for contract parity only.
var ErrNotImplemented = errors.NewPlain("not implemented")

// ErrNotSupported is returned by properties that cannot be served by this listener.
var ErrNotSupported = errors.NewPlain("not supported")

// ErrReadOnly is returned when a read-only view of a request is fed.
var ErrReadOnly = errors.NewPlain("read-only request view")

// ValidationError represents a protocol violation found while reading an exchange.
// An empty Message with an explicit Status asks the caller to answer with that
// exact status instead of a generic bad request.
type ValidationError struct {
	Message string
	Status  int
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.StatusCode())
	}

	return e.Message
}

// StatusCode returns the response status matching the error, 400 when none was forced.
func (e *ValidationError) StatusCode() int {
	if e.Status == 0 {
		return http.StatusBadRequest
	}

	return e.Status
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func newStatusError(status int) *ValidationError {
	return &ValidationError{Status: status}
}

// IsValidationError returns the validation error wrapped in err when there is one.
func IsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}

	return nil, false
}
