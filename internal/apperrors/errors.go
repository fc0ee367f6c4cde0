package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the requested operation would violate an
// invariant of the current state (e.g. settling an already settled order).
var ErrConflict = errors.New("conflict with current state")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStorage indicates that the underlying store failed for infrastructure
// reasons. The operation had no partial effect and may be retried whole.
var ErrStorage = errors.New("storage failure")

// AppError carries an HTTP-ish status code alongside the wrapped cause so
// repositories can report failures without importing net/http.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err. A 5xx code with no explicit
// cause unwraps to ErrStorage so callers can still test with errors.Is.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil && code >= 500 {
		err = ErrStorage
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewStorageError wraps an infrastructure failure from the database layer.
func NewStorageError(message string, err error) *AppError {
	return &AppError{Code: 500, Message: message, Err: fmt.Errorf("%w: %w", ErrStorage, err)}
}
