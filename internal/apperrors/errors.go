package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrState indicates that an operation is not allowed in the current lifecycle state of a resource.
var ErrState = errors.New("invalid state transition")

// ErrConfiguration indicates that a required ledger configuration (e.g. an account role) is missing or inactive.
var ErrConfiguration = errors.New("ledger configuration error")

// ErrInternal indicates an unexpected failure that is not the caller's fault.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewStateError creates an AppError that unwraps to ErrState.
func NewStateError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrState}
}
