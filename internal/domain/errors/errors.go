// Package errors provides domain-specific errors for the modelworth application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common domain error conditions.
var (
	ErrUnknownSource     = errors.New("unknown pricing source")
	ErrNoCatalog         = errors.New("no catalog loaded")
	ErrFetchFailed       = errors.New("catalog fetch failed")
	ErrRebuildSuperseded = errors.New("catalog rebuild superseded")
	ErrPreferencesEmpty  = errors.New("no preferences stored")
)

// ErrorCode categorizes errors for handling and reporting.
type ErrorCode string

const (
	CodeValidation    ErrorCode = "VALIDATION"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeFetch         ErrorCode = "FETCH"
	CodeStorage       ErrorCode = "STORAGE"
	CodeConfiguration ErrorCode = "CONFIG"
)

// ModelworthError wraps errors with additional context for debugging and handling.
type ModelworthError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns a formatted error string including the code, message, and cause if present.
func (e *ModelworthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for use with errors.Is and errors.As.
func (e *ModelworthError) Unwrap() error {
	return e.Cause
}

// NewError creates a new ModelworthError with the given code, message, and optional cause.
func NewError(code ErrorCode, message string, cause error) *ModelworthError {
	return &ModelworthError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Is reports whether err matches target using errors.Is semantics.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target and sets
// target to that error value.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
