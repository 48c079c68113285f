// Package errors defines the application's error kinds: configuration
// errors, I/O errors propagated from collaborators, and invariant
// violations raised by the community model's move primitives.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown            = "UNKNOWN_ERROR"
	CodeConfigError        = "CONFIG_ERROR"
	CodeIOError            = "IO_ERROR"
	CodeParseError         = "PARSE_ERROR"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeInvalidMove        = "INVALID_MOVE"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrConfigError        = New(CodeConfigError, "configuration error")
	ErrIOError            = New(CodeIOError, "I/O error")
	ErrParseError         = New(CodeParseError, "parse error")
	ErrInvariantViolation = New(CodeInvariantViolation, "invariant violation")
	ErrInvalidMove        = New(CodeInvalidMove, "invalid move")
)

// IsConfigError checks if the error is a configuration error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigError)
}

// IsIOError checks if the error is an I/O error.
func IsIOError(err error) bool {
	return errors.Is(err, ErrIOError)
}

// IsInvariantViolation checks if the error is an invariant violation
// (a failed precondition of a move primitive — a programmer error).
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
