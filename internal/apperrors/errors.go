// Package apperrors provides the structured error taxonomy shared by the gateway layers.
// Handlers map an error's Code to an HTTP status; the Cause and Context stay server-side.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure for programmatic handling.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates a required setting is missing or blank.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
	// ErrCodeUpstream indicates the inference endpoint failed or answered with an unexpected body.
	ErrCodeUpstream ErrorCode = "UPSTREAM"
	// ErrCodePersistence indicates a database operation failed.
	ErrCodePersistence ErrorCode = "PERSISTENCE"
	// ErrCodeInvalidRequest indicates malformed or incomplete input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeNotFound indicates a requested record or route does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates any other failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError carries a code, a human-readable message, the underlying
// cause and optional context for logging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// NewWithContext creates a StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Context: context}
}

// Wrap wraps an existing error with a code and message.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause}
}

// WrapWithContext wraps an error with a code, message and context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context}
}

// CodeOf returns the code of the outermost StructuredError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// HTTPStatus maps an error code to the status returned to callers.
// Configuration, upstream and persistence failures all surface as 500.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
