package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeValidation indicates malformed request data (not retried)
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeAuthentication indicates bad credentials (not retried)
	ErrorTypeAuthentication ErrorType = "AUTHENTICATION"

	// ErrorTypeNotFound indicates a resource was not found (not retried)
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeRateLimit indicates the remote side throttled the request
	ErrorTypeRateLimit ErrorType = "RATE_LIMIT"

	// ErrorTypeServer indicates a remote 5xx response
	ErrorTypeServer ErrorType = "SERVER"

	// ErrorTypeNetwork indicates a connection-level failure
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeTimeout indicates the request exceeded its deadline
	ErrorTypeTimeout ErrorType = "TIMEOUT"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from an external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error

	// RetryAfter holds a server-supplied cooldown for rate-limit errors.
	RetryAfter time.Duration
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the error class is safe to retry.
func (e *AppError) Retryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeServer, ErrorTypeNetwork, ErrorTypeTimeout:
		return true
	}
	return false
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAuthentication,
		Message: message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewRateLimitError creates a new rate-limit error with an optional
// server-supplied retry-after duration.
func NewRateLimitError(message string, retryAfter time.Duration) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimit,
		Message:    message,
		RetryAfter: retryAfter,
	}
}

// NewServerError creates a new server (5xx) error
func NewServerError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeServer,
		Message: message,
		Err:     err,
	}
}

// NewNetworkError creates a new connection-level error
func NewNetworkError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Message: message,
		Err:     err,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsRetryable reports whether err is a retryable AppError. Errors that are
// not AppErrors are treated as retryable connection-level failures.
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable()
	}
	return err != nil
}
