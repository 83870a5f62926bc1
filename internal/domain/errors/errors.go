// Package errors defines the harness error taxonomy: configuration errors
// (fatal before any network call), upstream rejections (propagated with the
// raw backend message), and best-effort cleanup errors (aggregated, never
// escalated past teardown).
package errors

import (
	"net/http"

	"clubharness/internal/errors"
)

// AppError defines the interface for harness-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code of the upstream response, if any
	ErrorCode() string // Stable error code
	Message() string   // Human-readable error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the stable error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the human-readable error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Configuration errors: always fatal, raised before any network call.
	ErrMissingBackendURL = NewBaseError(
		0,
		"MISSING_BACKEND_URL",
		"backend base URL is not configured",
		"",
	)

	ErrMissingServiceKey = NewBaseError(
		0,
		"MISSING_SERVICE_KEY",
		"backend service secret key is not configured",
		"",
	)

	ErrMissingPaymentKey = NewBaseError(
		0,
		"MISSING_PAYMENT_KEY",
		"payment provider secret key is not configured",
		"",
	)

	// Identity errors
	ErrIdentityExists = NewBaseError(
		http.StatusConflict,
		"IDENTITY_EXISTS",
		"an identity with this email already exists",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"email or password is incorrect",
		"",
	)

	// Fixture errors
	ErrDependentRowsExist = NewBaseError(
		http.StatusConflict,
		"DEPENDENT_ROWS_EXIST",
		"cannot delete a record that still has dependent rows",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)
)

// UpstreamError carries a backend or payment-provider rejection verbatim.
// The raw upstream message is preserved so a failed setup surfaces the real
// error rather than a generic wrapper (failed fixtures are unsafe to build
// tests on, so these always propagate).
type UpstreamError struct {
	httpCode int
	message  string
	details  string
}

// NewUpstreamError creates an error from an upstream rejection payload.
func NewUpstreamError(httpCode int, message, details string) AppError {
	return &UpstreamError{
		httpCode: httpCode,
		message:  message,
		details:  details,
	}
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code of the upstream response.
func (e *UpstreamError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the stable error code.
func (e *UpstreamError) ErrorCode() string {
	return "UPSTREAM_REJECTED"
}

// Message returns the raw upstream error message.
func (e *UpstreamError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *UpstreamError) Details() string {
	return e.details
}
