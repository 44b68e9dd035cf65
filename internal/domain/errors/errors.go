package errors

import (
	"net/http"

	"adradar/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
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
	// Ad registry errors
	ErrAdNotFound = NewBaseError(
		http.StatusNotFound,
		"AD_NOT_FOUND",
		"Ad not found",
		"",
	)

	ErrAdCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"AD_CREATION_FAILED",
		"Failed to create ad",
		"",
	)

	ErrCreativeNotFound = NewBaseError(
		http.StatusNotFound,
		"CREATIVE_NOT_FOUND",
		"Creative not found",
		"",
	)

	ErrCreativeStoreFailed = NewBaseError(
		http.StatusInternalServerError,
		"CREATIVE_STORE_FAILED",
		"Failed to store creative",
		"",
	)

	// Request errors
	ErrInvalidCoordinates = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATES",
		"Latitude or longitude out of range",
		"",
	)
)

// NewDatabaseExecuteError wraps a low-level database failure as a generic 500.
func NewDatabaseExecuteError(cause error, message string) *BaseError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}

	return NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		message,
		details,
	)
}
