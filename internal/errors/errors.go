// Package errors defines the structured API error responses used by the
// HTTP surface.
package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// ExtractNotFoundError creates an extract not found error naming the
// requested extract
func ExtractNotFoundError(name string) *APIError {
	return NewWithDetails(http.StatusNotFound, "EXTRACT_NOT_FOUND",
		fmt.Sprintf("extract %q not found", name), name)
}

// DataNotFoundError creates a data not found error with the underlying cause
func DataNotFoundError(err error) *APIError {
	return NewWithDetails(http.StatusNotFound, "DATA_NOT_FOUND", "No market data file available", err.Error())
}

// SchemaInvalidError creates an error for source files missing required columns
func SchemaInvalidError(err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "SCHEMA_INVALID",
		"Source file is missing required columns", err.Error())
}

// InternalServerError creates an internal server error with details
func InternalServerError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error", err.Error())
}
