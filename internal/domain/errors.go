package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a fault that carries the HTTP status it should be rendered with
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// NewAPIError creates a new APIError
func NewAPIError(message string, statusCode int) *APIError {
	return &APIError{Message: message, StatusCode: statusCode}
}

// NotFoundError reports a missing Update/Delete target for entity
func NotFoundError(entity string) *APIError {
	return NewAPIError(entity+" not found with this id", http.StatusNotFound)
}

// AsAPIError extracts an APIError from err's chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
