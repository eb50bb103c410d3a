package models

import (
	"errors"
	"fmt"
)

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Domain-specific errors
	ErrRestaurantNotFound = "RESTAURANT_NOT_FOUND"
	ErrMenuItemNotFound   = "MENU_ITEM_NOT_FOUND"
	ErrUserNotFound       = "USER_NOT_FOUND"
	ErrInvalidRating      = "INVALID_RATING"
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrStorageDown        = "STORAGE_UNAVAILABLE"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// ErrNotFound is returned when a referenced restaurant, menu item or user
// does not exist in the catalog.
var ErrNotFound = errors.New("not found")

// ErrStorageUnavailable is returned when the credential store cannot be
// reached. It is a recoverable condition distinct from bad credentials.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ValidationError rejects malformed input before any state is mutated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
