package models

import "errors"

// Sentinel errors returned by the service layer. Controllers translate
// these into HTTP statuses; nothing below the controller knows about HTTP.
var (
	// ErrNotFound means no matching entity exists
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the actor is neither the owner nor an admin.
	// Deliberately carries no detail about which check failed.
	ErrForbidden = errors.New("not authorized")
	// ErrInvalidArgument means a query parameter was out of range or malformed
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflictingEmail means the registration email is already taken
	ErrConflictingEmail = errors.New("email already registered")
)

// ValidationError describes malformed input rejected before persistence.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError creates a validation error for the given field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed = "VALIDATION_FAILED"

	// OAuth/Auth errors (maintain RFC 6749 compatibility)
	ErrCodeInvalidRequest       = "invalid_request"
	ErrCodeInvalidClient        = "invalid_client"
	ErrCodeInvalidGrant         = "invalid_grant"
	ErrCodeUnauthorizedClient   = "unauthorized_client"
	ErrCodeUnsupportedGrantType = "unsupported_grant_type"
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
