// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// APIError represents a standard structure for API errors.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, e.Message)
}

func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// WithDetails returns a copy of the error carrying request-specific details,
// so the package-level sentinels are never mutated.
func (e *APIError) WithDetails(details interface{}) *APIError {
	clone := *e
	clone.Details = details
	return &clone
}

var (
	// ErrValidation covers missing or malformed input.
	ErrValidation = NewAPIError(http.StatusBadRequest, "VALIDATION_ERROR", "The request is invalid.")
	// ErrConflict covers duplicate email or phone registrations.
	ErrConflict = NewAPIError(http.StatusConflict, "CONFLICT", "A conflict occurred with the current state of the resource.")
	// ErrNotFound covers missing accounts, tokens and verification records.
	ErrNotFound = NewAPIError(http.StatusNotFound, "NOT_FOUND", "The requested resource could not be found.")
	// ErrAuth covers credential mismatches during login.
	ErrAuth = NewAPIError(http.StatusUnauthorized, "AUTH_FAILED", "Authentication failed.")
	// ErrPolicy covers operations currently disabled by platform policy.
	ErrPolicy = NewAPIError(http.StatusForbidden, "SIGNUP_SUSPENDED", "This operation is temporarily suspended.")
	// ErrUnsupported covers unknown verification reasons.
	ErrUnsupported = NewAPIError(http.StatusBadRequest, "UNSUPPORTED_OPERATION", "The requested operation is not supported.")
	// ErrInvalidToken covers token decode and signature failures.
	ErrInvalidToken = NewAPIError(http.StatusUnauthorized, "INVALID_TOKEN", "The provided token is invalid.")

	ErrUnauthorized   = NewAPIError(http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required and has failed or has not yet been provided.")
	ErrForbidden      = NewAPIError(http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource.")
	ErrInternalServer = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred on the server.")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Is reports whether err carries the same taxonomy code as target.
// Sentinels are compared by code so WithDetails copies still match.
func Is(err error, target *APIError) bool {
	apiErr, ok := IsAPIError(err)
	return ok && apiErr.Code == target.Code
}

func NewValidationAPIError(details interface{}) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    "Input validation failed.",
		Details:    details,
	}
}

// FormatValidationErrors converts validator.ValidationErrors into a map.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMap := make(map[string]string)
	for _, e := range errs {
		field := e.Field()
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", strings.ToLower(field))
		case "email":
			message = fmt.Sprintf("The %s field must be a valid email address.", strings.ToLower(field))
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s characters long.", strings.ToLower(field), e.Param())
		case "max":
			message = fmt.Sprintf("The %s field may not be greater than %s characters.", strings.ToLower(field), e.Param())
		case "oneof":
			message = fmt.Sprintf("The %s field must be one of the following values: %s.", strings.ToLower(field), e.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
		}
		errorMap[field] = message
	}
	return errorMap
}
