package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden   = "FORBIDDEN"
	ErrCodeNotAssigned = "NOT_ASSIGNED"

	// Validation errors
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeReferenceNotFound = "REFERENCE_NOT_FOUND"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

var statusByCode = map[string]int{
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotAssigned:        http.StatusForbidden,
	ErrCodeValidationFailed:   http.StatusBadRequest,
	ErrCodeReferenceNotFound:  http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeInternalError:      http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// APIError is an error that knows how it is presented to API clients.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Status returns the HTTP status for the error code.
func (e *APIError) Status() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Is matches any APIError with the same code and message, so sentinel
// errors survive being copied by WithDetails.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithDetails returns a copy of e carrying details.
func (e *APIError) WithDetails(details string) *APIError {
	return &APIError{Code: e.Code, Message: e.Message, Details: details}
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// Predefined errors
var (
	ErrUnauthorized     = NewAPIError(ErrCodeUnauthorized, "Access token required")
	ErrInvalidToken     = NewAPIError(ErrCodeUnauthorized, "Invalid token")
	ErrTokenExpired     = NewAPIError(ErrCodeTokenExpired, "Token has expired")
	ErrForbidden        = NewAPIError(ErrCodeForbidden, "Access denied")
	ErrRouteNotFound    = NewAPIError(ErrCodeNotFound, "Route not found")
	ErrValidationFailed = NewAPIError(ErrCodeValidationFailed, "Validation failed")
	ErrRateLimited      = NewAPIError(ErrCodeRateLimited, "Too many requests from this IP, please try again later.")
	ErrInternalError    = NewAPIError(ErrCodeInternalError, "Internal server error")
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RespondWithError writes err as a failed envelope and aborts the chain.
func RespondWithError(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(err.Status(), Envelope{
		Success: false,
		Message: err.Message,
		Error:   err.Details,
	})
}

// RespondWithSuccess writes a successful envelope.
func RespondWithSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NotFound sends a 404 response for unknown routes.
func NotFound(c *gin.Context) {
	RespondWithError(c, ErrRouteNotFound)
}

// ValidationFailed sends a 400 response listing every failing field.
func ValidationFailed(c *gin.Context, details string) {
	RespondWithError(c, ErrValidationFailed.WithDetails(details))
}
