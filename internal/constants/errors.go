package constants

import "net/http"

// APIError represents a standardized API error with code, message, and HTTP status.
// Use these predefined errors for consistent API responses across the application.
type APIError struct {
	Code    string
	Message string
	Status  int
}

// WithMessage returns a copy of the APIError with a custom message.
// Useful for validation errors or other dynamic messages.
func (e APIError) WithMessage(message string) APIError {
	return APIError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
	}
}

// Common errors - shared across multiple modules
var (
	ErrInvalidJSON = APIError{
		Code:    CodeInvalidRequest,
		Message: MsgInvalidJSON,
		Status:  http.StatusBadRequest,
	}
	ErrBodyTooLarge = APIError{
		Code:    CodeInvalidRequest,
		Message: MsgBodyTooLarge,
		Status:  http.StatusBadRequest,
	}
	ErrInternalError = APIError{
		Code:    CodeInternalError,
		Message: MsgInternalError,
		Status:  http.StatusInternalServerError,
	}
	ErrRateLimited = APIError{
		Code:    CodeRateLimited,
		Message: MsgRateLimited,
		Status:  http.StatusTooManyRequests,
	}
	ErrNotFound = APIError{
		Code:    CodeNotFound,
		Message: MsgNotFound,
		Status:  http.StatusNotFound,
	}
)

// Authentication errors
var (
	ErrMissingAuthorization = APIError{
		Code:    CodeUnauthorized,
		Message: MsgMissingAuthorization,
		Status:  http.StatusUnauthorized,
	}
	ErrMalformedAPIKey = APIError{
		Code:    CodeUnauthorized,
		Message: MsgMalformedAPIKey,
		Status:  http.StatusUnauthorized,
	}
	ErrInvalidAPIKey = APIError{
		Code:    CodeUnauthorized,
		Message: MsgInvalidAPIKey,
		Status:  http.StatusUnauthorized,
	}
)

// Shortener-specific errors
var (
	ErrMissingURL = APIError{
		Code:    CodeInvalidRequest,
		Message: MsgMissingURL,
		Status:  http.StatusBadRequest,
	}
	ErrInvalidURL = APIError{
		Code:   CodeInvalidURL,
		Status: http.StatusBadRequest,
	}
	ErrInvalidTTL = APIError{
		Code:    CodeInvalidTTL,
		Message: MsgTTLNotInteger,
		Status:  http.StatusBadRequest,
	}
	ErrLinkGone = APIError{
		Code:    CodeLinkGone,
		Message: MsgLinkGone,
		Status:  http.StatusGone,
	}
	ErrCodeExhausted = APIError{
		Code:    CodeCodeExhausted,
		Message: MsgCodeExhausted,
		Status:  http.StatusInternalServerError,
	}
)
