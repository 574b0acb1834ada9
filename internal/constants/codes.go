package constants

// Error codes used in API responses.
// These are the machine-readable codes returned in the "code" field.
const (
	// Common error codes
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeRateLimited    = "RATE_LIMITED"
	CodeNotFound       = "NOT_FOUND"

	// Shortener-specific codes
	CodeInvalidURL    = "INVALID_URL"
	CodeInvalidTTL    = "INVALID_TTL"
	CodeLinkGone      = "LINK_GONE"
	CodeCodeExhausted = "CODE_SPACE_EXHAUSTED"
)
