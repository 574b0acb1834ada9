package constants

// Error messages used in API responses.
// These are the human-readable messages returned in the "error" field.
const (
	// Common messages
	MsgInvalidJSON   = "Invalid JSON body"
	MsgBodyTooLarge  = "Request body too large"
	MsgInternalError = "Internal server error"
	MsgRateLimited   = "Rate limit exceeded"
	MsgNotFound      = "Not Found"

	// Authentication messages. Unknown and revoked keys share MsgInvalidAPIKey.
	MsgMissingAuthorization = "Missing Authorization header"
	MsgMalformedAPIKey      = "Invalid API key format"
	MsgInvalidAPIKey        = "Invalid API key"

	// Shortener-specific messages
	MsgMissingURL    = "Missing required field: url"
	MsgTTLNotInteger = "TTL must be an integer"
	MsgLinkGone      = "Gone"
	MsgCodeExhausted = "Failed to generate unique code"
)
