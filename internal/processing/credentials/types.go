package credentials

import "time"

// Credential is a stored API key. Only the digest of the secret is kept.
type Credential struct {
	ID        string
	KeyHash   string
	CreatedAt time.Time
	RevokedAt *time.Time
	Note      string
}

func (c Credential) Revoked() bool { return c.RevokedAt != nil }

// Status is the outcome of checking a bearer credential.
type Status int

const (
	StatusOK Status = iota
	StatusMissing
	StatusMalformed
	StatusUnknown
	StatusRevoked
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusMalformed:
		return "malformed"
	case StatusUnknown:
		return "unknown"
	case StatusRevoked:
		return "revoked"
	default:
		return "invalid"
	}
}

// AuthResult carries the credential ID for StatusOK and StatusRevoked.
type AuthResult struct {
	Status       Status
	CredentialID string
}

func (r AuthResult) OK() bool { return r.Status == StatusOK }

// Issued is returned once when a key is created. Secret is never stored.
type Issued struct {
	Credential Credential
	Secret     string
}
