package links

import (
	"fmt"
	"time"
)

type Link struct {
	ID             string
	SeqID          int64
	Code           string
	URL            string
	CreatedAt      time.Time
	ExpiresAt      *time.Time
	RevokedAt      *time.Time
	CreatedByKeyID string
}

// Status labels a link for operator listings.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusExpired Status = "EXPIRED"
	StatusRevoked Status = "REVOKED"
)

// StatusAt evaluates revocation first, then expiry, against at.
func (l Link) StatusAt(at time.Time) Status {
	if l.RevokedAt != nil {
		return StatusRevoked
	}
	if l.ExpiresAt != nil && !at.Before(*l.ExpiresAt) {
		return StatusExpired
	}
	return StatusActive
}

type ShortenInput struct {
	URL string
	// TTL in seconds. Nil selects the default.
	TTL          *int64
	CredentialID string
}

type ResolutionKind int

const (
	NotFound ResolutionKind = iota
	Found
	Gone
)

func (k ResolutionKind) String() string {
	switch k {
	case Found:
		return "found"
	case Gone:
		return "gone"
	default:
		return "not_found"
	}
}

// Resolution is the outcome of looking up a code. URL is set only for Found.
type Resolution struct {
	Kind ResolutionKind
	URL  string
}

type RejectionKind int

const (
	RejectInvalidTTL RejectionKind = iota + 1
	RejectInvalidURL
)

// RejectionError reports input refused by policy. Message is safe to return
// to the client.
type RejectionError struct {
	Kind    RejectionKind
	Reason  string
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("rejected (%s): %s", e.Reason, e.Message)
}
