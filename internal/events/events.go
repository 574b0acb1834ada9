// Package events defines the audit events emitted when links and API keys
// change state.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeLinkCreated   = "link.created"
	TypeLinkRevoked   = "link.revoked"
	TypeAPIKeyRevoked = "api_key.revoked"
)

// Envelope is the JSON value written for every event.
type Envelope struct {
	EventID    string `json:"eventId"`
	Type       string `json:"type"`
	OccurredAt string `json:"occurredAt"`
	Data       any    `json:"data"`
}

// NewEnvelope stamps data with a fresh event ID.
func NewEnvelope(eventType string, at time.Time, data any) Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: at.UTC().Format(time.RFC3339Nano),
		Data:       data,
	}
}

// LinkCreated is emitted after a short link is persisted.
type LinkCreated struct {
	Code           string `json:"code"`
	URL            string `json:"url"`
	CreatedByKeyID string `json:"createdByKeyId"`
	ExpiresAt      string `json:"expiresAt,omitempty"`
}

// LinkRevoked is emitted when an operator revokes a link.
type LinkRevoked struct {
	Code      string `json:"code"`
	RevokedAt string `json:"revokedAt"`
}

// APIKeyRevoked is emitted when an operator revokes an API key.
type APIKeyRevoked struct {
	KeyID     string `json:"keyId"`
	RevokedAt string `json:"revokedAt"`
}

// Publisher delivers an envelope keyed by key (link code or key ID).
type Publisher interface {
	Publish(ctx context.Context, key string, ev Envelope) error
}

// Nop discards every event. Used when EVENTS_ENABLED is off.
type Nop struct{}

func (Nop) Publish(context.Context, string, Envelope) error { return nil }
