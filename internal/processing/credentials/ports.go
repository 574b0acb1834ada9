package credentials

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("api key not found")
	ErrAlreadyRevoked = errors.New("api key already revoked")
	ErrEmptyPepper    = errors.New("api key pepper is empty")
)

type CredentialRepository interface {
	Create(ctx context.Context, keyHash, note string, at time.Time) (*Credential, error)
	// FindByHash returns ErrNotFound when no key carries the digest.
	FindByHash(ctx context.Context, keyHash string) (*Credential, error)
	ListActive(ctx context.Context) ([]Credential, error)
	// Revoke sets revoked_at once. Returns ErrNotFound or ErrAlreadyRevoked.
	Revoke(ctx context.Context, id string, at time.Time) (*Credential, error)
}
