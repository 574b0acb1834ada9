package links

import (
	"context"
	"errors"
	"time"

	"github.com/AndrewN04/url-shortner/internal/processing/urlcheck"
)

var (
	ErrNotFound           = errors.New("link not found")
	ErrCodeTaken          = errors.New("code taken")
	ErrCodeSpaceExhausted = errors.New("failed to generate unique code")
	ErrAlreadyRevoked     = errors.New("link already revoked")
)

type LinkRepository interface {
	// Insert returns ErrCodeTaken when the code violates the unique index.
	Insert(ctx context.Context, link *Link) error
	CodeExists(ctx context.Context, code string) (bool, error)
	FindByCode(ctx context.Context, code string) (*Link, error)
	// Revoke returns ErrNotFound or ErrAlreadyRevoked; revoked_at is set once.
	Revoke(ctx context.Context, code string, at time.Time) (*Link, error)
	ListRecent(ctx context.Context, limit int) ([]Link, error)
}

// URLValidator is satisfied by *urlcheck.Validator.
type URLValidator interface {
	Validate(ctx context.Context, raw string) urlcheck.Verdict
}
