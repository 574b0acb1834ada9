package postgres

import (
	"context"
	"time"

	"github.com/AndrewN04/url-shortner/internal/infrastructure/db"
	"github.com/AndrewN04/url-shortner/internal/storage/postgres/sqlc"
)

// RateLimitStore keeps fixed-window counters in the rate_limits table. Each
// increment is one upsert, so concurrent requests serialize on the row lock.
type RateLimitStore struct {
	queries *sqlc.Queries
}

func NewRateLimitStore(p *db.Postgres) (*RateLimitStore, error) {
	if p == nil || p.Pool == nil {
		return nil, errPoolNil
	}
	return &RateLimitStore{queries: sqlc.New(p.Pool)}, nil
}

func (s *RateLimitStore) Increment(ctx context.Context, id string, windowStart time.Time) (int64, error) {
	count, err := s.queries.IncrementRateLimit(ctx, sqlc.IncrementRateLimitParams{
		ID:          id,
		WindowStart: toTimestamptz(windowStart),
	})
	if err != nil {
		return 0, err
	}
	return int64(count), nil
}

// Prune deletes counters whose window started before cutoff.
func (s *RateLimitStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.queries.DeleteStaleRateLimits(ctx, toTimestamptz(cutoff))
}
