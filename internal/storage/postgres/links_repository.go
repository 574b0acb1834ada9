package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AndrewN04/url-shortner/internal/infrastructure/db"
	"github.com/AndrewN04/url-shortner/internal/processing/links"
	"github.com/AndrewN04/url-shortner/internal/storage/postgres/sqlc"
	"github.com/jackc/pgx/v5"
)

type LinksRepository struct {
	queries *sqlc.Queries
}

func NewLinksRepository(p *db.Postgres) (*LinksRepository, error) {
	if p == nil || p.Pool == nil {
		return nil, errPoolNil
	}
	return &LinksRepository{queries: sqlc.New(p.Pool)}, nil
}

func (r *LinksRepository) Insert(ctx context.Context, link *links.Link) error {
	if link == nil {
		return errors.New("link is nil")
	}

	keyID, err := toUUID(link.CreatedByKeyID)
	if err != nil {
		return fmt.Errorf("invalid creator key id: %w", err)
	}

	row, err := r.queries.CreateLink(ctx, sqlc.CreateLinkParams{
		Code:           link.Code,
		Url:            link.URL,
		CreatedAt:      toTimestamptz(link.CreatedAt),
		ExpiresAt:      toNullableTimestamptz(link.ExpiresAt),
		CreatedByKeyID: keyID,
	})
	if isUniqueViolation(err) {
		return links.ErrCodeTaken
	}
	if err != nil {
		return err
	}

	link.ID = uuidValue(row.ID)
	link.SeqID = int64(row.SeqID)
	return nil
}

func (r *LinksRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	return r.queries.LinkCodeExists(ctx, code)
}

func (r *LinksRepository) FindByCode(ctx context.Context, code string) (*links.Link, error) {
	row, err := r.queries.GetLinkByCode(ctx, code)
	if err == nil {
		return mapLinkRow(row), nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, links.ErrNotFound
	}
	return nil, err
}

// Revoke only touches rows that are not yet revoked. When nothing matched, a
// second read tells a missing code apart from one revoked earlier.
func (r *LinksRepository) Revoke(ctx context.Context, code string, at time.Time) (*links.Link, error) {
	row, err := r.queries.RevokeLink(ctx, sqlc.RevokeLinkParams{
		Code:      code,
		RevokedAt: toTimestamptz(at),
	})
	if err == nil {
		return mapLinkRow(row), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if _, findErr := r.FindByCode(ctx, code); findErr != nil {
		return nil, findErr
	}
	return nil, links.ErrAlreadyRevoked
}

func (r *LinksRepository) ListRecent(ctx context.Context, limit int) ([]links.Link, error) {
	rows, err := r.queries.ListRecentLinks(ctx, int32(limit))
	if err != nil {
		return nil, err
	}

	out := make([]links.Link, 0, len(rows))
	for _, row := range rows {
		out = append(out, *mapLinkRow(row))
	}
	return out, nil
}

func mapLinkRow(row sqlc.Link) *links.Link {
	return &links.Link{
		ID:             uuidValue(row.ID),
		SeqID:          int64(row.SeqID),
		Code:           row.Code,
		URL:            row.Url,
		CreatedAt:      row.CreatedAt.Time.UTC(),
		ExpiresAt:      nullableTimeValue(row.ExpiresAt),
		RevokedAt:      nullableTimeValue(row.RevokedAt),
		CreatedByKeyID: uuidValue(row.CreatedByKeyID),
	}
}
