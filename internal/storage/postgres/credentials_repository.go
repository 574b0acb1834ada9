package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/AndrewN04/url-shortner/internal/infrastructure/db"
	"github.com/AndrewN04/url-shortner/internal/processing/credentials"
	"github.com/AndrewN04/url-shortner/internal/storage/postgres/sqlc"
	"github.com/jackc/pgx/v5"
)

type CredentialsRepository struct {
	queries *sqlc.Queries
}

func NewCredentialsRepository(p *db.Postgres) (*CredentialsRepository, error) {
	if p == nil || p.Pool == nil {
		return nil, errPoolNil
	}
	return &CredentialsRepository{queries: sqlc.New(p.Pool)}, nil
}

func (r *CredentialsRepository) Create(ctx context.Context, keyHash, note string, at time.Time) (*credentials.Credential, error) {
	row, err := r.queries.CreateAPIKey(ctx, sqlc.CreateAPIKeyParams{
		KeyHash:   keyHash,
		Note:      toNullableText(note),
		CreatedAt: toTimestamptz(at),
	})
	if err != nil {
		return nil, err
	}
	return mapAPIKeyRow(row), nil
}

func (r *CredentialsRepository) FindByHash(ctx context.Context, keyHash string) (*credentials.Credential, error) {
	row, err := r.queries.GetAPIKeyByHash(ctx, keyHash)
	if err == nil {
		return mapAPIKeyRow(row), nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, credentials.ErrNotFound
	}
	return nil, err
}

func (r *CredentialsRepository) ListActive(ctx context.Context) ([]credentials.Credential, error) {
	rows, err := r.queries.ListActiveAPIKeys(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]credentials.Credential, 0, len(rows))
	for _, row := range rows {
		out = append(out, *mapAPIKeyRow(row))
	}
	return out, nil
}

func (r *CredentialsRepository) Revoke(ctx context.Context, id string, at time.Time) (*credentials.Credential, error) {
	keyID, err := toUUID(id)
	if err != nil {
		return nil, credentials.ErrNotFound
	}

	row, err := r.queries.RevokeAPIKey(ctx, sqlc.RevokeAPIKeyParams{
		KeyID:     keyID,
		RevokedAt: toTimestamptz(at),
	})
	if err == nil {
		return mapAPIKeyRow(row), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	_, err = r.queries.GetAPIKeyByID(ctx, keyID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, credentials.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return nil, credentials.ErrAlreadyRevoked
}

func mapAPIKeyRow(row sqlc.ApiKey) *credentials.Credential {
	return &credentials.Credential{
		ID:        uuidValue(row.KeyID),
		KeyHash:   row.KeyHash,
		CreatedAt: row.CreatedAt.Time.UTC(),
		RevokedAt: nullableTimeValue(row.RevokedAt),
		Note:      nullableTextValue(row.Note),
	}
}
