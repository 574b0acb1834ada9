package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AndrewN04/url-shortner/internal/events"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/logger"
	"go.uber.org/zap"
)

type Service struct {
	repo      CredentialRepository
	hasher    *Hasher
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo CredentialRepository, hasher *Hasher, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		repo:      repo,
		hasher:    hasher,
		publisher: publisher,
		now:       time.Now,
	}
}

// Authenticate checks an Authorization header value. Rejections are reported
// through AuthResult.Status; the error is reserved for storage faults.
func (s *Service) Authenticate(ctx context.Context, header string) (AuthResult, error) {
	if strings.TrimSpace(header) == "" {
		return AuthResult{Status: StatusMissing}, nil
	}

	token, ok := ExtractBearerToken(header)
	if !ok || !ValidFormat(token) {
		return AuthResult{Status: StatusMalformed}, nil
	}

	digest := s.hasher.Hash(token)
	cred, err := s.repo.FindByHash(ctx, digest)
	if errors.Is(err, ErrNotFound) {
		return AuthResult{Status: StatusUnknown}, nil
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("find api key: %w", err)
	}

	if !s.hasher.Verify(token, cred.KeyHash) {
		return AuthResult{Status: StatusUnknown}, nil
	}
	if cred.Revoked() {
		return AuthResult{Status: StatusRevoked, CredentialID: cred.ID}, nil
	}

	return AuthResult{Status: StatusOK, CredentialID: cred.ID}, nil
}

// Create issues a new key. The returned secret is the only copy.
func (s *Service) Create(ctx context.Context, note string) (*Issued, error) {
	secret, err := GenerateSecret()
	if err != nil {
		return nil, err
	}

	cred, err := s.repo.Create(ctx, s.hasher.Hash(secret), strings.TrimSpace(note), s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("create api key: %w", err)
	}

	logger.Info("API key created", zap.String("key_id", cred.ID))
	return &Issued{Credential: *cred, Secret: secret}, nil
}

func (s *Service) ListActive(ctx context.Context) ([]Credential, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Revoke(ctx context.Context, id string) (*Credential, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	cred, err := s.repo.Revoke(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}

	revokedAt := s.now().UTC()
	if cred.RevokedAt != nil {
		revokedAt = *cred.RevokedAt
	}
	ev := events.NewEnvelope(events.TypeAPIKeyRevoked, revokedAt, events.APIKeyRevoked{
		KeyID:     cred.ID,
		RevokedAt: revokedAt.Format(time.RFC3339),
	})
	if err := s.publisher.Publish(ctx, cred.ID, ev); err != nil {
		logger.Warn("failed to publish api key revocation", zap.Error(err), zap.String("key_id", cred.ID))
	}

	logger.Info("API key revoked", zap.String("key_id", cred.ID))
	return cred, nil
}
