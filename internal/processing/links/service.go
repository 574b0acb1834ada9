package links

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AndrewN04/url-shortner/internal/events"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/logger"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/metrics"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/telemetry"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	defaultMaxAttempts = 5
	defaultListLimit   = 50
	maxListLimit       = 500
	maxCodeLength      = 64
)

type Options struct {
	CodeLength  int
	MaxAttempts int
	MinTTL      time.Duration
	MaxTTL      time.Duration
}

type Service struct {
	repo      LinkRepository
	codes     CodeGenerator
	urls      URLValidator
	publisher events.Publisher
	opts      Options
	now       func() time.Time
}

func NewService(repo LinkRepository, gen CodeGenerator, urls URLValidator, publisher events.Publisher, opts Options) *Service {
	if opts.CodeLength <= 0 {
		opts.CodeLength = DefaultCodeLength
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.MinTTL <= 0 {
		opts.MinTTL = time.Minute
	}
	if opts.MaxTTL < opts.MinTTL {
		opts.MaxTTL = 14 * 24 * time.Hour
	}
	if publisher == nil {
		publisher = events.Nop{}
	}

	return &Service{
		repo:      repo,
		codes:     gen,
		urls:      urls,
		publisher: publisher,
		opts:      opts,
		now:       time.Now,
	}
}

// Shorten screens the destination, assigns a fresh code and persists the
// link. Policy failures come back as *RejectionError.
func (s *Service) Shorten(ctx context.Context, in ShortenInput) (*Link, error) {
	ttl, err := s.resolveTTL(in.TTL)
	if err != nil {
		return nil, err
	}

	verdict := s.urls.Validate(ctx, in.URL)
	if !verdict.OK {
		metrics.URLRejected.WithLabelValues(verdict.Reason.String()).Inc()
		return nil, &RejectionError{Kind: RejectInvalidURL, Reason: verdict.Reason.String(), Message: verdict.Message}
	}

	createdAt := s.now().UTC()
	expiresAt := createdAt.Add(ttl)
	link := &Link{
		URL:            verdict.Normalized,
		CreatedAt:      createdAt,
		ExpiresAt:      &expiresAt,
		CreatedByKeyID: in.CredentialID,
	}

	if err := s.assignCode(ctx, link); err != nil {
		return nil, err
	}

	metrics.LinksCreated.Inc()
	s.publish(ctx, link.Code, events.NewEnvelope(events.TypeLinkCreated, createdAt, events.LinkCreated{
		Code:           link.Code,
		URL:            link.URL,
		CreatedByKeyID: link.CreatedByKeyID,
		ExpiresAt:      expiresAt.Format(time.RFC3339),
	}))

	return link, nil
}

func (s *Service) resolveTTL(ttl *int64) (time.Duration, error) {
	if ttl == nil {
		return s.opts.MaxTTL, nil
	}

	minSecs := int64(s.opts.MinTTL / time.Second)
	maxSecs := int64(s.opts.MaxTTL / time.Second)

	if err := validation.Var(*ttl, fmt.Sprintf("gte=%d", minSecs)); err != nil {
		return 0, &RejectionError{
			Kind:    RejectInvalidTTL,
			Reason:  "ttl_too_short",
			Message: fmt.Sprintf("TTL must be at least %d seconds", minSecs),
		}
	}
	if err := validation.Var(*ttl, fmt.Sprintf("lte=%d", maxSecs)); err != nil {
		return 0, &RejectionError{
			Kind:    RejectInvalidTTL,
			Reason:  "ttl_too_long",
			Message: fmt.Sprintf("TTL must not exceed %d seconds", maxSecs),
		}
	}

	return time.Duration(*ttl) * time.Second, nil
}

// assignCode draws candidates until one is free. A candidate that passes
// the existence check but loses the insert race counts against the same
// budget.
func (s *Service) assignCode(ctx context.Context, link *Link) error {
	ctx, span := telemetry.Tracer().Start(ctx, "links.assign_code")
	defer span.End()

	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		code, err := s.codes.Generate(s.opts.CodeLength)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("generate code: %w", err)
		}

		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("check code: %w", err)
		}
		if exists {
			metrics.CodeCollisions.Inc()
			continue
		}

		link.Code = code
		err = s.repo.Insert(ctx, link)
		if errors.Is(err, ErrCodeTaken) {
			metrics.CodeCollisions.Inc()
			continue
		}
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("insert link: %w", err)
		}

		span.SetAttributes(attribute.Int("links.attempts", attempt))
		return nil
	}

	link.Code = ""
	span.SetStatus(codes.Error, "code space exhausted")
	logger.Error("Exhausted code generation attempts",
		zap.Int("attempts", s.opts.MaxAttempts),
		zap.Int("code_length", s.opts.CodeLength),
	)
	return ErrCodeSpaceExhausted
}

// Resolve maps a code to its destination. Malformed codes are answered as
// NotFound without touching storage.
func (s *Service) Resolve(ctx context.Context, code string) (Resolution, error) {
	if !validCode(code) {
		metrics.Redirects.WithLabelValues(NotFound.String()).Inc()
		return Resolution{Kind: NotFound}, nil
	}

	link, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		metrics.Redirects.WithLabelValues(NotFound.String()).Inc()
		return Resolution{Kind: NotFound}, nil
	}
	if err != nil {
		return Resolution{}, fmt.Errorf("find link: %w", err)
	}

	res := Resolution{Kind: Found, URL: link.URL}
	if link.StatusAt(s.now().UTC()) != StatusActive {
		res = Resolution{Kind: Gone}
	}
	metrics.Redirects.WithLabelValues(res.Kind.String()).Inc()
	return res, nil
}

func (s *Service) RevokeLink(ctx context.Context, code string) (*Link, error) {
	code = strings.TrimSpace(code)
	if !validCode(code) {
		return nil, ErrNotFound
	}

	link, err := s.repo.Revoke(ctx, code, s.now().UTC())
	if err != nil {
		return nil, err
	}

	revokedAt := s.now().UTC()
	if link.RevokedAt != nil {
		revokedAt = *link.RevokedAt
	}
	s.publish(ctx, link.Code, events.NewEnvelope(events.TypeLinkRevoked, revokedAt, events.LinkRevoked{
		Code:      link.Code,
		RevokedAt: revokedAt.Format(time.RFC3339),
	}))

	logger.Info("Link revoked", zap.String("code", link.Code))
	return link, nil
}

// ListLinks returns the most recent links, newest first.
func (s *Service) ListLinks(ctx context.Context, limit int) ([]Link, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

// Now exposes the service clock so listings label statuses consistently.
func (s *Service) Now() time.Time { return s.now().UTC() }

func (s *Service) publish(ctx context.Context, key string, ev events.Envelope) {
	if err := s.publisher.Publish(ctx, key, ev); err != nil {
		logger.Warn("failed to publish event",
			zap.Error(err),
			zap.String("event_type", ev.Type),
			zap.String("key", key),
		)
	}
}

func validCode(code string) bool {
	if code == "" || len(code) > maxCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
