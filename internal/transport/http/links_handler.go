package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/AndrewN04/url-shortner/internal/config"
	"github.com/AndrewN04/url-shortner/internal/constants"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/logger"
	appvalidation "github.com/AndrewN04/url-shortner/internal/infrastructure/validation"
	"github.com/AndrewN04/url-shortner/internal/processing/links"
	"github.com/AndrewN04/url-shortner/internal/transport/http/middleware"
	"github.com/AndrewN04/url-shortner/pkg/httputils"
	"go.uber.org/zap"
)

const (
	cacheControlRedirect = "private, max-age=0, no-cache"
	robotsNoIndex        = "noindex"
)

// LinkService is satisfied by *links.Service.
type LinkService interface {
	Shorten(ctx context.Context, in links.ShortenInput) (*links.Link, error)
	Resolve(ctx context.Context, code string) (links.Resolution, error)
}

type LinksHandler struct {
	cfg *config.Config
	svc LinkService
}

func NewLinksHandler(cfg *config.Config, svc LinkService) *LinksHandler {
	return &LinksHandler{cfg: cfg, svc: svc}
}

// shortenRequest keeps both fields untyped so a wrong JSON type can be
// reported per field instead of as a generic decode failure.
type shortenRequest struct {
	URL any `json:"url"`
	TTL any `json:"ttl"`
}

type shortenBody struct {
	URL string `json:"url" validate:"required,notblank"`
}

type shortenResponse struct {
	ShortURL  string `json:"shortUrl"`
	Code      string `json:"code"`
	ExpiresAt string `json:"expiresAt"`
}

func (h *LinksHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxJSONBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var req shortenRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputils.WriteAPIError(w, r, constants.ErrBodyTooLarge)
			return
		}
		httputils.WriteAPIError(w, r, constants.ErrInvalidJSON)
		return
	}

	rawURL, _ := req.URL.(string)
	if err := appvalidation.Validate(shortenBody{URL: rawURL}); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrMissingURL)
		return
	}

	ttl, ok := parseTTL(req.TTL)
	if !ok {
		httputils.WriteAPIError(w, r, constants.ErrInvalidTTL)
		return
	}

	keyID, _ := middleware.CredentialIDFromContext(r.Context())

	link, err := h.svc.Shorten(r.Context(), links.ShortenInput{
		URL:          rawURL,
		TTL:          ttl,
		CredentialID: keyID,
	})
	if err != nil {
		h.writeShortenError(w, r, err)
		return
	}

	var expiresAt string
	if link.ExpiresAt != nil {
		expiresAt = link.ExpiresAt.UTC().Format(time.RFC3339Nano)
	}

	httputils.WriteAPISuccess(w, r, http.StatusCreated, shortenResponse{
		ShortURL:  h.shortURL(r, link.Code),
		Code:      link.Code,
		ExpiresAt: expiresAt,
	})
}

func (h *LinksHandler) writeShortenError(w http.ResponseWriter, r *http.Request, err error) {
	var rejection *links.RejectionError
	switch {
	case errors.As(err, &rejection):
		apiErr := constants.ErrInvalidURL
		if rejection.Kind == links.RejectInvalidTTL {
			apiErr = constants.ErrInvalidTTL
		}
		httputils.WriteAPIError(w, r, apiErr.WithMessage(rejection.Message))
	case errors.Is(err, links.ErrCodeSpaceExhausted):
		httputils.WriteAPIError(w, r, constants.ErrCodeExhausted)
	default:
		logger.Error("failed to shorten url", zap.Error(err))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
	}
}

// parseTTL accepts an absent or null ttl, or a JSON number with no
// fractional part. Anything else is not an integer.
func parseTTL(v any) (*int64, bool) {
	if v == nil {
		return nil, true
	}
	n, ok := v.(json.Number)
	if !ok {
		return nil, false
	}
	if i, err := n.Int64(); err == nil {
		return &i, true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) {
		return nil, false
	}
	// Integral values outside int64 saturate so the range check reports them.
	// float64(math.MaxInt64) rounds up to 2^63, hence >=.
	var i int64
	switch {
	case f >= math.MaxInt64:
		i = math.MaxInt64
	case f <= math.MinInt64:
		i = math.MinInt64
	default:
		i = int64(f)
	}
	return &i, true
}

func (h *LinksHandler) shortURL(r *http.Request, code string) string {
	if base := strings.TrimRight(h.cfg.Shortener.BaseURL, "/"); base != "" {
		return base + "/" + code
	}

	host := r.Host
	if host == "" {
		host = h.cfg.Server.Host
	}
	scheme := "https"
	if h.cfg.App.IsDevelopment() {
		scheme = "http"
	}
	return scheme + "://" + host + "/" + code
}

func (h *LinksHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	res, err := h.svc.Resolve(r.Context(), code)
	if err != nil {
		logger.Error("failed to resolve code", zap.Error(err), zap.String("code", code))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
		return
	}

	switch res.Kind {
	case links.Found:
		w.Header().Set("Cache-Control", cacheControlRedirect)
		w.Header().Set("X-Robots-Tag", robotsNoIndex)
		w.Header().Set("Location", res.URL)
		w.WriteHeader(http.StatusFound)
	case links.Gone:
		httputils.WriteAPIError(w, r, constants.ErrLinkGone)
	default:
		httputils.WriteAPIError(w, r, constants.ErrNotFound)
	}
}
