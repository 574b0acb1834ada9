package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AndrewN04/url-shortner/internal/constants"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/logger"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/metrics"
	"github.com/AndrewN04/url-shortner/internal/processing/ratelimit"
	"github.com/AndrewN04/url-shortner/pkg/httputils"
	"go.uber.org/zap"
)

const (
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// RateChecker is satisfied by *ratelimit.Limiter.
type RateChecker interface {
	CheckAll(ctx context.Context, identifiers ...string) (ratelimit.Combined, error)
}

// RateLimitMiddleware counts the request against the client IP and, when
// BearerAuth ran first, the API key. Both counters are charged on every
// request; the request is denied when either is over its limit.
func RateLimitMiddleware(limiter RateChecker, trustProxyHeaders bool) func(http.Handler) http.Handler {
	return rateLimitMiddleware(limiter, trustProxyHeaders, time.Now)
}

func rateLimitMiddleware(limiter RateChecker, trustProxyHeaders bool, now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ids := rateLimitIdentifiers(r, trustProxyHeaders)

			combined, err := limiter.CheckAll(r.Context(), ids...)
			if err != nil {
				logger.Error("failed to check rate limit", zap.Error(err), zap.Strings("identifiers", ids))
				httputils.WriteAPIError(w, r, constants.ErrInternalError)
				return
			}

			if !combined.Allowed {
				scopes := make([]string, 0, len(combined.Denied))
				for _, d := range combined.Denied {
					scope, _, _ := strings.Cut(d.Identifier, ":")
					metrics.RateLimited.WithLabelValues(scope).Inc()
					scopes = append(scopes, scope)
				}
				logger.Info("Rate limit exceeded", zap.Strings("scopes", scopes), zap.Time("reset_at", combined.ResetAt))

				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(combined.ResetAt, now())))
				w.Header().Set(HeaderRateLimitRemaining, "0")
				w.Header().Set(HeaderRateLimitReset, combined.ResetAt.UTC().Format(time.RFC3339))
				httputils.WriteAPIError(w, r, constants.ErrRateLimited)
				return
			}

			w.Header().Set(HeaderRateLimitRemaining, strconv.FormatInt(combined.Remaining, 10))
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitIdentifiers(r *http.Request, trustProxyHeaders bool) []string {
	ids := []string{ratelimit.IPIdentifier(ClientIP(r, trustProxyHeaders))}
	if keyID, ok := CredentialIDFromContext(r.Context()); ok {
		ids = append(ids, ratelimit.KeyIdentifier(keyID))
	}
	return ids
}

// retryAfterSeconds rounds up and never returns less than one second.
func retryAfterSeconds(resetAt, now time.Time) int {
	secs := int(math.Ceil(resetAt.Sub(now).Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
