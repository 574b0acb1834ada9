package middleware

import (
	"context"
	"net/http"

	"github.com/AndrewN04/url-shortner/internal/constants"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/logger"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/metrics"
	"github.com/AndrewN04/url-shortner/internal/processing/credentials"
	"github.com/AndrewN04/url-shortner/pkg/httputils"
	"go.uber.org/zap"
)

const wwwAuthenticate = `Bearer realm="api"`

type credentialIDKey struct{}

// Authenticator is satisfied by *credentials.Service.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (credentials.AuthResult, error)
}

// WithCredentialID stores the authenticated key ID on ctx.
func WithCredentialID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, credentialIDKey{}, id)
}

// CredentialIDFromContext returns the key ID set by BearerAuth.
func CredentialIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(credentialIDKey{}).(string)
	return id, ok && id != ""
}

// BearerAuth rejects requests without a valid, unrevoked API key. Unknown and
// revoked keys get the same response; the difference is only logged.
func BearerAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				logger.Error("failed to authenticate request", zap.Error(err))
				httputils.WriteAPIError(w, r, constants.ErrInternalError)
				return
			}

			if !res.OK() {
				metrics.AuthFailures.WithLabelValues(res.Status.String()).Inc()
				fields := []zap.Field{
					zap.String("reason", res.Status.String()),
					zap.String("client_ip", r.RemoteAddr),
				}
				if res.CredentialID != "" {
					fields = append(fields, zap.String("key_id", res.CredentialID))
				}
				logger.Info("Authentication rejected", fields...)

				w.Header().Set("WWW-Authenticate", wwwAuthenticate)
				httputils.WriteAPIError(w, r, authError(res.Status))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCredentialID(r.Context(), res.CredentialID)))
		})
	}
}

func authError(status credentials.Status) constants.APIError {
	switch status {
	case credentials.StatusMissing:
		return constants.ErrMissingAuthorization
	case credentials.StatusMalformed:
		return constants.ErrMalformedAPIKey
	default:
		return constants.ErrInvalidAPIKey
	}
}
