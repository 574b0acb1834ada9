package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware lets browser clients call the API with a bearer token. An
// empty allowedOrigins list allows any origin; credentials (cookies) are never
// allowed since auth travels in the Authorization header.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
			http.MethodHead,
		},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"Accept",
			"Origin",
			"X-Requested-With",
			"X-Correlation-Id",
			// OpenTelemetry headers
			"traceparent",
			"tracestate",
			"baggage",
		},
		ExposedHeaders: []string{
			"Retry-After",
			HeaderRateLimitRemaining,
			HeaderRateLimitReset,
			"X-Correlation-Id",
		},
		AllowCredentials: false,
	}
	if len(allowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	c := cors.New(opts)
	return c.Handler
}
