package http

import (
	"net/http"
	"strings"

	"github.com/AndrewN04/url-shortner/internal/config"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/telemetry"
	"github.com/AndrewN04/url-shortner/internal/transport/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var spanNames = map[string]string{
	"GET /health":          "health",
	"GET /metrics":         "metrics",
	"POST /api/v1/shorten": "links.shorten",
	"GET /{code}":          "links.redirect",
}

// Dependencies are the services the routes are served from.
type Dependencies struct {
	Links   LinkService
	Auth    middleware.Authenticator
	Limiter middleware.RateChecker
	DB      Pinger
}

type RouterOptions struct {
	EnableCORS    bool
	EnableLogging bool
	EnableMetrics bool
}

func DefaultRouterOptions() RouterOptions {
	return RouterOptions{
		EnableCORS:    true,
		EnableLogging: true,
		EnableMetrics: true,
	}
}

func NewRouter(cfg *config.Config, deps Dependencies) http.Handler {
	return NewRouterWithOptions(cfg, deps, DefaultRouterOptions())
}

func NewRouterWithOptions(cfg *config.Config, deps Dependencies, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	healthHandler := NewHealthHandler(deps.DB)
	linksHandler := NewLinksHandler(cfg, deps.Links)
	timeout := middleware.Timeout(cfg.Server.RequestTimeout)

	mux.Handle("GET /health", timeout(http.HandlerFunc(healthHandler.Health)))
	mux.Handle("GET /metrics", healthHandler.Metrics())

	// Authentication runs before rate limiting so the key scope can be
	// charged; URL screening happens in the handler, after both.
	mux.Handle("POST /api/v1/shorten", middleware.Chain(
		http.HandlerFunc(linksHandler.Shorten),
		timeout,
		middleware.BearerAuth(deps.Auth),
		middleware.RateLimitMiddleware(deps.Limiter, cfg.Security.TrustProxyHeaders),
	))

	mux.Handle("GET /{code}", timeout(http.HandlerFunc(linksHandler.Redirect)))

	var innerHandler http.Handler = mux
	if opts.EnableCORS {
		innerHandler = middleware.CORSMiddleware(cfg.Security.AllowedOrigins)(innerHandler)
	}
	if opts.EnableLogging {
		innerHandler = middleware.LoggingMiddleware(innerHandler)
	}
	if opts.EnableMetrics {
		innerHandler = middleware.MetricsMiddleware(innerHandler)
	}

	otelOptions := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			key := r.Method + " " + r.Pattern
			if name, ok := spanNames[key]; ok {
				return name
			}
			if r.Pattern != "" {
				return r.Pattern
			}
			path := strings.TrimSpace(r.URL.Path)
			if path == "" {
				path = "/"
			}
			return path
		}),
	}

	if telemetry.TracerProvider != nil {
		otelOptions = append(otelOptions, otelhttp.WithTracerProvider(telemetry.TracerProvider))
	}

	return otelhttp.NewHandler(innerHandler, cfg.App.Name, otelOptions...)
}
