package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AndrewN04/url-shortner/internal/config"
	"github.com/AndrewN04/url-shortner/internal/events"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/db"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/logger"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/messaging"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/telemetry"
	"github.com/AndrewN04/url-shortner/internal/processing/credentials"
	"github.com/AndrewN04/url-shortner/internal/processing/links"
	"github.com/AndrewN04/url-shortner/internal/processing/ratelimit"
	"github.com/AndrewN04/url-shortner/internal/processing/urlcheck"
	"github.com/AndrewN04/url-shortner/internal/storage/postgres"
	httpTransport "github.com/AndrewN04/url-shortner/internal/transport/http"
	"go.uber.org/zap"
)

const (
	pruneInterval  = 10 * time.Minute
	pruneRetention = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.App.Env, cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
	)

	var shutdownTracer func(context.Context) error
	if cfg.OTel.Enabled {
		var err error
		shutdownTracer, err = telemetry.InitTracer(cfg.OTel.Endpoint, cfg.App.Name, cfg.App.Version, cfg.App.Env)
		if err != nil {
			logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else {
			logger.Info("OpenTelemetry tracer initialized", zap.String("endpoint", cfg.OTel.Endpoint))
		}
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	pg, err := db.ConnectPostgres(connectCtx, cfg.Postgres)
	cancelConnect()
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pg.Close()

	linkRepo, err := postgres.NewLinksRepository(pg)
	if err != nil {
		logger.Fatal("Failed to initialize links repository", zap.Error(err))
	}
	keyRepo, err := postgres.NewCredentialsRepository(pg)
	if err != nil {
		logger.Fatal("Failed to initialize credentials repository", zap.Error(err))
	}
	rateStore, err := postgres.NewRateLimitStore(pg)
	if err != nil {
		logger.Fatal("Failed to initialize rate limit store", zap.Error(err))
	}

	publisher, closePublisher := newPublisher(cfg.Events)
	defer closePublisher()

	hasher, err := credentials.NewHasher(cfg.Security.APIKeyPepper)
	if err != nil {
		logger.Fatal("Failed to initialize key hasher", zap.Error(err))
	}
	keySvc := credentials.NewService(keyRepo, hasher, publisher)

	linkSvc := links.NewService(
		linkRepo,
		links.NewCryptoGenerator(),
		urlcheck.NewValidator(net.DefaultResolver, cfg.Shortener.MaxURLLength),
		publisher,
		links.Options{
			CodeLength:  cfg.Shortener.CodeLength,
			MaxAttempts: cfg.Shortener.MaxCodeRetries,
			MinTTL:      cfg.Shortener.MinTTL,
			MaxTTL:      cfg.Shortener.MaxTTL,
		},
	)

	limiter := ratelimit.NewLimiter(rateStore, cfg.Security.RateLimit.Window, cfg.Security.RateLimit.MaxRequests)

	router := httpTransport.NewRouter(cfg, httpTransport.Dependencies{
		Links:   linkSvc,
		Auth:    keySvc,
		Limiter: limiter,
		DB:      pg,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go pruneRateLimits(ctx, rateStore)

	go func() {
		<-ctx.Done()

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
		}

		if shutdownTracer != nil {
			_ = shutdownTracer(shutdownCtx)
		}
	}()

	logger.Info("Server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("env", cfg.App.Env),
		zap.String("address", fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)),
		zap.Bool("events_enabled", cfg.Events.Enabled),
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func newPublisher(cfg config.EventsConfig) (events.Publisher, func()) {
	pub, closePub, err := messaging.NewPublisher(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize Kafka publisher", zap.Error(err))
	}
	if cfg.Enabled {
		logger.Info("Publishing audit events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	return pub, func() {
		if err := closePub(); err != nil {
			logger.Warn("Failed to close Kafka publisher", zap.Error(err))
		}
	}
}

// pruneRateLimits deletes counters whose window ended long ago. Increment
// resets stale rows on its own, so this only keeps the table small.
func pruneRateLimits(ctx context.Context, store *postgres.RateLimitStore) {
	log := logger.Named("ratelimit_janitor", zap.Duration("retention", pruneRetention))
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruneCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			n, err := store.Prune(pruneCtx, time.Now().Add(-pruneRetention))
			cancel()
			if err != nil {
				log.Warn("Failed to prune rate limit windows", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("Pruned rate limit windows", zap.Int64("rows", n))
			}
		}
	}
}
