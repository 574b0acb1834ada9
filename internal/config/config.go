package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

// Fixed limits that are not worth exposing as settings.
const (
	MinTTL            = 60 * time.Second
	DefaultMaxTTL     = 14 * 24 * time.Hour
	CodeLength        = 12
	MaxCodeRetries    = 5
	RateLimitWindow   = time.Minute
	RateLimitRequests = 10
	MaxURLLength      = 2048
	MaxJSONBodyBytes  = 10 << 10
)

var ErrMissingRequired = errors.New("missing required environment variable")

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Postgres  PostgresConfig
	Shortener ShortenerConfig
	Security  SecurityConfig
	OTel      OTelConfig
	Events    EventsConfig
}

type AppConfig struct {
	Name     string
	Version  string
	Env      string
	LogLevel string
}

type ServerConfig struct {
	Port           string
	Host           string
	RequestTimeout time.Duration
}

type PostgresConfig struct {
	URL string
	// Pool bounds. Zero leaves the pgx default.
	MaxConns int
	MinConns int
}

type ShortenerConfig struct {
	BaseURL        string
	CodeLength     int
	MaxCodeRetries int
	MinTTL         time.Duration
	MaxTTL         time.Duration
	MaxURLLength   int
}

type SecurityConfig struct {
	APIKeyPepper      string
	TrustProxyHeaders bool
	AllowedOrigins    []string
	RateLimit         RateLimitConfig
}

type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

type OTelConfig struct {
	Enabled  bool
	Endpoint string
}

type EventsConfig struct {
	Enabled      bool
	KafkaBrokers []string
	KafkaTopic   string
}

// IsDevelopment reports whether the service runs outside production.
func (c AppConfig) IsDevelopment() bool {
	return c.Env != "production"
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     GetEnv("APP_NAME", "url-shortner"),
			Version:  GetEnv("APP_VERSION", "0.1.0"),
			Env:      GetEnv("APP_ENV", "development"),
			LogLevel: GetEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:           GetEnv("APP_PORT", "8080"),
			Host:           GetEnv("APP_HOST", "localhost"),
			RequestTimeout: GetEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		Postgres: loadPostgres(),
		Shortener: ShortenerConfig{
			BaseURL:        GetEnv("SHORTENER_BASE_URL", ""),
			CodeLength:     CodeLength,
			MaxCodeRetries: MaxCodeRetries,
			MinTTL:         MinTTL,
			MaxTTL:         time.Duration(GetEnvInt("MAX_TTL_SECONDS", int(DefaultMaxTTL/time.Second))) * time.Second,
			MaxURLLength:   MaxURLLength,
		},
		Security: SecurityConfig{
			APIKeyPepper:      GetEnv("API_KEY_PEPPER", ""),
			TrustProxyHeaders: GetEnvBool("TRUST_PROXY_HEADERS", false),
			AllowedOrigins:    SplitCSV(GetEnv("CORS_ALLOWED_ORIGINS", "")),
			RateLimit: RateLimitConfig{
				Window:      RateLimitWindow,
				MaxRequests: RateLimitRequests,
			},
		},
		OTel: OTelConfig{
			Enabled:  GetEnvBool("OTEL_ENABLED", false),
			Endpoint: GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		},
		Events: LoadEvents(),
	}

	if cfg.Postgres.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingRequired)
	}
	if cfg.Security.APIKeyPepper == "" {
		return nil, fmt.Errorf("%w: API_KEY_PEPPER", ErrMissingRequired)
	}
	if cfg.Shortener.MaxTTL < cfg.Shortener.MinTTL {
		return nil, fmt.Errorf("MAX_TTL_SECONDS must be at least %d (got %d)",
			int(cfg.Shortener.MinTTL/time.Second), int(cfg.Shortener.MaxTTL/time.Second))
	}
	if cfg.Server.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive (got %s)", cfg.Server.RequestTimeout)
	}

	return cfg, nil
}

// LoadDatabase is used by the admin tooling, which only needs the connection
// string and, for key creation, the pepper.
func LoadDatabase() (PostgresConfig, string, error) {
	if err := godotenv.Load(".env.local", ".env"); err != nil {
		_ = godotenv.Load()
	}
	pg := loadPostgres()
	if pg.URL == "" {
		return PostgresConfig{}, "", fmt.Errorf("%w: DATABASE_URL", ErrMissingRequired)
	}
	return pg, GetEnv("API_KEY_PEPPER", ""), nil
}

// LoadEvents reads EVENTS_ENABLED and the Kafka settings. The admin tooling
// calls it after LoadDatabase so revocations publish like the API does.
func LoadEvents() EventsConfig {
	return EventsConfig{
		Enabled:      GetEnvBool("EVENTS_ENABLED", false),
		KafkaBrokers: SplitCSV(GetEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   GetEnv("KAFKA_TOPIC", "shortener.audit"),
	}
}

func loadPostgres() PostgresConfig {
	return PostgresConfig{
		URL:      GetEnv("DATABASE_URL", ""),
		MaxConns: GetEnvInt("DB_MAX_CONNS", 0),
		MinConns: GetEnvInt("DB_MIN_CONNS", 0),
	}
}
