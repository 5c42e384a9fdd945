// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultSessionTTL  = 24 * time.Hour
	defaultRecoveryTTL = 15 * time.Minute
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// GRPCAddr is the address the gRPC server listens on (e.g. :8080).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// DatabaseURL is the Postgres DSN. When empty the server runs on in-memory stores (not allowed in production).
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// JWTSecret is the HS256 signing secret, inline or as file:///path. Required by the server.
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTIssuer   string `mapstructure:"JWT_ISSUER"`
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// SessionTTLRaw is the session token lifetime (e.g. "24h").
	SessionTTLRaw string `mapstructure:"SESSION_TTL"`
	// RecoveryTTLRaw is the recovery token lifetime (e.g. "15m").
	RecoveryTTLRaw string `mapstructure:"RECOVERY_TTL"`

	// BcryptCost is the bcrypt cost factor (4-31); default 10.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// HashConcurrency bounds concurrent bcrypt operations; 0 means runtime.NumCPU().
	HashConcurrency int `mapstructure:"HASH_CONCURRENCY"`

	// Recovery mail API. Password recovery is disabled when MailAPIURL is empty and dev mode is off.
	MailAPIURL string `mapstructure:"MAIL_API_URL"`
	MailAPIKey string `mapstructure:"MAIL_API_KEY"`
	MailFrom   string `mapstructure:"MAIL_FROM"`
	// ResetURL is the client page that receives ?token=<recovery token>.
	ResetURL string `mapstructure:"RESET_URL"`
	// RecoveryReturnToClient when true enables dev recovery mode: no mail is sent and the token is readable
	// through DevService. Must not be true when Env is production.
	RecoveryReturnToClient bool `mapstructure:"RECOVERY_RETURN_TO_CLIENT"`

	// Env is the application environment (e.g. "development", "production").
	Env       string `mapstructure:"APP_ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// OTLPEndpoint enables OpenTelemetry export when set.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	// KafkaBrokers is a comma-separated list of broker addresses. Account events are published when set.
	KafkaBrokers       string `mapstructure:"KAFKA_BROKERS"`
	AccountEventsTopic string `mapstructure:"ACCOUNT_EVENTS_TOPIC"`
	// KafkaGroupID is the consumer group of the events worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
	// LokiURL is where the events worker pushes account events (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`

	// Suggestion generator API. Suggestion RPCs answer Unimplemented when SuggestionAPIURL is empty.
	SuggestionAPIURL string `mapstructure:"SUGGESTION_API_URL"`
	SuggestionAPIKey string `mapstructure:"SUGGESTION_API_KEY"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	// Every key needs a default so Unmarshal sees it.
	v.SetDefault("GRPC_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "account-auth")
	v.SetDefault("JWT_AUDIENCE", "account-api")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("RECOVERY_TTL", "15m")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("HASH_CONCURRENCY", 0)
	v.SetDefault("MAIL_API_URL", "")
	v.SetDefault("MAIL_API_KEY", "")
	v.SetDefault("MAIL_FROM", "no-reply@localhost")
	v.SetDefault("RESET_URL", "http://localhost:3000/reset-password")
	v.SetDefault("RECOVERY_RETURN_TO_CLIENT", false)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("ACCOUNT_EVENTS_TOPIC", "account-events")
	v.SetDefault("KAFKA_GROUP_ID", "account-events-worker")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("SUGGESTION_API_URL", "")
	v.SetDefault("SUGGESTION_API_KEY", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.GRPCAddr == "" {
		return nil, errors.New("config: GRPC_ADDR must be set")
	}
	if cfg.RecoveryReturnToClient && cfg.IsProduction() {
		return nil, errors.New("config: RECOVERY_RETURN_TO_CLIENT must not be true when APP_ENV=production")
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 10
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if cfg.HashConcurrency < 0 {
		return nil, errors.New("config: HASH_CONCURRENCY must not be negative")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	return &cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// SessionTTL parses SessionTTLRaw. Returns 24h if unset or invalid.
func (c *Config) SessionTTL() time.Duration {
	return parseTTL(c.SessionTTLRaw, defaultSessionTTL)
}

// RecoveryTTL parses RecoveryTTLRaw. Returns 15m if unset or invalid.
func (c *Config) RecoveryTTL() time.Duration {
	return parseTTL(c.RecoveryTTLRaw, defaultRecoveryTTL)
}

// HashWorkers returns HashConcurrency, or the CPU count when unset.
func (c *Config) HashWorkers() int {
	if c.HashConcurrency > 0 {
		return c.HashConcurrency
	}
	return runtime.NumCPU()
}

// KafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Event publishing is enabled when the list is non-empty.
func (c *Config) KafkaBrokersList() []string {
	if c == nil || c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseTTL(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
