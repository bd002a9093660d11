package config

import (
	"fmt"

	pkgconfig "github.com/chirpyhq/chirpy/pkg/config"
	"github.com/chirpyhq/chirpy/pkg/database"
)

// Config holds all configuration for the chirpy server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Platform    string `env:"PLATFORM" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Static site
	StaticDir string `env:"STATIC_DIR" envDefault:"./web"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"chirpy"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"chirpy_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"chirpy_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// JWT
	JWTSecret string `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`

	// LoginTTLNegotiable lets login callers request a shorter access token
	// lifetime. The one hour ceiling always applies.
	LoginTTLNegotiable bool `env:"LOGIN_TTL_NEGOTIABLE" envDefault:"true"`

	// Polka payment webhook
	PolkaKey string `env:"POLKA_KEY"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load chirpy config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}

	// In non-development environments, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == "change-this-to-a-secure-secret" {
			return nil, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(cfg.JWTSecret))
		}
		if cfg.PolkaKey == "" {
			return nil, fmt.Errorf("POLKA_KEY must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
	}

	return cfg, nil
}

// Postgres returns the database connection settings.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		User:     c.PostgresUser,
		Password: c.PostgresPass,
		DBName:   c.PostgresDB,
		SSLMode:  c.PostgresSSL,
	}
}

// IsDevelopment reports whether destructive development-only endpoints are
// enabled.
func (c *Config) IsDevelopment() bool {
	return c.Platform == "development"
}
