package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const DefaultJWTSecret = "your-secret-key"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost      string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort      string        `env:"SERVER_PORT" envDefault:"8000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database configuration. An empty URL selects the local sqlite file.
	DatabaseURL    string        `env:"DATABASE_URL"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"recetario.db"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	DBConnMaxLife  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	MigrationsDir  string        `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	MigrateOnStart bool          `env:"MIGRATE_ON_START" envDefault:"true"`

	// Redis configuration. Redis is optional; without it the countries cache
	// and rate limiting are disabled.
	RedisURL      string `env:"REDIS_URL"`
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// JWT configuration
	JWTSecret string        `env:"JWT_SECRET" envDefault:"your-secret-key"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Storage   StorageConfig
	RateLimit RateLimitConfig
}

// RateLimitConfig sets the fixed windows applied to write-heavy routes.
type RateLimitConfig struct {
	Enabled       bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RecipeCreates int           `env:"RATE_LIMIT_RECIPE_CREATES" envDefault:"30"`
	Exports       int           `env:"RATE_LIMIT_EXPORTS" envDefault:"10"`
	Window        time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
}

// LoadConfig creates a new Config instance with values from the environment,
// an optional .env file and Docker secrets.
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{Environment: GetEnvironment()}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	applySecrets(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applySecrets overlays Docker secrets on top of the environment.
func applySecrets(cfg *Config) {
	overlay := map[string]*string{
		"database_url":          &cfg.DatabaseURL,
		"jwt_secret":            &cfg.JWTSecret,
		"redis_password":        &cfg.RedisPassword,
		"s3_secret_access_key":  &cfg.Storage.S3.SecretAccessKey,
		"cloudinary_api_secret": &cfg.Storage.Cloudinary.APISecret,
	}
	for name, field := range overlay {
		if value := readSecret(name); value != "" {
			*field = value
		}
	}
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// UsesSQLite reports whether the local sqlite database is selected.
func (c *Config) UsesSQLite() bool {
	return c.DatabaseURL == "" || strings.HasPrefix(c.DatabaseURL, "sqlite://")
}

// SQLiteFile returns the sqlite path from DATABASE_URL or SQLITE_PATH.
func (c *Config) SQLiteFile() string {
	if strings.HasPrefix(c.DatabaseURL, "sqlite://") {
		return strings.TrimPrefix(c.DatabaseURL, "sqlite://")
	}
	return c.SQLitePath
}

// RedisConfigured reports whether a redis server was configured.
func (c *Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
