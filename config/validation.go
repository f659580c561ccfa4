package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, message string) {
		errs = append(errs, ValidationError{Field: field, Message: message}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "must be set")
	}
	if cfg.JWTTTL <= 0 {
		add("JWT_TTL", "must be positive")
	}

	switch cfg.Storage.Backend {
	case StorageS3, StorageCloudinary:
	default:
		add("STORAGE_BACKEND", fmt.Sprintf("unknown backend %q", cfg.Storage.Backend))
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		add("LOG_FORMAT", "must be json or text")
	}

	if cfg.Environment.IsProduction() {
		if cfg.DatabaseURL == "" {
			add("DATABASE_URL", "is required in production")
		}
		if cfg.JWTSecret == "" || cfg.JWTSecret == DefaultJWTSecret {
			add("JWT_SECRET", "must be changed from the default in production")
		}
		switch cfg.Storage.Backend {
		case StorageS3:
			if cfg.Storage.S3.AccessKeyID == "" || cfg.Storage.S3.SecretAccessKey == "" {
				add("S3_ACCESS_KEY_ID", "S3 credentials are required in production")
			}
		case StorageCloudinary:
			c := cfg.Storage.Cloudinary
			if c.URL == "" && (c.CloudName == "" || c.APIKey == "" || c.APISecret == "") {
				add("CLOUDINARY_URL", "cloudinary credentials are required in production")
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
