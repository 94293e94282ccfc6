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

// ValidateConfig checks that the loaded configuration is internally
// consistent. Postgres and redis are both optional; when one is
// configured its companion settings must be present.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server port is required")
	}
	if cfg.DataDir == "" {
		errors = append(errors, "data directory is required")
	}

	if cfg.DBHost != "" {
		if cfg.DBUser == "" {
			errors = append(errors, "DB_USER is required when DB_HOST is set")
		}
		if cfg.DBName == "" {
			errors = append(errors, "DB_NAME is required when DB_HOST is set")
		}
	}

	if IsProduction() && cfg.DBHost == "" {
		errors = append(errors, "DB_HOST is required in production")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
