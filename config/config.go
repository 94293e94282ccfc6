package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration. When DBHost is empty the server falls back
	// to a local sqlite file under DataDir.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration. When RedisHost is empty pending imports are
	// kept in process memory instead.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Data directory for recipe images and the sqlite fallback database
	DataDir string

	// User-Agent sent when fetching recipe pages and images
	UserAgent string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI environment from environment variables only
func loadCIConfig(cfg *Config) {
	cfg.ServerPort = envOr("SERVER_PORT", "8080")
	cfg.ServerHost = envOr("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = envOr("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = envOr("DB_SSL_MODE", "disable")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = envOr("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisDB = 0
	cfg.DataDir = envOr("DATA_DIR", os.TempDir())
	cfg.UserAgent = os.Getenv("SCRAPER_USER_AGENT")
}

// loadDevConfig loads configuration for development, defaulting to a
// redis-less, postgres-less setup that runs from a local data directory.
func loadDevConfig(cfg *Config) {
	cfg.ServerPort = envOr("SERVER_PORT", "8080")
	cfg.ServerHost = envOr("SERVER_HOST", "localhost")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = envOr("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = envOr("DB_NAME", "mealstash")
	cfg.DBSSLMode = envOr("DB_SSL_MODE", "disable")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = envOr("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = 0
	cfg.DataDir = envOr("DATA_DIR", "./data")
	cfg.UserAgent = os.Getenv("SCRAPER_USER_AGENT")
}

// loadProdConfig loads configuration for production using Docker secrets
// for credentials and environment variables for the rest
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = envOr("SERVER_PORT", "8080")
	cfg.ServerHost = envOr("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = envOr("DB_PORT", "5432")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = envOr("DB_NAME", "mealstash")
	cfg.DBSSLMode = envOr("DB_SSL_MODE", "require")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = envOr("REDIS_PORT", "6379")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisDB = 0
	cfg.DataDir = envOr("DATA_DIR", "/var/lib/mealstash")
	cfg.UserAgent = os.Getenv("SCRAPER_USER_AGENT")

	if cfg.DBHost != "" && (cfg.DBUser == "" || cfg.DBPassword == "") {
		return fmt.Errorf("db_user and db_password secrets are required when DB_HOST is set")
	}
	return nil
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
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
