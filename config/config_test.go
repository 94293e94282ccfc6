package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "mealstash")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("DATA_DIR", "/tmp/mealstash-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "mealstash", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "/tmp/mealstash-test", cfg.DataDir)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("DB_HOST", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DATA_DIR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.ServerHost)
	assert.Empty(t, cfg.DBHost)
	assert.Empty(t, cfg.RedisHost)
	assert.Equal(t, "./data", cfg.DataDir)
}

func TestValidateConfigRequiresDBUserWithHost(t *testing.T) {
	t.Setenv("ENV", "development")

	err := ValidateConfig(&Config{
		ServerPort: "8080",
		DataDir:    "./data",
		DBHost:     "db.internal",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER is required")
}
