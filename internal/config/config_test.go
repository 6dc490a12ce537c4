package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "APP_PORT", "DB_SSLMODE", "DB_QUERY_TIMEOUT",
		"CACHE_LIST_TTL", "SEED_ENABLED", "SEED_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 30*time.Second, cfg.Redis.ListTTL)
	assert.True(t, cfg.Seed.Enabled)
	assert.Empty(t, cfg.Seed.File)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_QUERY_TIMEOUT", "750ms")
	t.Setenv("DB_MAX_CONNECTIONS", "8")
	t.Setenv("DB_MIN_CONNECTIONS", "1")
	t.Setenv("CACHE_LIST_TTL", "2m")
	t.Setenv("SEED_ENABLED", "false")
	t.Setenv("SEED_FILE", "/data/seed.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.Database.QueryTimeout)
	assert.Equal(t, int32(8), cfg.Database.MaxConns)
	assert.Equal(t, 2*time.Minute, cfg.Redis.ListTTL)
	assert.False(t, cfg.Seed.Enabled)
	assert.Equal(t, "/data/seed.json", cfg.Seed.File)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DB_PORT", "five"},
		{"DB_QUERY_TIMEOUT", "soon"},
		{"DB_QUERY_TIMEOUT", "0s"},
		{"DB_MAX_RETRIES", "0"},
		{"DB_MAX_RETRIES", "-2"},
		{"CACHE_LIST_TTL", "forever"},
		{"SEED_ENABLED", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_MaxRetries(t *testing.T) {
	t.Setenv("DB_MAX_RETRIES", "1")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Database.MaxRetries)

	cfg.Database.MaxRetries = 0
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MAX_RETRIES")
}

func TestLoad_MinConnsAboveMax(t *testing.T) {
	t.Setenv("DB_MAX_CONNECTIONS", "2")
	t.Setenv("DB_MIN_CONNECTIONS", "4")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "s3cret")
	_, err = Load()
	assert.NoError(t, err)
}
