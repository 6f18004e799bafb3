package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_StorageConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("STORAGE_BACKEND", "redis")
	os.Setenv("STORAGE_REDIS_KEY", "test:appointments")
	defer func() {
		os.Unsetenv("STORAGE_BACKEND")
		os.Unsetenv("STORAGE_REDIS_KEY")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify storage config
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "test:appointments", cfg.Storage.RedisKey)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("STORAGE_BACKEND")
	os.Unsetenv("INSIGHT_PROVIDER")
	os.Unsetenv("HEALTH_SYNC_PROVIDER")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, StorageBackendFile, cfg.Storage.Backend)
	assert.Equal(t, ProviderModeMock, cfg.Insight.Mode)
	assert.Equal(t, ProviderModeMock, cfg.HealthSync.Mode)
	assert.Equal(t, "data/appointments.json", cfg.Storage.FilePath)
}

func TestLoad_ProviderModes(t *testing.T) {
	os.Setenv("INSIGHT_PROVIDER", "live")
	os.Setenv("HEALTH_SYNC_PROVIDER", "live")
	defer func() {
		os.Unsetenv("INSIGHT_PROVIDER")
		os.Unsetenv("HEALTH_SYNC_PROVIDER")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, ProviderModeLive, cfg.Insight.Mode)
	assert.Equal(t, ProviderModeLive, cfg.HealthSync.Mode)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "u",
		Password: "p",
		Database: "visitprep",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=visitprep sslmode=disable", cfg.DatabaseDSN())
}
