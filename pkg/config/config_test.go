package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "json", cfg.App.LogFormat)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "./data", cfg.Store.Path)
	assert.Equal(t, "importdesk", cfg.Store.Namespace)
}

func TestFromEnvRedisRequiresAddress(t *testing.T) {
	t.Setenv("IMPORTDESK_STORE_BACKEND", "Redis")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IMPORTDESK_REDIS_URL")

	t.Setenv("IMPORTDESK_REDIS_URL", "redis://localhost:6379/2")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis://localhost:6379/2", cfg.Redis.URL)
}

func TestFromEnvSQLiteDefaultsDSN(t *testing.T) {
	t.Setenv("IMPORTDESK_STORE_BACKEND", "sqlite")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "importdesk.db", cfg.SQL.DSN)
}

func TestFromEnvRejectsUnknownBackend(t *testing.T) {
	t.Setenv("IMPORTDESK_STORE_BACKEND", "s3")

	_, err := FromEnv()
	assert.ErrorContains(t, err, `unsupported store backend "s3"`)
}

func TestFromEnvPostgresRequiresDSN(t *testing.T) {
	t.Setenv("IMPORTDESK_STORE_BACKEND", "postgres")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "IMPORTDESK_SQL_DSN")
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("IMPORTDESK_STORE_BACKEND=memory\nIMPORTDESK_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("IMPORTDESK_STORE_BACKEND")
		os.Unsetenv("IMPORTDESK_LOG_LEVEL")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "debug", cfg.App.LogLevel)

	_, err = Load(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}
