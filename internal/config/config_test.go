package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[development]
port = 9600
log_level = "debug"
log_to_stdout = true
timezone = "Europe/Berlin"
store_backend = "memory"
store_cache_size = 1048576
snooze_minutes = 10
refresh_interval = "30s"

[production]
host = "0.0.0.0"
store_backend = "redis"
redis_host = "redis"
redis_port = "6379"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	t.Setenv("GROOVE_REDIS_PASS", "")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example/1")

	cfg, err := Load("dev", writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 9600, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 1048576, cfg.StoreCacheSize)
	assert.Equal(t, 10*time.Minute, cfg.SnoozeDuration())
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval.Duration)
	assert.Equal(t, "https://key@sentry.example/1", cfg.SentryDSN)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoad_ProductionDefaults(t *testing.T) {
	t.Setenv("GROOVE_REDIS_PASS", "s3cret")

	cfg, err := Load("production", writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9500, cfg.Port)
	assert.Equal(t, "9501", cfg.MetricsPort)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, "groove", cfg.RedisKeyPrefix)
	assert.Equal(t, "s3cret", cfg.RedisPassword)
	assert.Equal(t, 15*time.Minute, cfg.SnoozeDuration())
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval.Duration)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("staging", writeConfig(t, testConfig))
	assert.ErrorContains(t, err, "unknown env")

	_, err = Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load("prod", writeConfig(t, "[development]\nport = 1\n"))
	assert.ErrorContains(t, err, "missing")

	_, err = Load("dev", writeConfig(t, "[development]\ntimezone = \"Mars/Olympus\"\n"))
	assert.ErrorContains(t, err, "timezone")

	_, err = Load("dev", writeConfig(t, "[development]\nrefresh_interval = \"soon\"\n"))
	assert.Error(t, err)
}
