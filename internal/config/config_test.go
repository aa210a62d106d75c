package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TODO_ADDR", "TODO_LOG_LEVEL", "TODO_LOG_FORMAT", "TODO_CORS_MAX_AGE"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 3600, cfg.CORS.MaxAge)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeoutDuration())
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeoutDuration())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeoutDuration())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "todo.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":9090"
	cfg.Logging.Level = "debug"
	cfg.CORS.MaxAge = 60

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "todo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: 0.0.0.0:8000\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr)
	assert.Equal(t, "3s", cfg.Server.RequestTimeout)
	assert.Equal(t, 3600, cfg.CORS.MaxAge)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "todo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TODO_ADDR", ":7070")
	t.Setenv("TODO_LOG_LEVEL", "warn")
	t.Setenv("TODO_LOG_FORMAT", "console")
	t.Setenv("TODO_CORS_MAX_AGE", "120")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 120, cfg.CORS.MaxAge)
}

func TestConfig_EnvOverrideBadMaxAge(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODO_CORS_MAX_AGE", "an hour")

	_, err := Load("")
	assert.ErrorContains(t, err, "TODO_CORS_MAX_AGE")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"bad duration", func(c *Config) { c.Server.RequestTimeout = "soon" }, "server.request_timeout"},
		{"zero duration", func(c *Config) { c.Server.ShutdownTimeout = "0s" }, "server.shutdown_timeout"},
		{"body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "server.max_body_bytes"},
		{"negative max age", func(c *Config) { c.CORS.MaxAge = -1 }, "cors.max_age"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
