package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_DATABASE__URL", "postgres://localhost:5432/incidents")
	t.Setenv("APP_JWT__SECRET_KEY", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.MetricsPort)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.Analysis.Timeout)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, 5, cfg.Notifications.Retry.MaxAttempts)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("APP_JWT__SECRET_KEY", "test-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "3000"
database:
  url: postgres://db:5432/incidents
  max_open_conns: 25
log:
  level: debug
notifications:
  worker:
    num_workers: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "postgres://db:5432/incidents", cfg.Database.URL)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Notifications.Worker.NumWorkers)

	// untouched keys keep defaults
	assert.Equal(t, "9090", cfg.Server.MetricsPort)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("APP_JWT__SECRET_KEY", "test-secret")
	t.Setenv("APP_SERVER__PORT", "9999")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "3000"
database:
  url: postgres://db:5432/incidents
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("APP_JWT__SECRET_KEY", "test-secret")
		_, err := Load("")
		assert.ErrorContains(t, err, "database.url")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("APP_DATABASE__URL", "postgres://localhost:5432/incidents")
		_, err := Load("")
		assert.ErrorContains(t, err, "jwt.secret_key")
	})
}
