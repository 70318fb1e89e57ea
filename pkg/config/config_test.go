package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
environment: test
database:
  path: data/test.db
ingest:
  csv_path: data.csv
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, []string{"*"}, cfg.Server.CORS.AllowOrigins)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Empty(t, cfg.Ingest.RefreshCron)
}

func TestLoadExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
environment: production
server:
  port: 8080
  read_timeout: 30s
  cors:
    allow_origins:
      - https://example.com
logging:
  level: debug
  format: json
database:
  path: /var/lib/priceboard/app.db
ingest:
  csv_path: /srv/feed/data.csv
  refresh_cron: "0 * * * *"
metrics:
  enabled: true
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.CORS.AllowOrigins)
	assert.Equal(t, "0 * * * *", cfg.Ingest.RefreshCron)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing environment", "database:\n  path: x\ningest:\n  csv_path: y\n"},
		{"missing database path", "environment: test\ningest:\n  csv_path: y\n"},
		{"missing csv path", "environment: test\ndatabase:\n  path: x\n"},
		{"port out of range", minimalConfig + "server:\n  port: 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/override.db")
	t.Setenv("CSV_PATH", "/tmp/override.csv")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, "/tmp/override.csv", cfg.Ingest.CSVPath)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORS.AllowOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
