package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9000"
  mode: debug
session:
  secret: dev-secret
  expire_minutes: 30
  store: memory
results:
  backend: memory
storage:
  type: local
  local_path: `+filepath.Join(t.TempDir(), "static")+`
rate_limit:
  max_requests: 10
  window_minutes: 2
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Session.ExpireTime)
	assert.Equal(t, "quiz_session", cfg.Session.CookieName)
	assert.Equal(t, "memory", cfg.Results.Backend)
	assert.Equal(t, "Sheet1", cfg.Sheets.SheetName)
	assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 2, cfg.RateLimit.WindowMinutes)
	assert.DirExists(t, cfg.Storage.LocalPath)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigPath)
}

func TestLoadConfig_ReleaseRequiresStrongSecret(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
session:
  secret: short
results:
  backend: memory
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session secret is too short")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Mode: "debug"},
			Session: SessionConfig{ExpireTime: time.Hour, Store: "memory"},
			Results: ResultsConfig{Backend: "memory"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"memory backend is valid", func(c *Config) {}, ""},
		{"sheets needs spreadsheet", func(c *Config) { c.Results.Backend = "sheets" }, "sheets backend requires"},
		{"sheets configured", func(c *Config) {
			c.Results.Backend = "sheets"
			c.Sheets.SpreadsheetID = "abc"
			c.Sheets.CredentialsFile = "key.json"
		}, ""},
		{"mongo needs uri", func(c *Config) { c.Results.Backend = "mongo" }, "mongo backend requires"},
		{"unknown backend", func(c *Config) { c.Results.Backend = "csv" }, "unknown results backend"},
		{"unknown session store", func(c *Config) { c.Session.Store = "file" }, "unknown session store"},
		{"zero expiry", func(c *Config) { c.Session.ExpireTime = 0 }, "expire time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
