package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: shareit-test
database:
  path: "${SHAREIT_TEST_DB}"
api:
  rate_limit:
    enabled: true
    requests: 50
    window: 30s
gateway:
  timeout: 2s
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))
	t.Setenv("SHAREIT_TEST_DB", "data/test.db")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "shareit-test", cfg.App.Name)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/test.db", cfg.Database.Path)
	assert.Equal(t, 50, cfg.API.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.API.RateLimit.Window)
	assert.Equal(t, 2*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, "http://localhost:9090", cfg.Gateway.ServerURL)
	assert.Equal(t, 10, cfg.Pagination.DefaultSize)
	assert.Equal(t, 100, cfg.Pagination.MaxSize)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid sqlite",
			cfg: Config{
				Database:   DatabaseConfig{Driver: DriverSQLite, Path: "path"},
				Pagination: PaginationConfig{DefaultSize: 10, MaxSize: 100},
			},
		},
		{
			name: "valid memory",
			cfg: Config{
				Database:   DatabaseConfig{Driver: DriverMemory},
				Pagination: PaginationConfig{DefaultSize: 10, MaxSize: 100},
			},
		},
		{
			name: "missing path",
			cfg: Config{
				Database:   DatabaseConfig{Driver: DriverSQLite},
				Pagination: PaginationConfig{DefaultSize: 10, MaxSize: 100},
			},
			wantErr: true,
		},
		{
			name: "unknown driver",
			cfg: Config{
				Database:   DatabaseConfig{Driver: "postgres", Path: "path"},
				Pagination: PaginationConfig{DefaultSize: 10, MaxSize: 100},
			},
			wantErr: true,
		},
		{
			name: "rate limit without requests",
			cfg: Config{
				Database:   DatabaseConfig{Driver: DriverMemory},
				API:        APIConfig{RateLimit: APIRateLimitConfig{Enabled: true}},
				Pagination: PaginationConfig{DefaultSize: 10, MaxSize: 100},
			},
			wantErr: true,
		},
		{
			name: "max below default",
			cfg: Config{
				Database:   DatabaseConfig{Driver: DriverMemory},
				Pagination: PaginationConfig{DefaultSize: 10, MaxSize: 5},
			},
			wantErr: true,
		},
		{
			name: "backup on memory driver",
			cfg: Config{
				Database:   DatabaseConfig{Driver: DriverMemory},
				Backup:     BackupConfig{Enabled: true},
				Pagination: PaginationConfig{DefaultSize: 10, MaxSize: 100},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{Driver: " Memory "}}
	cfg.applyDefaults()

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.API.HTTP.Port)
	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, 5, cfg.Gateway.RateLimit.Burst)
	assert.Equal(t, 2, cfg.Gateway.Retry.MaxRetries)
	assert.Equal(t, time.Minute, cfg.API.RateLimit.Window)
}
