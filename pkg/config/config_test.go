package config

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	once = sync.Once{}
	initErr = nil
}

func writeSettings(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(dir+"/config", 0o755))
	require.NoError(t, os.WriteFile(dir+"/config/settings.yaml", []byte(content), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name:  "missing config file with defaults",
			setup: func(t *testing.T) {},
			check: func(t *testing.T) {
				assert.Equal(t, 3000, GetInt("server.port"))
				assert.Equal(t, "https://api.github.com/", GetString("github.base_url"))
				assert.Equal(t, 10*time.Second, GetDuration("github.timeout"))
				assert.Equal(t, 1000, GetInt("rate_limiting.requests"))
				assert.Equal(t, 5*time.Minute, GetDuration("rate_limiting.window"))
				assert.False(t, GetBool("audit.enabled"))
				assert.Equal(t, 30*24*time.Hour, GetDuration("audit.retention"))
				assert.Equal(t, time.Hour, GetDuration("audit.cleanup_interval"))
			},
		},
		{
			name: "load from settings.yaml",
			setup: func(t *testing.T) {
				writeSettings(t, `
server:
  port: 8080
github:
  base_url: "http://localhost:9999/"
  max_backfill_pages: 3
audit:
  enabled: true
  retention: 48h
`)
			},
			check: func(t *testing.T) {
				assert.Equal(t, 8080, GetInt("server.port"))
				assert.Equal(t, "http://localhost:9999/", GetString("github.base_url"))
				assert.Equal(t, 3, GetInt("github.max_backfill_pages"))
				assert.True(t, GetBool("audit.enabled"))
				assert.Equal(t, 48*time.Hour, GetDuration("audit.retention"))
			},
		},
		{
			name: "environment variable override",
			setup: func(t *testing.T) {
				t.Setenv("REPORADAR_SERVER_PORT", "9090")
				t.Setenv("REPORADAR_GITHUB_TOKEN", "ghp_test")
			},
			check: func(t *testing.T) {
				assert.Equal(t, 9090, GetInt("server.port"))
				assert.Equal(t, "ghp_test", GetString("github.token"))
			},
		},
		{
			name: "negative backfill cap means no cap",
			setup: func(t *testing.T) {
				t.Setenv("REPORADAR_GITHUB_MAX_BACKFILL_PAGES", "-3")
			},
			check: func(t *testing.T) {
				assert.Equal(t, 0, GetInt("github.max_backfill_pages"))
			},
		},
		{
			name: "invalid port",
			setup: func(t *testing.T) {
				t.Setenv("REPORADAR_SERVER_PORT", "70000")
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			setup: func(t *testing.T) {
				t.Setenv("REPORADAR_LOGGING_LEVEL", "loud")
			},
			wantErr: true,
		},
		{
			name: "relative base url",
			setup: func(t *testing.T) {
				t.Setenv("REPORADAR_GITHUB_BASE_URL", "api.github.com")
			},
			wantErr: true,
		},
		{
			name: "placeholder token in production",
			setup: func(t *testing.T) {
				t.Setenv("REPORADAR_ENVIRONMENT", "production")
				t.Setenv("REPORADAR_GITHUB_TOKEN", "changeme")
			},
			wantErr: true,
		},
		{
			name: "placeholder token in development",
			setup: func(t *testing.T) {
				t.Setenv("REPORADAR_GITHUB_TOKEN", "changeme")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetConfig(t)
			t.Cleanup(viper.Reset)
			tt.setup(t)

			err := Init()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestGetConfig(t *testing.T) {
	resetConfig(t)
	t.Cleanup(viper.Reset)
	t.Setenv("REPORADAR_AUDIT_ENABLED", "true")

	require.NoError(t, Init())
	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "RepoRadarAPI/1.0", cfg.GitHub.UserAgent)
	assert.Zero(t, cfg.GitHub.MaxBackfillPages)
	assert.Equal(t, []string{"GET", "OPTIONS"}, cfg.Security.CORSMethods)
	assert.True(t, cfg.AuditEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:   "valid config",
			config: &Config{Server: ServerConfig{Port: 8080}, GitHub: GitHubConfig{BaseURL: "https://api.github.com/"}},
		},
		{
			name:   "negative backfill cap",
			config: &Config{Server: ServerConfig{Port: 8080}, GitHub: GitHubConfig{BaseURL: "https://api.github.com/", MaxBackfillPages: -1}},
		},
		{
			name:    "invalid port",
			config:  &Config{Server: ServerConfig{Port: 0}},
			wantErr: true,
		},
		{
			name:    "relative base url",
			config:  &Config{Server: ServerConfig{Port: 8080}, GitHub: GitHubConfig{BaseURL: "github"}},
			wantErr: true,
		},
		{
			name: "enabled rate limit without window",
			config: &Config{
				Server:       ServerConfig{Port: 8080},
				RateLimiting: RateLimitConfig{Enabled: true, Requests: 10},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Zero(t, tt.config.GitHub.MaxBackfillPages)
		})
	}
}

func TestConfig_AuditEnabled(t *testing.T) {
	cfg := &Config{Audit: AuditConfig{Enabled: true}}
	assert.False(t, cfg.AuditEnabled())

	cfg.Database.Path = "./audit.db"
	assert.True(t, cfg.AuditEnabled())

	cfg.Audit.Enabled = false
	assert.False(t, cfg.AuditEnabled())
}
