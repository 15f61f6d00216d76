package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/killallgit/reporadar-api/pkg/logger"
)

// EnvPrefix is prepended to every environment override, e.g. REPORADAR_SERVER_PORT
const EnvPrefix = "REPORADAR"

var (
	once    sync.Once
	initErr error
)

// placeholder values that must never reach production
var placeholders = []string{
	"YOUR_TOKEN_HERE",
	"YOUR_API_KEY",
	"changeme",
	"CHANGEME",
}

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix(EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing file means defaults and env vars only
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Set overrides a config value, used by command line flags
func Set(key string, value any) {
	viper.Set(key, value)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if _, err := logger.ParseLevel(viper.GetString("logging.level")); err != nil {
		return err
	}

	if err := validateBaseURL(viper.GetString("github.base_url")); err != nil {
		return err
	}

	if viper.GetDuration("github.timeout") <= 0 {
		return fmt.Errorf("invalid github timeout: %s", viper.GetDuration("github.timeout"))
	}

	if err := validateToken(); err != nil {
		return err
	}

	// Negative backfill caps mean no cap
	if viper.GetInt("github.max_backfill_pages") < 0 {
		viper.Set("github.max_backfill_pages", 0)
	}

	if viper.GetDuration("audit.cleanup_interval") <= 0 {
		viper.Set("audit.cleanup_interval", time.Hour)
	}

	if viper.GetBool("audit.enabled") && viper.GetString("database.path") == "" {
		fmt.Fprintln(os.Stderr, "Warning: audit enabled but no database path configured, search logs will not be recorded")
	}

	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid github base_url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid github base_url %q: must be an absolute URL", raw)
	}
	return nil
}

// validateToken rejects placeholder tokens in production
func validateToken() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	token := viper.GetString("github.token")
	for _, placeholder := range placeholders {
		if token == placeholder {
			if isProduction {
				return fmt.Errorf("invalid GitHub token: cannot use placeholder values in production")
			}
			fmt.Fprintln(os.Stderr, "Warning: GitHub token is using a placeholder value")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.GitHub.BaseURL != "" {
		if err := validateBaseURL(c.GitHub.BaseURL); err != nil {
			return err
		}
	}

	if c.RateLimiting.Enabled && (c.RateLimiting.Requests <= 0 || c.RateLimiting.Window <= 0) {
		return fmt.Errorf("invalid rate limit: %d requests per %s", c.RateLimiting.Requests, c.RateLimiting.Window)
	}

	if c.GitHub.MaxBackfillPages < 0 {
		c.GitHub.MaxBackfillPages = 0
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 1048576)

	// GitHub defaults
	viper.SetDefault("github.base_url", "https://api.github.com/")
	viper.SetDefault("github.token", "")
	viper.SetDefault("github.timeout", 10*time.Second)
	viper.SetDefault("github.user_agent", "RepoRadarAPI/1.0")
	viper.SetDefault("github.max_backfill_pages", 0)

	// Database defaults
	viper.SetDefault("database.path", "./data/reporadar.db")
	viper.SetDefault("database.verbose", false)

	// Audit defaults
	viper.SetDefault("audit.enabled", false)
	viper.SetDefault("audit.retention", 30*24*time.Hour)
	viper.SetDefault("audit.cleanup_interval", time.Hour)

	// Rate limiting defaults: 1000 requests per 5 minutes per client
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests", 1000)
	viper.SetDefault("rate_limiting.window", 5*time.Minute)
	viper.SetDefault("rate_limiting.burst", 100)

	// Security defaults
	viper.SetDefault("security.cors_origins", []string{"http://localhost"})
	viper.SetDefault("security.cors_methods", []string{"GET", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization", "X-Correlation-Id"})
	viper.SetDefault("security.enable_request_id", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}
