package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/killallgit/reporadar-api/pkg/config"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

// appConfig is loaded before any command that needs it runs
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reporadar",
	Short: "Repo Radar API server",
	Long: `Repo Radar API - GitHub repository search with name filtering

Repo Radar sits in front of the GitHub repository search API. It forwards
searches, drops repositories whose name contains an ignore term and pulls
later upstream pages until the requested page size is filled.

Features:
  • GitHub repository search with sort, order and paging
  • Case-insensitive name filtering with page backfill
  • Optional SQLite audit log of handled searches
  • Swagger documentation at /docs`,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// initRuntime loads configuration and builds the logger for commands that need them
func initRuntime(cmd *cobra.Command, args []string) error {
	if !needsConfig(cmd) {
		return nil
	}

	if err := loadConfig(); err != nil {
		return err
	}

	log, err := logger.Init(loggerOptions(cmd, appConfig))
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	log.Debug("configuration loaded",
		zap.String("environment", appConfig.Environment),
		zap.String("github_base_url", appConfig.GitHub.BaseURL),
		zap.Bool("audit", appConfig.AuditEnabled()))
	return nil
}

// needsConfig reports whether cmd reads configuration
func needsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return false
	}
	return cmd.Runnable()
}

// loadConfig initializes and unmarshals the configuration
func loadConfig() error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// loggerOptions lets explicit flags win over the logging config section
func loggerOptions(cmd *cobra.Command, cfg *config.Config) logger.Options {
	opts := logger.Options{
		Level: cfg.Logging.Level,
		JSON:  strings.EqualFold(cfg.Logging.Format, "json") || cfg.IsProduction(),
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		opts.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("json-logs") {
		opts.JSON, _ = flags.GetBool("json-logs")
	}
	return opts
}
