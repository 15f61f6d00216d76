package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/killallgit/reporadar-api/internal/database"
	"github.com/killallgit/reporadar-api/internal/services/github"
	"github.com/killallgit/reporadar-api/internal/services/reposearch"
	"github.com/killallgit/reporadar-api/internal/services/searchlog"
	"github.com/killallgit/reporadar-api/pkg/config"
)

// newSearchService builds the orchestrator on top of the configured GitHub client
func newSearchService(cfg *config.Config, log *zap.Logger) (*reposearch.Service, error) {
	client, err := github.NewClient(github.Config{
		BaseURL:   cfg.GitHub.BaseURL,
		Token:     cfg.GitHub.Token,
		UserAgent: cfg.GitHub.UserAgent,
		Timeout:   cfg.GitHub.Timeout,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	return reposearch.NewService(
		reposearch.NewGitHubAdapter(client),
		reposearch.WithMaxBackfillPages(cfg.GitHub.MaxBackfillPages),
		reposearch.WithLogger(log.Named("reposearch")),
	), nil
}

// openDatabase opens the audit database and applies migrations
func openDatabase(cfg *config.Config, log *zap.Logger) (*database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// newSearchLog returns the audit service. It is disabled when db is nil.
func newSearchLog(db *database.DB, log *zap.Logger) searchlog.Service {
	if db == nil {
		return searchlog.NewService(nil, log)
	}
	return searchlog.NewService(searchlog.NewRepository(db.DB), log)
}
