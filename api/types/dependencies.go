package types

import (
	"go.uber.org/zap"

	"github.com/killallgit/reporadar-api/internal/database"
	"github.com/killallgit/reporadar-api/internal/services/reposearch"
	"github.com/killallgit/reporadar-api/internal/services/searchlog"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB            *database.DB
	SearchService reposearch.SearchService
	SearchLog     searchlog.Service
	Logger        *zap.Logger
}

// Log returns the configured logger or a no-op logger
func (d *Dependencies) Log() *zap.Logger {
	if d == nil || d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
