package searchlog

import (
	"context"
	"time"

	"github.com/killallgit/reporadar-api/internal/models"
)

// Repository defines the interface for search log data access
type Repository interface {
	Create(ctx context.Context, entry *models.SearchLog) error
	ListRecent(ctx context.Context, limit int) ([]models.SearchLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Recorder writes audit records for handled searches. Implementations must
// never fail the search they describe.
type Recorder interface {
	Record(ctx context.Context, entry *models.SearchLog)
}

// Service defines the interface for search log business logic
type Service interface {
	Recorder
	List(ctx context.Context, limit int) ([]models.SearchLog, error)
	Enabled() bool
}
