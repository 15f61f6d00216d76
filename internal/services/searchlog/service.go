package searchlog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/killallgit/reporadar-api/internal/models"
	"github.com/killallgit/reporadar-api/internal/services/reposearch"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500

	recordTimeout = 2 * time.Second
)

// ErrDisabled is returned by List when no audit database is configured
var ErrDisabled = errors.New("search audit log is disabled")

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new search log service. A nil repository yields a
// disabled service whose Record is a no-op.
func NewService(repo Repository, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &ServiceImpl{repo: repo, logger: log.Named("searchlog")}
}

// Enabled reports whether records are persisted
func (s *ServiceImpl) Enabled() bool {
	return s.repo != nil
}

// Record persists entry. Failures are logged and swallowed.
func (s *ServiceImpl) Record(ctx context.Context, entry *models.SearchLog) {
	if s.repo == nil || entry == nil {
		return
	}

	// the request context may already be done once the response is written
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record search",
			logger.CorrelationField(ctx),
			zap.String("query", entry.Query),
			zap.Error(err))
	}
}

// List returns up to limit recent entries. Limits outside 1..MaxListLimit are clamped.
func (s *ServiceImpl) List(ctx context.Context, limit int) ([]models.SearchLog, error) {
	if s.repo == nil {
		return nil, ErrDisabled
	}
	return s.repo.ListRecent(ctx, ClampLimit(limit))
}

// ClampLimit applies the default and maximum list sizes
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

// NewEntry builds the audit record for one search
func NewEntry(ctx context.Context, req reposearch.SearchRequest, result *reposearch.SearchResult, err error, duration time.Duration) *models.SearchLog {
	entry := &models.SearchLog{
		CorrelationID: logger.CorrelationID(ctx),
		Query:         req.Query,
		Sort:          string(req.Sort),
		Order:         string(req.Order),
		Ignore:        req.Ignore,
		Page:          req.Page,
		PerPage:       req.PerPage,
		Outcome:       models.OutcomeOK,
		DurationMs:    duration.Milliseconds(),
	}

	if err != nil {
		entry.Outcome = models.OutcomeError
		if kind := reposearch.UpstreamKind(err); kind != "" {
			entry.ErrorKind = string(kind)
		} else {
			entry.ErrorKind = "processing"
		}
		return entry
	}

	if result != nil {
		entry.ItemCount = len(result.Items)
		entry.TotalCount = result.TotalCount
	}
	return entry
}
