package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pruner deletes audit records created before a cutoff
type Pruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service periodically prunes expired search log entries
type Service struct {
	pruner   Pruner
	maxAge   time.Duration
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new retention service. A non-positive maxAge keeps entries forever.
func NewService(pruner Pruner, maxAge, interval time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Service{
		pruner:   pruner,
		maxAge:   maxAge,
		interval: interval,
		logger:   log.Named("cleanup"),
		now:      time.Now,
	}
}

// Enabled reports whether the service has anything to do
func (s *Service) Enabled() bool {
	return s != nil && s.pruner != nil && s.maxAge > 0
}

// Run prunes once immediately and then on every tick until ctx is cancelled
func (s *Service) Run(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}

	s.logger.Info("Search log retention started",
		zap.Duration("interval", s.interval),
		zap.Duration("max_age", s.maxAge))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.prune(ctx)

	for {
		select {
		case <-ticker.C:
			s.prune(ctx)
		case <-ctx.Done():
			s.logger.Info("Search log retention stopped")
			return nil
		}
	}
}

// PruneOnce deletes expired entries and returns how many were removed
func (s *Service) PruneOnce(ctx context.Context) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	return s.pruner.DeleteOlderThan(ctx, s.now().Add(-s.maxAge))
}

func (s *Service) prune(ctx context.Context) {
	removed, err := s.PruneOnce(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("Failed to prune search logs", zap.Error(err))
		}
		return
	}
	if removed > 0 {
		s.logger.Debug("Pruned search logs", zap.Int64("removed", removed))
	}
}
