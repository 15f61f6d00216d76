package searchlog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/killallgit/reporadar-api/internal/models"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new search log repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// Create inserts one search log row
func (r *RepositoryImpl) Create(ctx context.Context, entry *models.SearchLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("creating search log: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first
func (r *RepositoryImpl) ListRecent(ctx context.Context, limit int) ([]models.SearchLog, error) {
	var entries []models.SearchLog
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("listing search logs: %w", err)
	}
	return entries, nil
}

// DeleteOlderThan removes entries created before cutoff and returns how many were removed
func (r *RepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.SearchLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting search logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
