package searchlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/killallgit/reporadar-api/internal/models"
	"github.com/killallgit/reporadar-api/internal/services/reposearch"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, entry *models.SearchLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRepository) ListRecent(ctx context.Context, limit int) ([]models.SearchLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchLog), args.Error(1)
}

func (m *MockRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Record(t *testing.T) {
	repo := new(MockRepository)
	entry := &models.SearchLog{Query: "nestjs", Outcome: models.OutcomeOK}
	repo.On("Create", mock.Anything, entry).Return(nil).Once()

	svc := NewService(repo, nil)
	assert.True(t, svc.Enabled())

	// a cancelled request context must not prevent the write
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Record(ctx, entry)

	repo.AssertExpectations(t)
	createCtx := repo.Calls[0].Arguments.Get(0).(context.Context)
	assert.NoError(t, createCtx.Err())
}

func TestService_RecordFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database is locked"))

	svc := NewService(repo, zap.New(core))
	ctx := logger.ContextWithCorrelationID(context.Background(), "corr-9")
	svc.Record(ctx, &models.SearchLog{Query: "nestjs"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to record search", entry.Message)
	assert.Equal(t, "corr-9", entry.ContextMap()["correlation_id"])
}

func TestService_Disabled(t *testing.T) {
	svc := NewService(nil, nil)
	assert.False(t, svc.Enabled())

	svc.Record(context.Background(), &models.SearchLog{Query: "x"})

	_, err := svc.List(context.Background(), 10)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestService_List(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "default", limit: 0, wantLimit: DefaultListLimit},
		{name: "negative", limit: -3, wantLimit: DefaultListLimit},
		{name: "within range", limit: 20, wantLimit: 20},
		{name: "above max", limit: 10000, wantLimit: MaxListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("ListRecent", mock.Anything, tt.wantLimit).
				Return([]models.SearchLog{{Query: "a"}}, nil).Once()

			svc := NewService(repo, nil)
			entries, err := svc.List(context.Background(), tt.limit)

			require.NoError(t, err)
			assert.Len(t, entries, 1)
			repo.AssertExpectations(t)
		})
	}
}

func TestNewEntry(t *testing.T) {
	ctx := logger.ContextWithCorrelationID(context.Background(), "corr-1")
	req := reposearch.SearchRequest{
		Query: "nestjs", Sort: reposearch.SortStars, Order: reposearch.OrderAsc,
		Ignore: "starter", Page: 2, PerPage: 3,
	}

	t.Run("success", func(t *testing.T) {
		result := &reposearch.SearchResult{
			TotalCount: 99,
			Items:      []reposearch.RepositoryItem{{Name: "a"}, {Name: "b"}},
		}
		entry := NewEntry(ctx, req, result, nil, 1500*time.Millisecond)

		assert.Equal(t, "corr-1", entry.CorrelationID)
		assert.Equal(t, "stars", entry.Sort)
		assert.Equal(t, "asc", entry.Order)
		assert.Equal(t, models.OutcomeOK, entry.Outcome)
		assert.Empty(t, entry.ErrorKind)
		assert.Equal(t, 2, entry.ItemCount)
		assert.Equal(t, 99, entry.TotalCount)
		assert.Equal(t, int64(1500), entry.DurationMs)
		assert.True(t, entry.Succeeded())
	})

	t.Run("upstream error", func(t *testing.T) {
		err := reposearch.NewUpstreamError(reposearch.KindUnavailable, 503, "down", nil)
		entry := NewEntry(ctx, req, nil, err, time.Second)

		assert.Equal(t, models.OutcomeError, entry.Outcome)
		assert.Equal(t, "unavailable", entry.ErrorKind)
		assert.Zero(t, entry.ItemCount)
	})

	t.Run("processing error", func(t *testing.T) {
		entry := NewEntry(ctx, req, nil, reposearch.NewProcessingError(errors.New("boom")), time.Second)
		assert.Equal(t, "processing", entry.ErrorKind)
	})
}
