package searchlogs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/reporadar-api/api/types"
	"github.com/killallgit/reporadar-api/internal/database"
	"github.com/killallgit/reporadar-api/internal/models"
	"github.com/killallgit/reporadar-api/internal/services/searchlog"
)

type MockSearchLog struct {
	mock.Mock
}

func (m *MockSearchLog) Record(ctx context.Context, entry *models.SearchLog) {
	m.Called(ctx, entry)
}

func (m *MockSearchLog) List(ctx context.Context, limit int) ([]models.SearchLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchLog), args.Error(1)
}

func (m *MockSearchLog) Enabled() bool {
	return m.Called().Bool(0)
}

func setupRouter(deps *types.Dependencies) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/search-logs"), deps)
	return router
}

func doGet(router *gin.Engine, url string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestGet_WithDatabase(t *testing.T) {
	db, err := database.Initialize(":memory:", false, nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	defer db.Close()

	svc := searchlog.NewService(searchlog.NewRepository(db.DB), nil)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, q := range []string{"react", "vue", "svelte"} {
		svc.Record(ctx, &models.SearchLog{
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Query:     q,
			Outcome:   models.OutcomeOK,
			ItemCount: i,
		})
	}

	router := setupRouter(&types.Dependencies{SearchLog: svc})

	w, body := doGet(router, "/search-logs?limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["count"])

	entries := body["entries"].([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "svelte", entries[0].(map[string]any)["query"])
	assert.Equal(t, "vue", entries[1].(map[string]any)["query"])

	w, body = doGet(router, "/search-logs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["count"])
}

func TestGet_Disabled(t *testing.T) {
	tests := []struct {
		name string
		deps *types.Dependencies
	}{
		{name: "no service", deps: &types.Dependencies{}},
		{name: "service without database", deps: &types.Dependencies{SearchLog: searchlog.NewService(nil, nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := doGet(setupRouter(tt.deps), "/search-logs")
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, searchlog.ErrDisabled.Error(), body["message"])
		})
	}
}

func TestGet_InvalidLimit(t *testing.T) {
	svc := new(MockSearchLog)
	router := setupRouter(&types.Dependencies{SearchLog: svc})

	for _, url := range []string{"/search-logs?limit=0", "/search-logs?limit=501", "/search-logs?limit=many"} {
		w, body := doGet(router, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
		assert.Equal(t, "error", body["status"], url)
	}
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGet_ListFailure(t *testing.T) {
	svc := new(MockSearchLog)
	svc.On("Enabled").Return(true)
	svc.On("List", mock.Anything, 10).Return(nil, errors.New("disk I/O error")).Once()

	w, body := doGet(setupRouter(&types.Dependencies{SearchLog: svc}), "/search-logs?limit=10")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "DATABASE_QUERY", body["error"])
	svc.AssertExpectations(t)
}
