package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"

	"github.com/killallgit/reporadar-api/api"
	"github.com/killallgit/reporadar-api/api/types"
	"github.com/killallgit/reporadar-api/internal/database"
	"github.com/killallgit/reporadar-api/internal/models"
	"github.com/killallgit/reporadar-api/internal/services/cleanup"
	"github.com/killallgit/reporadar-api/internal/services/github"
	"github.com/killallgit/reporadar-api/internal/services/reposearch"
	"github.com/killallgit/reporadar-api/internal/services/searchlog"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

const upstream = "https://api.github.test"

// SearchTestSuite wires the full server against a stubbed GitHub
type SearchTestSuite struct {
	t         *testing.T
	db        *database.DB
	server    *api.Server
	searchLog searchlog.Service
	repo      searchlog.Repository
}

// setupSearchTestSuite builds an isolated server with a file backed audit log
func setupSearchTestSuite(t *testing.T) *SearchTestSuite {
	gin.SetMode(gin.TestMode)

	gock.DisableNetworking()
	t.Cleanup(func() {
		gock.Off()
		gock.EnableNetworking()
	})

	db, err := database.Initialize(filepath.Join(t.TempDir(), "audit.db"), false, nil)
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, db.Migrate(), "Failed to migrate test database")
	t.Cleanup(func() { db.Close() })

	client, err := github.NewClient(github.Config{BaseURL: upstream + "/"})
	require.NoError(t, err, "Failed to create GitHub client")

	repo := searchlog.NewRepository(db.DB)
	suite := &SearchTestSuite{
		t:         t,
		db:        db,
		repo:      repo,
		searchLog: searchlog.NewService(repo, nil),
	}

	suite.server = api.NewServer(api.Options{})
	suite.server.SetDependencies(&types.Dependencies{
		DB:            db,
		SearchService: reposearch.NewService(reposearch.NewGitHubAdapter(client), reposearch.WithMaxBackfillPages(5)),
		SearchLog:     suite.searchLog,
	})
	require.NoError(t, suite.server.Initialize())
	t.Cleanup(func() { _ = suite.server.Shutdown(context.Background()) })

	return suite
}

func (s *SearchTestSuite) get(path string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	s.server.Engine().ServeHTTP(w, req)
	return w
}

func (s *SearchTestSuite) logs() []models.SearchLog {
	entries, err := s.searchLog.List(context.Background(), 50)
	require.NoError(s.t, err)
	return entries
}

func repoJSON(id int, owner, name string) map[string]any {
	return map[string]any{
		"id":        id,
		"name":      name,
		"full_name": owner + "/" + name,
		"owner":     map[string]any{"login": owner},
	}
}

func TestSearch_BackfillsAcrossUpstreamPages(t *testing.T) {
	suite := setupSearchTestSuite(t)

	gock.New(upstream).
		Get("/search/repositories").
		MatchParam("q", "^nestjs$").
		MatchParam("page", "^1$").
		MatchParam("per_page", "^3$").
		MatchHeader(logger.CorrelationHeader, "^it-1$").
		Reply(200).
		JSON(map[string]any{
			"total_count":        5,
			"incomplete_results": false,
			"items": []map[string]any{
				repoJSON(1, "nestjs", "nest"),
				repoJSON(2, "acme", "nest-starter"),
				repoJSON(3, "acme", "starter-kit"),
			},
		})
	gock.New(upstream).
		Get("/search/repositories").
		MatchParam("page", "^2$").
		Reply(200).
		JSON(map[string]any{
			"total_count":        5,
			"incomplete_results": false,
			"items": []map[string]any{
				repoJSON(4, "nestjs", "nest-cli"),
				repoJSON(5, "nestjs", "docs.nestjs.com"),
			},
		})

	w := suite.get("/api/v1/github-search/search?query=nestjs&ignore=starter&per_page=3",
		map[string]string{logger.CorrelationHeader: "it-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "it-1", w.Header().Get(logger.CorrelationHeader))

	var body types.RepositorySearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.TotalCount)
	require.Len(t, body.Items, 3)
	assert.Equal(t, "nestjs/nest", body.Items[0].FullName)
	assert.Equal(t, "nestjs/nest-cli", body.Items[1].FullName)
	assert.Equal(t, "nestjs/docs.nestjs.com", body.Items[2].FullName)
	assert.True(t, gock.IsDone())

	entries := suite.logs()
	require.Len(t, entries, 1)
	assert.Equal(t, "it-1", entries[0].CorrelationID)
	assert.Equal(t, "starter", entries[0].Ignore)
	assert.Equal(t, 3, entries[0].ItemCount)
	assert.True(t, entries[0].Succeeded())
}

func TestSearch_IgnoreMatchingQueryShortcuts(t *testing.T) {
	suite := setupSearchTestSuite(t)

	w := suite.get("/api/v1/github-search/search?query=React&ignore=react", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body types.RepositorySearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Zero(t, body.TotalCount)
	assert.Empty(t, body.Items)
	assert.False(t, gock.HasUnmatchedRequest())
}

func TestSearch_UpstreamFailureIsMappedAndAudited(t *testing.T) {
	suite := setupSearchTestSuite(t)

	gock.New(upstream).
		Get("/search/repositories").
		Reply(503).
		JSON(map[string]any{"message": "Service Unavailable"})

	w := suite.get("/github-search/search?query=go", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, types.StatusError, body.Status)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", body.Error)

	entries := suite.logs()
	require.Len(t, entries, 1)
	assert.Equal(t, models.OutcomeError, entries[0].Outcome)
	assert.Equal(t, string(reposearch.KindUnavailable), entries[0].ErrorKind)
}

func TestSearch_ValidationFailureTouchesNothing(t *testing.T) {
	suite := setupSearchTestSuite(t)

	w := suite.get("/api/v1/github-search/search?query=go&per_page=500", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, gock.HasUnmatchedRequest())
	assert.Empty(t, suite.logs())
}

func TestSearchLogs_RetentionPrunesExpiredEntries(t *testing.T) {
	suite := setupSearchTestSuite(t)
	ctx := context.Background()

	old := &models.SearchLog{Query: "old", Outcome: models.OutcomeOK}
	require.NoError(t, suite.repo.Create(ctx, old))
	require.NoError(t, suite.db.Model(old).Update("created_at", time.Now().Add(-72*time.Hour)).Error)
	require.NoError(t, suite.repo.Create(ctx, &models.SearchLog{Query: "fresh", Outcome: models.OutcomeOK}))

	removed, err := cleanup.NewService(suite.repo, 24*time.Hour, time.Hour, nil).PruneOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	w := suite.get("/api/v1/search-logs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body types.SearchLogsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "fresh", body.Entries[0].Query)
}
