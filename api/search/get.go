package search

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/killallgit/reporadar-api/api/types"
	"github.com/killallgit/reporadar-api/internal/services/searchlog"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

// searchTimeout bounds one search including every backfill page
const searchTimeout = 60 * time.Second

// Get handles repository search requests
// @Summary      Search GitHub repositories
// @Description  Search repositories through the GitHub search API. When ignore is set, repositories whose name contains it (case-insensitive) are removed and later pages are fetched until per_page results are collected or upstream runs out. total_count and incomplete_results always describe the first upstream page.
// @Tags         github-search
// @Produce      json
// @Param        query     query  string  true   "Search keywords"
// @Param        sort      query  string  false  "Sort field"  Enums(stars, forks, help-wanted-issues, updated)
// @Param        order     query  string  false  "Sort order"  Enums(asc, desc)
// @Param        ignore    query  string  false  "Drop repositories whose name contains this text"
// @Param        page      query  int     false  "Page number"  minimum(1)
// @Param        per_page  query  int     false  "Results per page"  minimum(1)  maximum(100)
// @Success      200 {object} types.RepositorySearchResponse "Search results"
// @Failure      400 {object} types.ValidationErrorResponse "Invalid query parameters"
// @Failure      422 {object} types.ErrorResponse "GitHub rejected the query"
// @Failure      429 {object} types.ErrorResponse "GitHub rate limit exceeded"
// @Failure      500 {object} types.ErrorResponse "Failed to process repository search"
// @Failure      502 {object} types.ErrorResponse "GitHub API error"
// @Failure      503 {object} types.ErrorResponse "GitHub unavailable"
// @Failure      504 {object} types.ErrorResponse "GitHub request timed out"
// @Router       /api/v1/github-search/search [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query types.SearchRepositoriesQuery
		if !types.BindQueryOrError(c, &query) {
			return
		}

		if deps == nil || deps.SearchService == nil {
			types.SendServiceUnavailable(c, "Search service not available")
			return
		}

		req := query.ToSearchRequest()
		log := deps.Log()

		ctx, cancel := context.WithTimeout(c.Request.Context(), searchTimeout)
		defer cancel()

		start := time.Now()
		result, err := deps.SearchService.Search(ctx, req)
		duration := time.Since(start)

		if deps.SearchLog != nil {
			deps.SearchLog.Record(ctx, searchlog.NewEntry(ctx, req, result, err, duration))
		}

		if err != nil {
			appErr := types.FromSearchError(err)
			log.Warn("repository search failed",
				logger.CorrelationField(ctx),
				zap.String("query", req.Query),
				zap.String("code", string(appErr.Code)),
				zap.Duration("duration", duration),
				zap.Error(err))
			types.SendError(c, appErr)
			return
		}

		log.Info("repository search",
			logger.CorrelationField(ctx),
			zap.String("query", req.Query),
			zap.String("ignore", req.Ignore),
			zap.Int("items", len(result.Items)),
			zap.Int("total_count", result.TotalCount),
			zap.Duration("duration", duration))

		c.JSON(http.StatusOK, types.FromSearchResult(result))
	}
}
