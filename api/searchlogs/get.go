package searchlogs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/killallgit/reporadar-api/api/types"
	"github.com/killallgit/reporadar-api/internal/services/searchlog"
	apperrors "github.com/killallgit/reporadar-api/pkg/errors"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

// Get lists recent repository searches
// @Summary      List recent searches
// @Description  Returns the most recent repository searches recorded by the audit log, newest first
// @Tags         search-logs
// @Produce      json
// @Param        limit  query  int  false  "Maximum entries to return"  minimum(1)  maximum(500)  default(50)
// @Success      200 {object} types.SearchLogsResponse "Recent searches"
// @Failure      400 {object} types.ValidationErrorResponse "Invalid query parameters"
// @Failure      500 {object} types.ErrorResponse "Database error"
// @Failure      503 {object} types.ErrorResponse "Audit log disabled"
// @Router       /api/v1/search-logs [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query types.SearchLogsQuery
		if !types.BindQueryOrError(c, &query) {
			return
		}

		if deps == nil || deps.SearchLog == nil || !deps.SearchLog.Enabled() {
			types.SendServiceUnavailable(c, searchlog.ErrDisabled.Error())
			return
		}

		entries, err := deps.SearchLog.List(c.Request.Context(), query.Limit)
		if err != nil {
			if errors.Is(err, searchlog.ErrDisabled) {
				types.SendServiceUnavailable(c, err.Error())
				return
			}
			deps.Log().Error("failed to list search logs",
				logger.CorrelationField(c.Request.Context()),
				zap.Error(err))
			types.SendError(c, apperrors.DatabaseError("list search logs", err))
			return
		}

		c.JSON(http.StatusOK, types.SearchLogsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Recent searches retrieved successfully",
			},
			Entries: types.FromSearchLogs(entries),
			Count:   len(entries),
		})
	}
}
