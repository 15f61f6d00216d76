package types

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/reporadar-api/internal/services/reposearch"
	apperrors "github.com/killallgit/reporadar-api/pkg/errors"
)

// Handler utility functions to reduce duplication across handlers

// BindQueryOrError binds the query string to target and validates it.
// Returns false and sends a 400 listing every failure if binding fails.
func BindQueryOrError(c *gin.Context, target any) bool {
	if err := c.ShouldBindQuery(target); err != nil {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Status:  StatusError,
			Message: ValidationMessages(err, target),
			Error:   http.StatusText(http.StatusBadRequest),
		})
		return false
	}
	return true
}

// SendError renders an AppError
func SendError(c *gin.Context, err *apperrors.AppError) {
	c.JSON(err.GetHTTPCode(), ErrorResponse{
		Status:  StatusError,
		Message: err.Message,
		Error:   string(err.Code),
		Details: detailsOrNil(err.Details),
	})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Status: StatusError, Message: message})
}

// SendServiceUnavailable sends a standardized service unavailable response
func SendServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Status: StatusError, Message: message})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// FromSearchError maps an orchestrator failure to an AppError
func FromSearchError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}

	switch reposearch.UpstreamKind(err) {
	case reposearch.KindNotModified:
		return apperrors.Wrap(err, apperrors.ErrCodeUpstreamNotModified, err.Error())
	case reposearch.KindInvalidRequest:
		return apperrors.Wrap(err, apperrors.ErrCodeUpstreamInvalidRequest, err.Error())
	case reposearch.KindRateLimited:
		return apperrors.Wrap(err, apperrors.ErrCodeUpstreamRateLimit, err.Error())
	case reposearch.KindUnavailable:
		return apperrors.Wrap(err, apperrors.ErrCodeUpstreamUnavailable, err.Error())
	case reposearch.KindTimeout:
		return apperrors.Wrap(err, apperrors.ErrCodeUpstreamTimeout, err.Error())
	case reposearch.KindOther:
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, err.Error())
	}

	if reposearch.IsProcessing(err) {
		return apperrors.Wrap(err, apperrors.ErrCodeProcessing, "Failed to process repository search")
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Internal server error")
}

func detailsOrNil(details map[string]any) any {
	if len(details) == 0 {
		return nil
	}
	return details
}
