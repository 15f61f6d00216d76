package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Info describes the running build
type Info struct {
	Version   string `json:"version" example:"1.0.0"`
	GitCommit string `json:"commit" example:"abc1234"`
	BuildTime string `json:"build_time" example:"2024-05-01T12:00:00Z"`
}

// Response is the body of the version endpoint
type Response struct {
	Name        string `json:"name" example:"Repo Radar API"`
	Description string `json:"description"`
	Status      string `json:"status" example:"running"`
	Info
}

// Get handles version requests
// @Summary      Service version
// @Description  Returns the service name and build information
// @Tags         version
// @Produce      json
// @Success      200 {object} version.Response
// @Router       / [get]
func Get(info Info) gin.HandlerFunc {
	if info.Version == "" {
		info.Version = "dev"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Name:        "Repo Radar API",
			Description: "Repository search for GitHub with name filtering and page backfill",
			Status:      "running",
			Info:        info,
		})
	}
}
