package search

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/reporadar-api/api/types"
)

// RegisterRoutes registers repository search routes
func RegisterRoutes(router gin.IRoutes, deps *types.Dependencies) {
	// GET {prefix}/search (router already includes /github-search prefix)
	router.GET("/search", Get(deps))
}
