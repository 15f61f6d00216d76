package searchlogs

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/reporadar-api/api/types"
)

// RegisterRoutes registers search audit routes
func RegisterRoutes(router gin.IRoutes, deps *types.Dependencies) {
	router.GET("", Get(deps))
}
