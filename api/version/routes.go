package version

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers version routes
func RegisterRoutes(engine *gin.Engine, info Info) {
	engine.GET("/", Get(info))
}
