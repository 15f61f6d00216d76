package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/reporadar-api/api/health"
	"github.com/killallgit/reporadar-api/api/search"
	"github.com/killallgit/reporadar-api/api/searchlogs"
	"github.com/killallgit/reporadar-api/api/types"
	"github.com/killallgit/reporadar-api/api/version"
	_ "github.com/killallgit/reporadar-api/docs/swagger"
)

// RouteOptions carries the settings route registration needs
type RouteOptions struct {
	Build version.Info
	// RateLimit is nil when client rate limiting is disabled
	RateLimit *RateLimitOptions
}

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, opts RouteOptions, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, opts.Build)

	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	var limited []gin.HandlerFunc
	if opts.RateLimit != nil {
		limited = append(limited, PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, *opts.RateLimit))
	}

	v1 := engine.Group("/api/v1")

	search.RegisterRoutes(v1.Group("/github-search", limited...), deps)
	searchlogs.RegisterRoutes(v1.Group("/search-logs", limited...), deps)

	// unversioned path kept for existing clients
	search.RegisterRoutes(engine.Group("/github-search", limited...), deps)
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  types.StatusError,
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
