package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/killallgit/reporadar-api/api/types"
	"github.com/killallgit/reporadar-api/api/version"
	"github.com/killallgit/reporadar-api/internal/database"
	"github.com/killallgit/reporadar-api/pkg/config"
)

// Options configures the HTTP server
type Options struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodyBytes   int64
	CORS           CORSOptions
	RateLimit      *RateLimitOptions
	Build          version.Info
	Logger         *zap.Logger
}

// OptionsFromConfig derives server options from the application config
func OptionsFromConfig(cfg *config.Config, build version.Info, log *zap.Logger) Options {
	opts := Options{
		Address:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		CORS: CORSOptions{
			Origins: cfg.Security.CORSOrigins,
			Methods: cfg.Security.CORSMethods,
			Headers: cfg.Security.CORSHeaders,
		},
		Build:  build,
		Logger: log,
	}

	if cfg.RateLimiting.Enabled {
		opts.RateLimit = &RateLimitOptions{
			Requests: cfg.RateLimiting.Requests,
			Window:   cfg.RateLimiting.Window,
			Burst:    cfg.RateLimiting.Burst,
		}
	}

	return opts
}

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	db                 *database.DB
	opts               Options
	logger             *zap.Logger
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		// a search may walk several upstream pages
		opts.WriteTimeout = 90 * time.Second
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.MaxHeaderBytes <= 0 {
		opts.MaxHeaderBytes = 1 << 20 // 1 MB
	}

	engine := gin.New()
	engine.Use(Recovery(log))

	return &Server{
		engine:       engine,
		opts:         opts,
		logger:       log,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		httpServer: &http.Server{
			Addr:           opts.Address,
			Handler:        engine,
			ReadTimeout:    opts.ReadTimeout,
			WriteTimeout:   opts.WriteTimeout,
			IdleTimeout:    opts.IdleTimeout,
			MaxHeaderBytes: opts.MaxHeaderBytes,
		},
	}
}

// SetDatabase sets the database connection
func (s *Server) SetDatabase(db *database.DB) {
	s.db = db
	if s.dependencies == nil {
		s.dependencies = &types.Dependencies{}
	}
	s.dependencies.DB = db
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
	if deps != nil && deps.DB != nil {
		s.db = deps.DB
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	if s.dependencies == nil {
		s.dependencies = &types.Dependencies{}
	}
	if s.dependencies.Logger == nil {
		s.dependencies.Logger = s.logger
	}

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	s.engine.Use(CorrelationID())
	s.engine.Use(RequestLogger(s.logger))
	s.engine.Use(SecurityHeaders())
	s.engine.Use(CORS(s.opts.CORS))

	if s.opts.MaxBodyBytes > 0 {
		s.engine.Use(RequestSizeLimitWithSize(s.opts.MaxBodyBytes))
	} else {
		s.engine.Use(RequestSizeLimit())
	}
}

// setupRoutes delegates to the main route registration
func (s *Server) setupRoutes() {
	RegisterRoutes(s.engine, s.dependencies, RouteOptions{
		Build:     s.opts.Build,
		RateLimit: s.opts.RateLimit,
	}, s.rateLimiters, s.cleanupStop, &s.cleanupInitialized)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on l
func (s *Server) Serve(l net.Listener) error {
	return s.httpServer.Serve(l)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the rate limiter cleanup goroutine
	s.stopOnce.Do(func() { close(s.cleanupStop) })

	return s.httpServer.Shutdown(ctx)
}
