package api

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/killallgit/reporadar-api/api/types"
	apperrors "github.com/killallgit/reporadar-api/pkg/errors"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = 10 * time.Minute
)

// clientLimiter holds a rate limiter and its last accessed time
type clientLimiter struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

func (cl *clientLimiter) touch(now time.Time) {
	cl.mu.Lock()
	cl.lastSeen = now
	cl.mu.Unlock()
}

func (cl *clientLimiter) idleSince(now time.Time) time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return now.Sub(cl.lastSeen)
}

// CORSOptions configures the CORS middleware
type CORSOptions struct {
	Origins []string
	Methods []string
	Headers []string
}

// CORS allows origins that start with one of the configured origins.
// An origin of "*" allows every caller.
func CORS(opts CORSOptions) gin.HandlerFunc {
	methods := strings.Join(opts.Methods, ", ")
	if methods == "" {
		methods = "GET, OPTIONS"
	}
	headers := strings.Join(opts.Headers, ", ")
	if headers == "" {
		headers = "Content-Type, Authorization"
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed, value := allowOrigin(opts.Origins, origin); allowed {
			c.Header("Access-Control-Allow-Origin", value)
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
			c.Header("Access-Control-Expose-Headers", logger.CorrelationHeader)
			c.Header("Access-Control-Max-Age", "86400")
			if value != "*" {
				c.Header("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func allowOrigin(allowList []string, origin string) (bool, string) {
	for _, allowed := range allowList {
		if allowed == "*" {
			return true, "*"
		}
		if origin != "" && strings.HasPrefix(origin, allowed) {
			return true, origin
		}
	}
	return false, ""
}

// SecurityHeaders sets a conservative set of response hardening headers
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("X-DNS-Prefetch-Control", "off")
		c.Header("X-Download-Options", "noopen")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		c.Next()
	}
}

// CorrelationID reads x-correlation-id or generates one, stores it on the
// request context and echoes it in the response.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(logger.CorrelationHeader))
		if id == "" {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(logger.ContextWithCorrelationID(c.Request.Context(), id))
		c.Header(logger.CorrelationHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request. Health probes are skipped.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("http")

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			logger.CorrelationField(c.Request.Context()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// Recovery converts panics into a 500 JSON response
func Recovery(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			logger.CorrelationField(c.Request.Context()),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"))

		types.SendError(c, apperrors.New(apperrors.ErrCodeInternal, "Internal server error"))
		c.Abort()
	})
}

func RequestSizeLimit() gin.HandlerFunc {
	return RequestSizeLimitWithSize(1024 * 1024)
}

func RequestSizeLimitWithSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			types.SendError(c, apperrors.New(apperrors.ErrCodeValidation, "Request body too large").
				WithHTTPCode(http.StatusRequestEntityTooLarge))
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RateLimitOptions allows Requests per Window with bursts of Burst
type RateLimitOptions struct {
	Requests int
	Window   time.Duration
	Burst    int
}

func (o RateLimitOptions) limit() rate.Limit {
	if o.Requests <= 0 || o.Window <= 0 {
		return rate.Inf
	}
	return rate.Every(o.Window / time.Duration(o.Requests))
}

func (o RateLimitOptions) String() string {
	return fmt.Sprintf("%d requests per %s", o.Requests, o.Window)
}

func PerClientRateLimit(rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once, opts RateLimitOptions) gin.HandlerFunc {
	cleanupInitialized.Do(func() {
		go cleanupOldRateLimiters(rateLimiters, cleanupStop)
	})

	limit := opts.limit()
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		now := time.Now()

		limiterInterface, _ := rateLimiters.LoadOrStore(clientIP, &clientLimiter{
			limiter:  rate.NewLimiter(limit, burst),
			lastSeen: now,
		})

		cl := limiterInterface.(*clientLimiter)
		cl.touch(now)

		if !cl.limiter.Allow() {
			types.SendError(c, apperrors.RateLimitError(c.FullPath(), opts.String()))
			c.Abort()
			return
		}
		c.Next()
	}
}

func cleanupOldRateLimiters(rateLimiters *sync.Map, cleanupStop chan struct{}) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			evictIdleLimiters(rateLimiters, time.Now())
		case <-cleanupStop:
			return
		}
	}
}

func evictIdleLimiters(rateLimiters *sync.Map, now time.Time) {
	rateLimiters.Range(func(key, value any) bool {
		if value.(*clientLimiter).idleSince(now) > limiterIdleTimeout {
			rateLimiters.Delete(key)
		}
		return true
	})
}
