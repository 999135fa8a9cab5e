package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/logger"
	"github.com/MikeMC777/ordenes-skincare/internal/metric"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderAdminKey  = "X-Admin-Key"

	_slowRequest = 200 * time.Millisecond
)

// RequestID keeps the caller's X-Request-ID or generates one, and stores it
// in the request context for logger.Ctx.
func RequestID(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" || len(rid) > 128 {
			rid = log.GenerateRequestID()
		}
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), rid))
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

// Logger writes one access line per request and feeds the HTTP metrics.
// Paths are recorded by route template so ids do not blow up label
// cardinality.
func Logger(log logger.Logger, metrics metric.HTTP) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		log.Ctx(c.Request.Context()).Infow("http request",
			"method", method,
			"path", c.Request.URL.Path,
			"route", path,
			"status", status,
			"duration", latency.String(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)

		metrics.Request(method, path, status, latency)
		if latency > _slowRequest {
			metrics.SlowRequest(method, path, status, latency)
		}
	}
}

// Timeout bounds the request context. Handlers see context.DeadlineExceeded
// from the store and RenderError maps it to 504.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AdminKey guards admin routes with the bcrypt hash of a shared key sent in
// X-Admin-Key. An empty hash leaves the routes open (local development).
func AdminKey(hash string, log logger.Logger) gin.HandlerFunc {
	if hash == "" {
		log.Warnw("admin routes are not protected; set ADMIN_KEY_HASH")
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderAdminKey)
		if key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			log.Ctx(c.Request.Context()).Warnw("admin key rejected",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"key_present", key != "",
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "missing or invalid admin key",
				Kind:  "unauthorized",
			})
			return
		}
		c.Next()
	}
}
