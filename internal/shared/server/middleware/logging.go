package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"forms-backend/internal/shared/metrics"
	"forms-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request and records its latency.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()

		metrics.ObserveRequest(c.Request.Method, route, status, latency)

		applicationID, _ := c.Get("applicationId")
		telemetry.Info("request.complete", map[string]any{
			"request_id":     RequestIDFromContext(c),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"route":          route,
			"status":         status,
			"duration_ms":    float64(latency.Microseconds()) / 1000.0,
			"application_id": applicationID,
			"client_ip":      c.ClientIP(),
			"user_agent":     c.Request.UserAgent(),
		})
	}
}
