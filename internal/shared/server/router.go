package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forms-backend/internal/applications"
	"forms-backend/internal/contact"
	"forms-backend/internal/services/health"
	"forms-backend/internal/shared/config"
	"forms-backend/internal/shared/metrics"
	"forms-backend/internal/shared/server/middleware"
	"forms-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers mounted on the engine.
type RouterDeps struct {
	Config             config.Config
	ContactHandler     *contact.Handler
	ApplicationHandler *applications.Handler
	Health             *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	company := deps.Config.CompanyName
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s Backend is running!", company)
	})
	r.GET("/healthz", func(c *gin.Context) {
		status, ok := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	r.GET("/metrics", metrics.Handler())

	if deps.ContactHandler != nil {
		deps.ContactHandler.RegisterRoutes(r)
	}
	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.RegisterRoutes(r)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
