package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"certtrack-backend/internal/certificates"
	"certtrack-backend/internal/services/health"
	"certtrack-backend/internal/shared/config"
	"certtrack-backend/internal/shared/metrics"
	"certtrack-backend/internal/shared/server/middleware"
)

// RouterDeps carries the wired dependencies the router needs.
type RouterDeps struct {
	Config              config.Config
	HealthService       *health.Service
	CertificatesHandler *certificates.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	healthSvc := deps.HealthService
	if healthSvc == nil {
		healthSvc = &health.Service{}
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, healthSvc.Status())
	})
	r.GET("/metrics", metrics.Handler())

	if deps.Config.ObjectStoreType == "local" && deps.Config.LocalStoreDir != "" {
		r.Static("/files", deps.Config.LocalStoreDir)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.Actor())
	if deps.CertificatesHandler != nil {
		deps.CertificatesHandler.RegisterRoutes(api)
	}

	return r
}
