package server

import (
	"log/slog"

	"github.com/dhis2-sre/channel-admin/internal/metrics"
	"github.com/dhis2-sre/channel-admin/internal/middleware"
	"github.com/dhis2-sre/channel-admin/pkg/health"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GetEngine creates the Gin engine with the middleware every route shares. The health and metrics
// routes are registered under basePath without authentication.
func GetEngine(logger *slog.Logger, basePath string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization", middleware.CorrelationIDHeader)
	corsConfig.AddExposeHeaders(middleware.CorrelationIDHeader)
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)
	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	return r
}
