package routes

import (
	"net/http"

	"github.com/ramosdigital/contact-api/internal/api/handlers"
	"github.com/ramosdigital/contact-api/internal/api/middleware"
	basemw "github.com/ramosdigital/contact-api/internal/middleware"
	"github.com/ramosdigital/contact-api/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Global request budget for the whole process
var globalRateLimit = middleware.RateLimitConfig{
	RPS:   10,
	Burst: 20,
}

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, opts Options) {
	SetupHealthRoutes(router, h.Health, opts)

	// The site posts to /api/contact; /api/v1/contact/submit is kept for older clients
	SetupContactRoutes(router.Group("/api"), "/contact", h.Contact, m, opts)
	SetupContactRoutes(router.Group("/api/v1/contact"), "/submit", h.Contact, m, opts)

	opts.Logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, opts Options) {
	cfg := opts.Config

	router.Use(basemw.Recovery(opts.Logger))
	router.Use(basemw.RequestID())
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(otelgin.Middleware(telemetry.ServiceName, otelgin.WithFilter(func(r *http.Request) bool {
		return r.URL.Path != "/metrics" && r.URL.Path != "/health"
	})))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.AllowedOrigins, cfg.IsProduction()))
	router.Use(middleware.RateLimitMiddleware(globalRateLimit))
}

// SetupHealthRoutes configures health, version and metrics endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler, opts Options) {
	router.GET("/health", health.Check)
	router.GET("/api/version", health.Version)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{Registry: opts.Registry})))
}
