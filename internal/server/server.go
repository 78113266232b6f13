package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ramosdigital/contact-api/internal/api/dto/common"
	"github.com/ramosdigital/contact-api/internal/api/handlers"
	"github.com/ramosdigital/contact-api/internal/api/middleware"
	"github.com/ramosdigital/contact-api/internal/config"
	"github.com/ramosdigital/contact-api/internal/logging"
	"github.com/ramosdigital/contact-api/internal/metrics"
	"github.com/ramosdigital/contact-api/internal/server/routes"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// Dependencies are the collaborators built by the caller.
type Dependencies struct {
	Contact handlers.ContactSubmitter
	// Redis backs the submission limiter; nil keeps it in memory
	Redis *redis.Client
}

// Server represents the HTTP server
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	logger   *logging.Logger
	registry *prometheus.Registry
}

// NewServer creates a new server instance with every route mounted
func NewServer(cfg *config.Config, logger *logging.Logger, deps Dependencies) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	router.HandleMethodNotAllowed = true
	// ClientIP honors forwarding headers only from these peers
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("Invalid trusted proxies %v, trusting none: %v", cfg.TrustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Not found", nil))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.NewErrorResponse(common.ErrCodeBadRequest, "Method not allowed", nil))
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(registry)

	opts := routes.Options{Config: cfg, Logger: logger, Registry: registry}
	routes.SetupGlobalMiddleware(router, opts)
	routes.Setup(router,
		&routes.Handlers{
			Contact: handlers.NewContactHandler(deps.Contact),
			Health:  handlers.NewHealthHandler(cfg.EmailProvider),
		},
		&routes.Middleware{
			Validation:    middleware.NewValidationMiddleware(logger),
			SubmitLimiter: middleware.NewSubmitLimiter(deps.Redis, cfg.SubmitRatePerMinute, cfg.SubmitBurst, logger),
		},
		opts,
	)

	return &Server{
		router:   router,
		cfg:      cfg,
		logger:   logger,
		registry: registry,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests for up
// to the configured grace period.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Long enough for two concurrent sends plus rendering
		WriteTimeout: s.cfg.EmailSendTimeout + 20*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server (grace %s)", s.cfg.ShutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return <-errCh
}
