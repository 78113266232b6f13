package routes

import (
	"github.com/ramosdigital/contact-api/internal/api/handlers"
	"github.com/ramosdigital/contact-api/internal/api/middleware"
	"github.com/ramosdigital/contact-api/internal/config"
	"github.com/ramosdigital/contact-api/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains the per-route middleware
type Middleware struct {
	Validation    *middleware.ValidationMiddleware
	SubmitLimiter *middleware.SubmitLimiter
}

// Options carries what the global middleware needs
type Options struct {
	Config   *config.Config
	Logger   *logging.Logger
	Registry *prometheus.Registry
}
