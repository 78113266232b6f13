package routes

import (
	"github.com/ramosdigital/contact-api/internal/api/handlers"
	"github.com/ramosdigital/contact-api/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the public contact form endpoint
func SetupContactRoutes(router *gin.RouterGroup, path string, contact *handlers.ContactHandler, m *Middleware, opts Options) {
	// Limit the body first, then the submitter, then bind
	router.POST(path,
		middleware.BodyLimit(opts.Config.MaxBodyBytes),
		m.SubmitLimiter.Middleware(),
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)
}
