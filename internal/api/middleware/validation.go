package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ramosdigital/contact-api/internal/api/constants"
	"github.com/ramosdigital/contact-api/internal/api/dto/common"
	"github.com/ramosdigital/contact-api/internal/api/dto/v1/contact"
	"github.com/ramosdigital/contact-api/internal/logging"
)

// ValidationMiddleware binds request bodies before they reach handlers.
// Field rules are enforced by the service, so binding only checks shape.
type ValidationMiddleware struct {
	logger *logging.Logger
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(logger *logging.Logger) *ValidationMiddleware {
	return &ValidationMiddleware{logger: logger}
}

// ValidateContactRequest binds a form-encoded, multipart or JSON contact form
// and stores it under constants.ContextKeyContact.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest

		// ShouldBind picks form, multipart or JSON from the Content-Type
		if err := c.ShouldBind(&req); err != nil {
			if IsBodyTooLarge(err) {
				abortTooLarge(c)
				return
			}
			m.logger.Info("[CONTACT] unreadable body from %s: %v", c.ClientIP(), err)
			c.AbortWithStatusJSON(http.StatusBadRequest, contact.ContactResponse{
				Success: false,
				Error:   localizedMessage(c, msgBadRequest),
				Code:    string(common.ErrCodeBadRequest),
			})
			return
		}

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}
