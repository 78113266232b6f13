package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/ramosdigital/contact-api/internal/api/dto/common"
	"github.com/ramosdigital/contact-api/internal/api/dto/v1/contact"
	"github.com/ramosdigital/contact-api/internal/logging"
	"github.com/ramosdigital/contact-api/internal/models"
	"github.com/ramosdigital/contact-api/internal/service"
)

// Recovery turns a panic anywhere below it into a generic 500 JSON body.
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					GetRequestID(c),
					err,
					debug.Stack(),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, contact.ContactResponse{
					Success: false,
					Error:   service.FailureMessage(service.KindInternal, models.LocalePT),
					Code:    string(common.ErrCodeInternalServer),
				})
			}
		}()

		c.Next()
	}
}
