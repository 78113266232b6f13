package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ramosdigital/contact-api/internal/logging"
	"github.com/ramosdigital/contact-api/internal/middleware"
)

// RequestLogger is a middleware that logs one line per request. The logger
// drops the lines unless request logging is enabled (LOG_REQUESTS=true).
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			c.ClientIP(),
			middleware.GetRequestID(c),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
