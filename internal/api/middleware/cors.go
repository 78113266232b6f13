package middleware

import (
	"net/http"
	"slices"

	"github.com/ramosdigital/contact-api/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// CORS middleware. Outside production any origin is reflected. In production
// only origins from the allow list (or "*") get CORS headers, and browser
// requests from other origins are refused.
func CORS(allowedOrigins []string, production bool) gin.HandlerFunc {
	wildcard := slices.Contains(allowedOrigins, "*")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		switch {
		case origin == "":
			// Same-origin or non-browser client
		case !production || wildcard || slices.Contains(allowedOrigins, origin):
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse(common.ErrCodeForbidden, "Origin not allowed", nil))
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Accept-Language, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Retry-After")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
