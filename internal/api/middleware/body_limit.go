package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ramosdigital/contact-api/internal/api/dto/common"
	"github.com/ramosdigital/contact-api/internal/api/dto/v1/contact"
)

// BodyLimit caps the request body at maxBytes. Requests that declare a larger
// Content-Length are refused up front; the rest fail while being read.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortTooLarge(c)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// IsBodyTooLarge reports whether err came from a body over the limit.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func abortTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, contact.ContactResponse{
		Success: false,
		Error:   localizedMessage(c, msgTooLarge),
		Code:    string(common.ErrCodePayloadTooLarge),
	})
}
