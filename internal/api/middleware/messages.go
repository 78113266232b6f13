package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ramosdigital/contact-api/internal/models"
)

type messageKey int

const (
	msgTooLarge messageKey = iota
	msgRateLimited
	msgBadRequest
)

var middlewareMessages = map[models.Locale]map[messageKey]string{
	models.LocalePT: {
		msgTooLarge:    "Pedido demasiado grande.",
		msgRateLimited: "Demasiados pedidos. Tente novamente mais tarde.",
		msgBadRequest:  "Pedido inválido.",
	},
	models.LocaleEN: {
		msgTooLarge:    "Request too large.",
		msgRateLimited: "Too many requests. Please try again later.",
		msgBadRequest:  "Invalid request.",
	},
}

// requestLocale picks the locale before the body is parsed: ?locale= first,
// then the first Accept-Language tag.
func requestLocale(c *gin.Context) models.Locale {
	if l := c.Query("locale"); l != "" {
		return models.ParseLocale(l, models.LocalePT)
	}
	accept := c.GetHeader("Accept-Language")
	if i := strings.IndexAny(accept, ",;"); i >= 0 {
		accept = accept[:i]
	}
	return models.ParseLocale(accept, models.LocalePT)
}

func localizedMessage(c *gin.Context, key messageKey) string {
	return middlewareMessages[requestLocale(c)][key]
}
