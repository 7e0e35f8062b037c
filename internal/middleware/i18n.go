// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelierhub/marketplace-backend/internal/i18n"
)

// I18nMiddleware resolves the request language from the query string or the
// Accept-Language header and stores it on the context.
func I18nMiddleware() gin.HandlerFunc {
	supported := i18n.GetSupportedLanguages()

	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			accept := c.GetHeader("Accept-Language")
			if accept != "" {
				lang = strings.TrimSpace(strings.SplitN(accept, ",", 2)[0])
				if idx := strings.Index(lang, "-"); idx > 0 {
					lang = lang[:idx]
				}
			}
		}

		valid := false
		for _, s := range supported {
			if s == lang {
				valid = true
				break
			}
		}
		if !valid {
			lang = "en"
		}

		c.Set("lang", lang)
		c.Next()
	}
}
