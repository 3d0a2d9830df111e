// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

var supportedLangs = map[string]bool{"en": true, "de": true}

// I18nMiddleware resolves the response language from the lang query
// parameter or the Accept-Language header.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			header := c.GetHeader("Accept-Language")
			if header != "" {
				// Take the primary tag of the first entry
				first := strings.SplitN(header, ",", 2)[0]
				lang = strings.SplitN(strings.TrimSpace(first), "-", 2)[0]
			}
		}

		if !supportedLangs[lang] {
			lang = "en"
		}

		c.Set("lang", lang)
		c.Next()
	}
}
