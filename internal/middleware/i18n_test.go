// internal/middleware/i18n_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupI18nRouter() *gin.Engine {
	r := gin.New()
	r.GET("/", I18nMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"lang": c.GetString("lang")})
	})
	return r
}

func TestI18nMiddleware(t *testing.T) {
	r := setupI18nRouter()

	tests := []struct {
		name     string
		query    string
		header   string
		expected string
	}{
		{"default", "", "", "en"},
		{"query param", "?lang=de", "", "de"},
		{"unsupported query falls back", "?lang=fr", "", "en"},
		{"accept-language header", "", "de-DE,de;q=0.9,en;q=0.8", "de"},
		{"unsupported header falls back", "", "fr-FR", "en"},
		{"query wins over header", "?lang=en", "de-DE", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.expected)
		})
	}
}
