// internal/handlers/restoration_test.go
package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRestorationRouter() *gin.Engine {
	handler := NewRestorationHandler(nil)
	r := gin.New()
	r.POST("/project-requests/:id/request-restoration", handler.RequestRestoration)
	r.GET("/restoration-reviews/:id", handler.GetRestorationReview)
	return r
}

func TestRequestRestorationValidation(t *testing.T) {
	r := setupRestorationRouter()

	t.Run("invalid project id", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/project-requests/not-a-uuid/request-restoration", map[string]string{
			"review_type": "ai",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing review type", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/project-requests/a2f7c8ee-9a30-4e5b-9d0f-0f6c8e2b1a11/request-restoration", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "review_type is required")
	})
}

func TestGetRestorationReviewInvalidID(t *testing.T) {
	r := setupRestorationRouter()

	w := performRequest(r, http.MethodGet, "/restoration-reviews/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid restoration review ID")
}
