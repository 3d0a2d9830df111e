// internal/services/ai_review_service_test.go
package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/projektfabrik/pf-backend/internal/config"
	"github.com/projektfabrik/pf-backend/internal/models"
)

func TestReviewRestoration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/restoration-reviews", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req reviewRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Portfolio Site", req.ProjectName)

		json.NewEncoder(w).Encode(reviewResponse{
			Status:          "approved",
			ConfidenceScore: 92,
			DecisionReason:  "Site is reachable and content matches the listing",
			Problems:        []string{},
			Recommendations: []string{"Add an imprint page"},
		})
	}))
	defer server.Close()

	service := NewAIReviewService(config.ReviewConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		TimeoutSeconds: 5,
	})

	review, err := service.ReviewRestoration(&models.ProjectRequest{
		ProjectName: "Portfolio Site",
		ProjectType: models.ProjectTypeWebsite,
		Description: "Personal portfolio",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, review.Status)
	assert.Equal(t, models.ReviewTypeAI, review.ReviewType)
	assert.Equal(t, 92, review.ConfidenceScore)
	assert.Equal(t, "Site is reachable and content matches the listing", review.DecisionReason)
	assert.Equal(t, []string{"Add an imprint page"}, []string(review.Recommendations))
	assert.False(t, review.ReviewedAt.IsZero())
}

func TestReviewRestorationClampsScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(reviewResponse{
			Status:          "rejected",
			ConfidenceScore: 150,
		})
	}))
	defer server.Close()

	service := NewAIReviewService(config.ReviewConfig{BaseURL: server.URL, TimeoutSeconds: 5})

	review, err := service.ReviewRestoration(&models.ProjectRequest{ProjectName: "Test"})
	assert.NoError(t, err)
	assert.Equal(t, 100, review.ConfidenceScore)
	assert.Equal(t, models.ReviewStatusRejected, review.Status)
}

func TestReviewRestorationUnknownStatusRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(reviewResponse{Status: "maybe", ConfidenceScore: 50})
	}))
	defer server.Close()

	service := NewAIReviewService(config.ReviewConfig{BaseURL: server.URL, TimeoutSeconds: 5})

	review, err := service.ReviewRestoration(&models.ProjectRequest{ProjectName: "Test"})
	assert.NoError(t, err)
	assert.Equal(t, models.ReviewStatusRejected, review.Status)
}

func TestReviewRestorationServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewAIReviewService(config.ReviewConfig{BaseURL: server.URL, TimeoutSeconds: 5})

	_, err := service.ReviewRestoration(&models.ProjectRequest{ProjectName: "Test"})
	assert.Error(t, err)
}

func TestReviewRestorationUnconfigured(t *testing.T) {
	service := NewAIReviewService(config.ReviewConfig{TimeoutSeconds: 5})

	assert.False(t, service.Configured())

	_, err := service.ReviewRestoration(&models.ProjectRequest{ProjectName: "Test"})
	assert.Error(t, err)
}
