// internal/services/ai_review_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/projektfabrik/pf-backend/internal/config"
	"github.com/projektfabrik/pf-backend/internal/models"
)

// AIReviewService calls the external restoration review model. The decision
// logic lives in that service; this client only ships the project data,
// enforces a timeout and maps the response onto a RestorationReview.
type AIReviewService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type reviewRequest struct {
	ProjectName string `json:"project_name"`
	ProjectType string `json:"project_type"`
	Description string `json:"description"`
	ProjectLink string `json:"project_link,omitempty"`
}

type reviewResponse struct {
	Status          string   `json:"status"`
	ConfidenceScore int      `json:"confidence_score"`
	DecisionReason  string   `json:"decision_reason"`
	Problems        []string `json:"problems"`
	Recommendations []string `json:"recommendations"`
}

func NewAIReviewService(cfg config.ReviewConfig) *AIReviewService {
	return &AIReviewService{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Configured reports whether an external review endpoint is set up.
func (s *AIReviewService) Configured() bool {
	return s.baseURL != ""
}

// ReviewRestoration runs the automated check and returns an unsaved
// RestorationReview for the given project.
func (s *AIReviewService) ReviewRestoration(project *models.ProjectRequest) (*models.RestorationReview, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("review service not configured")
	}

	req := reviewRequest{
		ProjectName: project.ProjectName,
		ProjectType: string(project.ProjectType),
		Description: project.Description,
	}
	if project.ProjectLink != nil {
		req.ProjectLink = *project.ProjectLink
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode review request: %w", err)
	}

	started := time.Now()

	httpReq, err := http.NewRequest(http.MethodPost, s.baseURL+"/v1/restoration-reviews", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("review request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("review service returned status %d", resp.StatusCode)
	}

	var result reviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode review response: %w", err)
	}

	status := models.ReviewStatusRejected
	if result.Status == string(models.ReviewStatusApproved) {
		status = models.ReviewStatusApproved
	}

	score := result.ConfidenceScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &models.RestorationReview{
		ProjectRequestID:      project.ID,
		ReviewType:            models.ReviewTypeAI,
		Status:                status,
		ConfidenceScore:       score,
		DecisionReason:        result.DecisionReason,
		Problems:              result.Problems,
		Recommendations:       result.Recommendations,
		ProcessingTimeMinutes: time.Since(started).Minutes(),
		ReviewedAt:            time.Now(),
	}, nil
}
