// internal/services/restoration_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/projektfabrik/pf-backend/internal/cache"
	"github.com/projektfabrik/pf-backend/internal/events"
	"github.com/projektfabrik/pf-backend/internal/models"
)

var ErrReviewNotFound = errors.New("restoration review not found")

// RestorationService handles the reinstatement flow for removed projects.
// The ai path runs the automated check and may auto-approve; the team path
// parks the request until an admin decides.
type RestorationService struct {
	db         *gorm.DB
	cache      *cache.Cache
	dispatcher *events.Dispatcher
	reviewer   *AIReviewService
}

func NewRestorationService(db *gorm.DB, cache *cache.Cache, dispatcher *events.Dispatcher, reviewer *AIReviewService) *RestorationService {
	return &RestorationService{
		db:         db,
		cache:      cache,
		dispatcher: dispatcher,
		reviewer:   reviewer,
	}
}

// Request moves a removed project to restoration_requested. With
// review_type=ai the automated review runs immediately; an approved outcome
// reinstates the project with a fresh visibility window, anything else
// leaves it waiting for the team. A failing review service is not an error
// for the caller.
func (s *RestorationService) Request(id uuid.UUID, reviewType models.ReviewType) (*models.ProjectRequest, *models.RestorationReview, error) {
	if !reviewType.Valid() {
		return nil, nil, fmt.Errorf("%w: review_type must be ai or team", ErrInvalidStatus)
	}

	var project models.ProjectRequest
	if err := s.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("database error: %w", err)
	}

	if project.Status == models.ProjectStatusRestorationRequested {
		return &project, nil, nil
	}
	if project.Status != models.ProjectStatusRemoved {
		return nil, nil, fmt.Errorf("%w: only removed projects can request restoration", ErrInvalidTransition)
	}

	oldStatus := project.Status
	project.Status = models.ProjectStatusRestorationRequested
	if err := s.db.Save(&project).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to update project status: %w", err)
	}

	s.dispatcher.Publish(events.Event{
		Type:      events.EventStatusChanged,
		Project:   &project,
		OldStatus: oldStatus,
		NewStatus: project.Status,
	})

	if reviewType != models.ReviewTypeAI {
		return &project, nil, nil
	}

	review, err := s.runAIReview(&project)
	if err != nil {
		// The request stays parked for the team; the review can be retried.
		logrus.WithError(err).WithField("project_id", project.ID).
			Warn("Automated restoration review failed")
		return &project, nil, nil
	}

	return &project, review, nil
}

func (s *RestorationService) runAIReview(project *models.ProjectRequest) (*models.RestorationReview, error) {
	review, err := s.reviewer.ReviewRestoration(project)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to persist restoration review: %w", err)
	}

	if review.Status == models.ReviewStatusApproved {
		if _, err := s.decide(project, models.ProjectStatusApproved, review); err != nil {
			return review, err
		}
	}

	return review, nil
}

// Approve reinstates a restoration-requested project.
func (s *RestorationService) Approve(id uuid.UUID) (*models.ProjectRequest, error) {
	project, err := s.getRestorationRequested(id)
	if err != nil {
		return nil, err
	}
	return s.decide(project, models.ProjectStatusApproved, nil)
}

// Reject declines the restoration; the record moves to rejected and the
// requester has to submit a fresh project request.
func (s *RestorationService) Reject(id uuid.UUID) (*models.ProjectRequest, error) {
	project, err := s.getRestorationRequested(id)
	if err != nil {
		return nil, err
	}
	return s.decide(project, models.ProjectStatusRejected, nil)
}

func (s *RestorationService) getRestorationRequested(id uuid.UUID) (*models.ProjectRequest, error) {
	var project models.ProjectRequest
	if err := s.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if project.Status != models.ProjectStatusRestorationRequested {
		return nil, fmt.Errorf("%w: project has no open restoration request", ErrInvalidTransition)
	}

	return &project, nil
}

func (s *RestorationService) decide(project *models.ProjectRequest, target models.ProjectStatus, review *models.RestorationReview) (*models.ProjectRequest, error) {
	oldStatus := project.Status

	if target == models.ProjectStatusApproved {
		project.Approve(time.Now())
	} else {
		project.Status = target
	}

	if err := s.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}

	s.cache.InvalidateApprovedProjects(context.Background())

	s.dispatcher.Publish(events.Event{
		Type:      events.EventRestorationDecided,
		Project:   project,
		OldStatus: oldStatus,
		NewStatus: project.Status,
		Review:    review,
	})

	return project, nil
}

// GetReview fetches a restoration review by its id.
func (s *RestorationService) GetReview(id uuid.UUID) (*models.RestorationReview, error) {
	var review models.RestorationReview
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &review, nil
}
