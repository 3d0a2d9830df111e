// internal/services/project_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projektfabrik/pf-backend/internal/cache"
	"github.com/projektfabrik/pf-backend/internal/events"
	"github.com/projektfabrik/pf-backend/internal/models"
	"github.com/projektfabrik/pf-backend/internal/utils"
)

var (
	ErrProjectNotFound   = errors.New("project request not found")
	ErrInvalidStatus     = errors.New("unknown status value")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// ProjectService is the status workflow engine. Every mutation commits to
// the database first and publishes its notification event afterwards;
// delivery problems never roll back or fail a transition.
type ProjectService struct {
	db         *gorm.DB
	cache      *cache.Cache
	dispatcher *events.Dispatcher
}

type CreateProjectRequest struct {
	ProjectName string  `json:"project_name" validate:"required,notblank,max=255"`
	ProjectType string  `json:"project_type" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Description string  `json:"description" validate:"required,notblank"`
	ProjectLink *string `json:"project_link,omitempty" validate:"omitempty,url"`
	UserID      *string `json:"user_id,omitempty"`
}

type BlockProjectRequest struct {
	Reason    string `json:"reason" validate:"required,notblank"`
	BlockedBy string `json:"blocked_by" validate:"required,notblank"`
}

func NewProjectService(db *gorm.DB, cache *cache.Cache, dispatcher *events.Dispatcher) *ProjectService {
	return &ProjectService{
		db:         db,
		cache:      cache,
		dispatcher: dispatcher,
	}
}

func (s *ProjectService) Create(req *CreateProjectRequest) (*models.ProjectRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	projectType := models.ProjectType(req.ProjectType)
	if !projectType.Valid() {
		return nil, fmt.Errorf("%w: %q is not a valid project type", ErrInvalidStatus, req.ProjectType)
	}

	project := &models.ProjectRequest{
		ProjectName:    strings.TrimSpace(req.ProjectName),
		ProjectType:    projectType,
		Email:          strings.TrimSpace(req.Email),
		Description:    req.Description,
		ProjectLink:    req.ProjectLink,
		UserID:         req.UserID,
		Status:         models.ProjectStatusPending,
		DurationMonths: models.DefaultDurationMonths,
	}

	if err := s.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project request: %w", err)
	}

	s.dispatcher.Publish(events.Event{
		Type:    events.EventProjectSubmitted,
		Project: project,
	})

	return project, nil
}

func (s *ProjectService) GetByID(id uuid.UUID) (*models.ProjectRequest, error) {
	var project models.ProjectRequest
	if err := s.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &project, nil
}

// GetAll returns every project request, newest first. Admin only.
func (s *ProjectService) GetAll(params utils.PaginationParams) ([]models.ProjectRequest, int64, error) {
	query := s.db.Model(&models.ProjectRequest{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count project requests: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "status", "project_name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var projects []models.ProjectRequest
	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch project requests: %w", err)
	}

	return projects, total, nil
}

// GetApproved returns the public listing of approved projects, newest first,
// served from the cache when possible.
func (s *ProjectService) GetApproved(ctx context.Context) ([]models.ProjectRequest, error) {
	var projects []models.ProjectRequest
	if s.cache.GetApprovedProjects(ctx, &projects) {
		return projects, nil
	}

	if err := s.db.
		Where("status = ?", models.ProjectStatusApproved).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch approved projects: %w", err)
	}

	s.cache.SetApprovedProjects(ctx, projects)
	return projects, nil
}

// UpdateStatus performs a generic admin transition. Requesting the status a
// record already holds is a no-op success; unknown statuses and transitions
// outside the table are rejected without touching the record.
func (s *ProjectService) UpdateStatus(id uuid.UUID, rawStatus string) (*models.ProjectRequest, error) {
	target, ok := models.NormalizeStatus(rawStatus)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, rawStatus)
	}

	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if target == project.Status {
		return project, nil
	}

	if !project.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, project.Status, target)
	}

	oldStatus := project.Status
	now := time.Now()

	if target == models.ProjectStatusApproved {
		project.Approve(now)
	} else {
		project.Status = target
	}

	if err := s.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}

	s.cache.InvalidateApprovedProjects(context.Background())

	s.dispatcher.Publish(events.Event{
		Type:      events.EventStatusChanged,
		Project:   project,
		OldStatus: oldStatus,
		NewStatus: project.Status,
	})

	return project, nil
}

// Block locks an approved or in-progress project. Reason and actor are both
// mandatory; the prior status is kept so unblock can restore it exactly.
func (s *ProjectService) Block(id uuid.UUID, req *BlockProjectRequest) (*models.ProjectRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if project.Status == models.ProjectStatusBlocked {
		return project, nil
	}

	if !project.Blockable() {
		return nil, fmt.Errorf("%w: only approved or in-progress projects can be blocked", ErrInvalidTransition)
	}

	oldStatus := project.Status
	reason := strings.TrimSpace(req.Reason)
	blockedBy := strings.TrimSpace(req.BlockedBy)

	project.PreBlockStatus = &oldStatus
	project.Status = models.ProjectStatusBlocked
	project.BlockReason = &reason
	project.BlockedBy = &blockedBy

	if err := s.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("failed to block project: %w", err)
	}

	s.cache.InvalidateApprovedProjects(context.Background())

	s.dispatcher.Publish(events.Event{
		Type:      events.EventStatusChanged,
		Project:   project,
		OldStatus: oldStatus,
		NewStatus: models.ProjectStatusBlocked,
	})

	return project, nil
}

// Unblock restores the status the project held before it was blocked.
// Legacy rows without a recorded pre-block status fall back to in_progress.
func (s *ProjectService) Unblock(id uuid.UUID) (*models.ProjectRequest, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if project.Status != models.ProjectStatusBlocked {
		return nil, fmt.Errorf("%w: project is not blocked", ErrInvalidTransition)
	}

	restored := project.RestoreFromBlock()

	project.Status = restored
	project.BlockReason = nil
	project.BlockedBy = nil
	project.PreBlockStatus = nil

	updates := map[string]interface{}{
		"status":           restored,
		"block_reason":     nil,
		"blocked_by":       nil,
		"pre_block_status": nil,
	}
	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to unblock project: %w", err)
	}

	s.cache.InvalidateApprovedProjects(context.Background())

	s.dispatcher.Publish(events.Event{
		Type:      events.EventStatusChanged,
		Project:   project,
		OldStatus: models.ProjectStatusBlocked,
		NewStatus: restored,
	})

	return project, nil
}

// Remove takes an active, non-blocked listing down on behalf of the
// requester.
func (s *ProjectService) Remove(id uuid.UUID) (*models.ProjectRequest, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if project.Status == models.ProjectStatusRemoved {
		return project, nil
	}

	now := time.Now()
	if !project.Removable(now) {
		return nil, fmt.Errorf("%w: only active approved or in-progress projects can be removed", ErrInvalidTransition)
	}

	oldStatus := project.Status
	project.Status = models.ProjectStatusRemoved

	if err := s.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("failed to remove project: %w", err)
	}

	s.cache.InvalidateApprovedProjects(context.Background())

	s.dispatcher.Publish(events.Event{
		Type:      events.EventProjectRemoved,
		Project:   project,
		OldStatus: oldStatus,
		NewStatus: models.ProjectStatusRemoved,
	})

	return project, nil
}

// Extend renews an expired approved project's visibility window. Renewals
// are capped; after that the requester has to submit a fresh request.
func (s *ProjectService) Extend(id uuid.UUID) (*models.ProjectRequest, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !project.ExtensionEligibleAt(now) {
		if project.ExtensionCount >= models.MaxExtensions {
			return nil, fmt.Errorf("%w: extension limit reached, please submit a new request", ErrInvalidTransition)
		}
		return nil, fmt.Errorf("%w: only expired approved projects can be extended", ErrInvalidTransition)
	}

	project.Extend(now)

	if err := s.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("failed to extend project: %w", err)
	}

	s.cache.InvalidateApprovedProjects(context.Background())

	return project, nil
}

// SweepStalePending promotes pending requests older than the cutoff to
// in_progress. Idempotent; safe to run concurrently with admin actions
// (last write wins on a single-row update).
func (s *ProjectService) SweepStalePending(staleAfter time.Duration) (int, error) {
	cutoff := time.Now().Add(-staleAfter)

	var stale []models.ProjectRequest
	if err := s.db.
		Where("status = ? AND created_at < ?", models.ProjectStatusPending, cutoff).
		Find(&stale).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch stale pending requests: %w", err)
	}

	promoted := 0
	for i := range stale {
		project := &stale[i]
		result := s.db.Model(&models.ProjectRequest{}).
			Where("id = ? AND status = ?", project.ID, models.ProjectStatusPending).
			Update("status", models.ProjectStatusInProgress)
		if result.Error != nil {
			return promoted, fmt.Errorf("failed to promote pending request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Someone else moved it first.
			continue
		}

		project.Status = models.ProjectStatusInProgress
		s.dispatcher.Publish(events.Event{
			Type:      events.EventStatusChanged,
			Project:   project,
			OldStatus: models.ProjectStatusPending,
			NewStatus: models.ProjectStatusInProgress,
		})
		promoted++
	}

	return promoted, nil
}

// SweepExpirations re-evaluates approved projects whose window has closed.
// The persisted status stays approved (the listing renders it as expired);
// an event is emitted per newly expired project as a notification hook.
func (s *ProjectService) SweepExpirations() (int, error) {
	now := time.Now()

	var expired []models.ProjectRequest
	if err := s.db.
		Where("status = ? AND expiration_date IS NOT NULL AND expiration_date <= ?",
			models.ProjectStatusApproved, now).
		Find(&expired).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch expired projects: %w", err)
	}

	for i := range expired {
		s.dispatcher.Publish(events.Event{
			Type:    events.EventProjectExpired,
			Project: &expired[i],
		})
	}

	if len(expired) > 0 {
		s.cache.InvalidateApprovedProjects(context.Background())
	}

	return len(expired), nil
}
