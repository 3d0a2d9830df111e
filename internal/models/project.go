// internal/models/project.go
package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// DefaultDurationMonths is the visibility window granted on approval.
	DefaultDurationMonths = 1

	// MaxExtensions caps how often an expired project can be renewed before
	// the requester has to submit a fresh request.
	MaxExtensions = 3
)

type ProjectRequest struct {
	BaseModel
	ProjectName string      `json:"project_name" gorm:"size:255;not null"`
	ProjectType ProjectType `json:"project_type" gorm:"type:varchar(20);not null;index"`
	Email       string      `json:"email" gorm:"size:255;not null"`
	Description string      `json:"description" gorm:"type:text;not null"`
	ProjectLink *string     `json:"project_link,omitempty" gorm:"size:500"`
	UserID      *string     `json:"user_id,omitempty" gorm:"size:64;index"`

	Status ProjectStatus `json:"status" gorm:"type:varchar(32);default:'pending';index"`

	// Block metadata, set iff Status == blocked. PreBlockStatus records where
	// unblock returns the project to.
	BlockReason    *string        `json:"block_reason,omitempty" gorm:"type:text"`
	BlockedBy      *string        `json:"blocked_by,omitempty" gorm:"size:255"`
	PreBlockStatus *ProjectStatus `json:"-" gorm:"type:varchar(32)"`

	// Expiration lifecycle, populated once approved.
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	DurationMonths int        `json:"duration_months" gorm:"default:1"`
	ExtensionCount int        `json:"extension_count" gorm:"default:0"`

	// Derived, recomputed on read. Not persisted.
	IsActive bool `json:"is_active" gorm:"-"`
}

func (ProjectRequest) TableName() string {
	return "project_requests"
}

// AfterFind normalizes legacy status spellings and recomputes the derived
// active flag.
func (p *ProjectRequest) AfterFind(tx *gorm.DB) error {
	if canonical, ok := NormalizeStatus(string(p.Status)); ok {
		p.Status = canonical
	}
	p.IsActive = p.ActiveAt(time.Now())
	return nil
}

// ActiveAt reports whether the project's visibility window is open at the
// given instant. A project with no expiration is always active.
func (p *ProjectRequest) ActiveAt(now time.Time) bool {
	return p.ExpirationDate == nil || p.ExpirationDate.After(now)
}

// ExtensionEligibleAt reports whether the requester may renew the visibility
// window: only approved, already expired projects below the extension cap.
func (p *ProjectRequest) ExtensionEligibleAt(now time.Time) bool {
	return p.Status == ProjectStatusApproved &&
		!p.ActiveAt(now) &&
		p.ExtensionCount < MaxExtensions
}

// Blockable reports whether the project may be blocked from its current state.
func (p *ProjectRequest) Blockable() bool {
	return p.Status == ProjectStatusApproved || p.Status == ProjectStatusInProgress
}

// RestoreFromBlock returns the status an unblocked project goes back to:
// the status recorded when it was blocked. Legacy rows blocked before that
// column existed fall back to in_progress.
func (p *ProjectRequest) RestoreFromBlock() ProjectStatus {
	if p.PreBlockStatus != nil && p.PreBlockStatus.Valid() {
		return *p.PreBlockStatus
	}
	return ProjectStatusInProgress
}

// Removable reports whether the requester may take the project down.
func (p *ProjectRequest) Removable(now time.Time) bool {
	return (p.Status == ProjectStatusApproved || p.Status == ProjectStatusInProgress) &&
		p.ActiveAt(now)
}

// adminTransitions enumerates the transitions reachable through the generic
// status update. Block/unblock, removal, restoration and extension run through
// their own operations.
var adminTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusPending:              {ProjectStatusInProgress, ProjectStatusApproved, ProjectStatusRejected},
	ProjectStatusInProgress:           {ProjectStatusApproved, ProjectStatusRejected},
	ProjectStatusRestorationRequested: {ProjectStatusApproved, ProjectStatusRejected},
}

// CanTransitionTo reports whether the generic status update may move the
// project to the target state. Requesting the current state is always allowed
// and treated as a no-op by the caller.
func (p *ProjectRequest) CanTransitionTo(target ProjectStatus) bool {
	if target == p.Status {
		return true
	}
	for _, allowed := range adminTransitions[p.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Approve opens a fresh visibility window from now.
func (p *ProjectRequest) Approve(now time.Time) {
	if p.DurationMonths <= 0 {
		p.DurationMonths = DefaultDurationMonths
	}
	expiry := now.AddDate(0, p.DurationMonths, 0)
	p.Status = ProjectStatusApproved
	p.ExpirationDate = &expiry
	p.IsActive = true
}

// Extend renews the window from now (not from the old expiration) and
// consumes one of the bounded renewals.
func (p *ProjectRequest) Extend(now time.Time) {
	if p.DurationMonths <= 0 {
		p.DurationMonths = DefaultDurationMonths
	}
	expiry := now.AddDate(0, p.DurationMonths, 0)
	p.ExpirationDate = &expiry
	p.ExtensionCount++
	p.IsActive = true
}
