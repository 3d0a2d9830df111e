// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type ProjectStatus string

const (
	ProjectStatusPending              ProjectStatus = "pending"
	ProjectStatusInProgress           ProjectStatus = "in_progress"
	ProjectStatusApproved             ProjectStatus = "approved"
	ProjectStatusRejected             ProjectStatus = "rejected"
	ProjectStatusRemoved              ProjectStatus = "removed"
	ProjectStatusRestorationRequested ProjectStatus = "restoration_requested"
	ProjectStatusBlocked              ProjectStatus = "blocked"
)

// Legacy spellings left behind by an old schema change. Normalized on read,
// never written back.
var legacyStatusAliases = map[string]ProjectStatus{
	"In Bearbeitung": ProjectStatusInProgress,
	"Abgelehnt":      ProjectStatusRejected,
}

// NormalizeStatus maps a raw stored status value to its canonical form.
// The second return is false for values outside the closed set.
func NormalizeStatus(raw string) (ProjectStatus, bool) {
	if canonical, ok := legacyStatusAliases[raw]; ok {
		return canonical, true
	}

	status := ProjectStatus(raw)
	if status.Valid() {
		return status, true
	}
	return "", false
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusInProgress, ProjectStatusApproved,
		ProjectStatusRejected, ProjectStatusRemoved, ProjectStatusRestorationRequested,
		ProjectStatusBlocked:
		return true
	}
	return false
}

type ProjectType string

const (
	ProjectTypeWebsite   ProjectType = "website"
	ProjectTypeWebapp    ProjectType = "webapp"
	ProjectTypeDashboard ProjectType = "dashboard"
	ProjectTypeBot       ProjectType = "bot"
	ProjectTypeOther     ProjectType = "other"
)

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeWebsite, ProjectTypeWebapp, ProjectTypeDashboard,
		ProjectTypeBot, ProjectTypeOther:
		return true
	}
	return false
}

type ReviewType string

const (
	ReviewTypeAI   ReviewType = "ai"
	ReviewTypeTeam ReviewType = "team"
)

func (t ReviewType) Valid() bool {
	return t == ReviewTypeAI || t == ReviewTypeTeam
}

type ReviewStatus string

const (
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)
