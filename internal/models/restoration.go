// internal/models/restoration.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RestorationReview records the outcome of an automated restoration check.
// Team-reviewed restorations never create one; a human decision is recorded
// only as the resulting status transition.
type RestorationReview struct {
	BaseModel
	ProjectRequestID      uuid.UUID      `json:"project_request_id" gorm:"type:uuid;not null;index"`
	ReviewType            ReviewType     `json:"review_type" gorm:"type:varchar(10);not null"`
	Status                ReviewStatus   `json:"status" gorm:"type:varchar(20);not null"`
	ConfidenceScore       int            `json:"confidence_score" gorm:"default:0"`
	DecisionReason        string         `json:"decision_reason" gorm:"type:text"`
	Problems              pq.StringArray `json:"problems" gorm:"type:text[]"`
	Recommendations       pq.StringArray `json:"recommendations" gorm:"type:text[]"`
	ProcessingTimeMinutes float64        `json:"processing_time_minutes"`
	ReviewedAt            time.Time      `json:"reviewed_at"`

	ProjectRequest ProjectRequest `json:"project_request,omitempty" gorm:"foreignKey:ProjectRequestID"`
}

func (RestorationReview) TableName() string {
	return "restoration_reviews"
}
