// internal/services/contact_service.go
package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/projektfabrik/pf-backend/internal/events"
	"github.com/projektfabrik/pf-backend/internal/models"
	"github.com/projektfabrik/pf-backend/internal/utils"
)

type ContactService struct {
	db         *gorm.DB
	dispatcher *events.Dispatcher
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,notblank,max=255"`
	Message string `json:"message" validate:"required,notblank"`
}

func NewContactService(db *gorm.DB, dispatcher *events.Dispatcher) *ContactService {
	return &ContactService{
		db:         db,
		dispatcher: dispatcher,
	}
}

// Submit persists the message and queues the sender acknowledgment plus the
// team copy.
func (s *ContactService) Submit(req *ContactRequest) (*models.ContactMessage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}

	if err := s.db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to persist contact message: %w", err)
	}

	s.dispatcher.Publish(events.Event{
		Type:    events.EventContactReceived,
		Contact: msg,
	})

	return msg, nil
}
