// internal/services/notifier_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/projektfabrik/pf-backend/internal/config"
	"github.com/projektfabrik/pf-backend/internal/events"
	"github.com/projektfabrik/pf-backend/internal/models"
)

func newTestNotifier() *Notifier {
	// Neither SMTP nor the webhook are configured, so every send is a logged
	// no-op and the handler outcome depends only on the routing.
	email := newTestNotificationService()
	discord := NewDiscordService(config.DiscordConfig{TimeoutSeconds: 5})
	return NewNotifier(email, discord)
}

func TestNotifierRoutesEvents(t *testing.T) {
	notifier := newTestNotifier()
	project := &models.ProjectRequest{
		ProjectName: "Test Project",
		ProjectType: models.ProjectTypeWebsite,
		Email:       "owner@example.com",
		Status:      models.ProjectStatusApproved,
	}
	contact := &models.ContactMessage{Name: "Alex", Email: "alex@example.com", Subject: "Hi", Message: "Hello"}

	tests := []struct {
		name  string
		event events.Event
	}{
		{"submitted", events.Event{Type: events.EventProjectSubmitted, Project: project}},
		{"status changed to approved", events.Event{
			Type:      events.EventStatusChanged,
			Project:   project,
			OldStatus: models.ProjectStatusInProgress,
			NewStatus: models.ProjectStatusApproved,
		}},
		{"status changed to rejected", events.Event{
			Type:      events.EventStatusChanged,
			Project:   project,
			OldStatus: models.ProjectStatusPending,
			NewStatus: models.ProjectStatusRejected,
		}},
		{"removed", events.Event{Type: events.EventProjectRemoved, Project: project}},
		{"restoration decided", events.Event{
			Type:    events.EventRestorationDecided,
			Project: project,
			Review:  &models.RestorationReview{DecisionReason: "ok"},
		}},
		{"contact received", events.Event{Type: events.EventContactReceived, Contact: contact}},
		{"expired is silent", events.Event{Type: events.EventProjectExpired, Project: project}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, notifier.Handle(tt.event))
		})
	}
}
