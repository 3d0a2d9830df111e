// internal/services/notifier.go
package services

import (
	"github.com/projektfabrik/pf-backend/internal/events"
	"github.com/projektfabrik/pf-backend/internal/models"
)

// Notifier consumes workflow events and fans them out to email and the
// Discord webhook. It runs on the dispatcher's worker, strictly after the
// triggering transition has been committed.
type Notifier struct {
	email   *NotificationService
	discord *DiscordService
}

func NewNotifier(email *NotificationService, discord *DiscordService) *Notifier {
	return &Notifier{
		email:   email,
		discord: discord,
	}
}

func (n *Notifier) Handle(event events.Event) error {
	switch event.Type {
	case events.EventProjectSubmitted:
		return n.email.SendSubmissionConfirmation(event.Project)

	case events.EventStatusChanged:
		if err := n.email.SendStatusChangeNotice(event.Project, event.OldStatus, event.NewStatus); err != nil {
			return err
		}
		if event.NewStatus == models.ProjectStatusApproved {
			return n.discord.SendProjectApproved(event.Project)
		}
		return nil

	case events.EventProjectRemoved:
		return n.email.SendRemovalConfirmation(event.Project)

	case events.EventRestorationDecided:
		if err := n.email.SendRestorationDecision(event.Project, event.Review); err != nil {
			return err
		}
		if event.Project.Status == models.ProjectStatusApproved {
			return n.discord.SendProjectApproved(event.Project)
		}
		return nil

	case events.EventContactReceived:
		if err := n.email.SendContactAcknowledgment(event.Contact); err != nil {
			return err
		}
		return n.email.SendContactTeamCopy(event.Contact)

	case events.EventProjectExpired:
		// Natural expiry is silent for now; the event exists as a hook.
		return nil
	}

	return nil
}
