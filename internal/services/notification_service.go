// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/projektfabrik/pf-backend/internal/config"
	"github.com/projektfabrik/pf-backend/internal/models"
)

// NotificationService sends transactional email. Delivery is best-effort:
// callers route through the event dispatcher and never block a workflow
// transition on the outcome.
type NotificationService struct {
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{config: cfg}
}

func (s *NotificationService) SendSubmissionConfirmation(project *models.ProjectRequest) error {
	tmpl := s.getEmailTemplate("submission_confirmation")

	data := map[string]interface{}{
		"ProjectName": project.ProjectName,
		"ProjectType": project.ProjectType,
		"StatusURL":   fmt.Sprintf("%s/my-projects", s.config.Frontend.BaseURL),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(project.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendStatusChangeNotice(project *models.ProjectRequest, oldStatus, newStatus models.ProjectStatus) error {
	tmpl := s.getEmailTemplate("status_change")

	data := map[string]interface{}{
		"ProjectName": project.ProjectName,
		"OldStatus":   oldStatus,
		"NewStatus":   newStatus,
		"StatusURL":   fmt.Sprintf("%s/my-projects", s.config.Frontend.BaseURL),
	}

	subject := fmt.Sprintf("Project status update - %s", project.ProjectName)
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(project.Email, subject, body)
}

func (s *NotificationService) SendRemovalConfirmation(project *models.ProjectRequest) error {
	tmpl := s.getEmailTemplate("removal_confirmation")

	data := map[string]interface{}{
		"ProjectName": project.ProjectName,
	}

	subject := fmt.Sprintf("Project removed - %s", project.ProjectName)
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(project.Email, subject, body)
}

func (s *NotificationService) SendRestorationDecision(project *models.ProjectRequest, review *models.RestorationReview) error {
	tmpl := s.getEmailTemplate("restoration_decision")

	data := map[string]interface{}{
		"ProjectName": project.ProjectName,
		"Status":      project.Status,
	}
	if review != nil {
		data["DecisionReason"] = review.DecisionReason
	}

	subject := fmt.Sprintf("Restoration decision - %s", project.ProjectName)
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(project.Email, subject, body)
}

// Contact messages fan out twice: an acknowledgment to the sender and a copy
// to the team inbox.
func (s *NotificationService) SendContactAcknowledgment(msg *models.ContactMessage) error {
	tmpl := s.getEmailTemplate("contact_acknowledgment")

	data := map[string]interface{}{
		"Name":    msg.Name,
		"Subject": msg.Subject,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(msg.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendContactTeamCopy(msg *models.ContactMessage) error {
	tmpl := s.getEmailTemplate("contact_team_copy")

	data := map[string]interface{}{
		"Name":    msg.Name,
		"Email":   msg.Email,
		"Subject": msg.Subject,
		"Message": msg.Message,
	}

	subject := fmt.Sprintf("Contact form: %s", msg.Subject)
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(s.config.Email.TeamEmail, subject, body)
}

// Helper methods
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email delivery skipped (SMTP not configured)")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"submission_confirmation": {
			Subject: "We received your project request",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thanks for your submission!</h2>
	<p>Your project "{{.ProjectName}}" ({{.ProjectType}}) has been received and is waiting for review.</p>
	<p>You can follow its status here: <a href="{{.StatusURL}}">My Projects</a></p>
	<p>Best regards,<br>The Projektfabrik Team</p>
</body>
</html>`,
		},
		"status_change": {
			Subject: "Project status update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Status update for "{{.ProjectName}}"</h2>
	<p>Your project moved from <b>{{.OldStatus}}</b> to <b>{{.NewStatus}}</b>.</p>
	<p>Details: <a href="{{.StatusURL}}">My Projects</a></p>
	<p>Best regards,<br>The Projektfabrik Team</p>
</body>
</html>`,
		},
		"removal_confirmation": {
			Subject: "Project removed",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>"{{.ProjectName}}" has been removed</h2>
	<p>Your project is no longer listed. You can request a restoration at any time.</p>
	<p>Best regards,<br>The Projektfabrik Team</p>
</body>
</html>`,
		},
		"restoration_decision": {
			Subject: "Restoration decision",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Restoration decision for "{{.ProjectName}}"</h2>
	<p>The review of your restoration request finished with status <b>{{.Status}}</b>.</p>
	{{if .DecisionReason}}<p>Reason: {{.DecisionReason}}</p>{{end}}
	<p>Best regards,<br>The Projektfabrik Team</p>
</body>
</html>`,
		},
		"contact_acknowledgment": {
			Subject: "We received your message",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Thanks for reaching out about "{{.Subject}}". We will get back to you shortly.</p>
	<p>Best regards,<br>The Projektfabrik Team</p>
</body>
</html>`,
		},
		"contact_team_copy": {
			Subject: "New contact form message",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>New message from {{.Name}} ({{.Email}})</h2>
	<p><b>{{.Subject}}</b></p>
	<p>{{.Message}}</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
