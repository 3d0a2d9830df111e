// internal/services/discord_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/projektfabrik/pf-backend/internal/config"
	"github.com/projektfabrik/pf-backend/internal/models"
)

// DiscordService posts approval announcements to a channel webhook. A slow
// or failing webhook must never stall a status transition, so the client
// carries a hard timeout and callers treat errors as transient.
type DiscordService struct {
	webhookURL string
	client     *http.Client
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color"`
	URL         string              `json:"url,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordWebhookPayload struct {
	Username string         `json:"username,omitempty"`
	Content  string         `json:"content,omitempty"`
	Embeds   []discordEmbed `json:"embeds,omitempty"`
}

const discordEmbedColorGreen = 0x2ecc71

func NewDiscordService(cfg config.DiscordConfig) *DiscordService {
	return &DiscordService{
		webhookURL: cfg.WebhookURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// SendProjectApproved announces a freshly approved project.
func (s *DiscordService) SendProjectApproved(project *models.ProjectRequest) error {
	if s.webhookURL == "" {
		logrus.WithField("project", project.ProjectName).
			Info("Discord announcement skipped (webhook not configured)")
		return nil
	}

	embed := discordEmbed{
		Title:       fmt.Sprintf("New project approved: %s", project.ProjectName),
		Description: project.Description,
		Color:       discordEmbedColorGreen,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Fields: []discordEmbedField{
			{Name: "Type", Value: string(project.ProjectType), Inline: true},
		},
	}
	if project.ProjectLink != nil && *project.ProjectLink != "" {
		embed.URL = *project.ProjectLink
	}
	if project.ExpirationDate != nil {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:   "Listed until",
			Value:  project.ExpirationDate.Format("2006-01-02"),
			Inline: true,
		})
	}

	payload := discordWebhookPayload{
		Username: "Projektfabrik",
		Embeds:   []discordEmbed{embed},
	}

	return s.post(payload)
}

func (s *DiscordService) post(payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
