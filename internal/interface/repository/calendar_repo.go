package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"
	"trainops-service/pkg/logger"
)

// WebhookCalendarRepository pushes mission events to the external
// calendar-sync webhook
type WebhookCalendarRepository struct {
	logger      logger.Logger
	endpoint    string
	bearerToken string
	client      *http.Client
}

// NewWebhookCalendarRepository creates a new calendar webhook repository.
// An empty endpoint disables pushes.
func NewWebhookCalendarRepository(endpoint, bearerToken string, logger logger.Logger) repository.CalendarRepository {
	return &WebhookCalendarRepository{
		logger:      logger,
		endpoint:    endpoint,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// PushEvent posts a calendar event to the configured webhook
func (r *WebhookCalendarRepository) PushEvent(ctx context.Context, event *entity.CalendarEvent) error {
	if r.endpoint == "" {
		r.logger.Debug("Calendar webhook not configured, skipping push",
			"missionCode", event.MissionCode)
		return nil
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal calendar event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if r.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("calendar webhook returned status %d: %v", resp.StatusCode, errorBody)
	}

	r.logger.Info("Calendar event pushed",
		"action", event.Action,
		"missionCode", event.MissionCode)
	return nil
}
