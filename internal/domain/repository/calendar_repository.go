package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
)

// CalendarRepository defines the interface for pushing mission events to the
// external calendar-sync webhook
type CalendarRepository interface {
	PushEvent(ctx context.Context, event *entity.CalendarEvent) error
}
