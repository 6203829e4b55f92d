package usecase

import (
	"context"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/scheduling"
	"trainops-service/pkg/logger"
)

// Notification event types
const (
	EventMissionScheduled = "mission.scheduled"
	EventMissionCancelled = "mission.cancelled"
	EventMissionReminder  = "mission.reminder"
	EventInvoiceIssued    = "invoice.issued"
)

// NotificationEvent carries everything a handler needs to render a message
type NotificationEvent struct {
	Type       string
	Mission    *entity.Mission
	Student    *entity.Profile
	Instructor *entity.Profile
	Aircraft   *entity.Aircraft
	Lesson     *entity.SyllabusLesson
	Breakdown  *scheduling.Breakdown
	Invoice    *entity.Invoice
	Reason     string
}

// NotificationHandler processes events it declares interest in
type NotificationHandler interface {
	CanHandle(eventType string) bool
	Process(ctx context.Context, event *NotificationEvent) error
}

// Notifier routes events to registered handlers
type Notifier struct {
	handlers []NotificationHandler
	logger   logger.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(logger logger.Logger) *Notifier {
	return &Notifier{
		handlers: []NotificationHandler{},
		logger:   logger,
	}
}

// RegisterHandler adds a handler to the routing chain
func (n *Notifier) RegisterHandler(handler NotificationHandler) {
	n.handlers = append(n.handlers, handler)
}

// Dispatch fans the event out to every handler that can process it.
// Handler failures are logged and do not abort the remaining handlers.
func (n *Notifier) Dispatch(ctx context.Context, event *NotificationEvent) {
	handled := false
	for _, handler := range n.handlers {
		if !handler.CanHandle(event.Type) {
			continue
		}
		handled = true
		if err := handler.Process(ctx, event); err != nil {
			n.logger.Error("Notification handler failed", "type", event.Type, "error", err)
		}
	}

	if !handled {
		n.logger.Debug("No handler registered for event", "type", event.Type)
	}
}
