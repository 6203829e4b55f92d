package usecase

import (
	"context"
	"errors"
	"testing"

	"trainops-service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type failingHandler struct {
	calls int
}

func (h *failingHandler) CanHandle(eventType string) bool { return true }

func (h *failingHandler) Process(ctx context.Context, event *NotificationEvent) error {
	h.calls++
	return errors.New("smtp down")
}

func TestNotifierRoutesByEventType(t *testing.T) {
	notifier := NewNotifier(logger.NewLogger())

	scheduled := &recordingHandler{accepts: EventMissionScheduled}
	cancelled := &recordingHandler{accepts: EventMissionCancelled}
	notifier.RegisterHandler(scheduled)
	notifier.RegisterHandler(cancelled)

	notifier.Dispatch(context.Background(), &NotificationEvent{Type: EventMissionScheduled})
	notifier.Dispatch(context.Background(), &NotificationEvent{Type: EventMissionScheduled})
	notifier.Dispatch(context.Background(), &NotificationEvent{Type: EventMissionCancelled})

	assert.Len(t, scheduled.events, 2)
	assert.Len(t, cancelled.events, 1)
}

func TestNotifierContinuesPastFailingHandler(t *testing.T) {
	notifier := NewNotifier(logger.NewLogger())

	failing := &failingHandler{}
	recording := &recordingHandler{}
	notifier.RegisterHandler(failing)
	notifier.RegisterHandler(recording)

	notifier.Dispatch(context.Background(), &NotificationEvent{Type: EventMissionReminder})

	assert.Equal(t, 1, failing.calls)
	assert.Len(t, recording.events, 1)
}
