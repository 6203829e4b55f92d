package templates

import (
	"context"
	"testing"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/scheduling"
	"trainops-service/internal/usecase"
	"trainops-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	to       []string
	subjects []string
	bodies   []string
}

func (s *stubMailer) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	s.to = append(s.to, to)
	s.subjects = append(s.subjects, subject)
	s.bodies = append(s.bodies, htmlBody)
	return nil
}

func flightEvent(t *testing.T, eventType string) *usecase.NotificationEvent {
	t.Helper()
	breakdown, err := scheduling.ComputeTimeBlocks(entity.CategoryFlight, "08:00", 90)
	require.NoError(t, err)

	return &usecase.NotificationEvent{
		Type: eventType,
		Mission: &entity.Mission{
			ID:            "mis-1",
			Code:          "PPL-4",
			Category:      entity.CategoryFlight,
			ScheduledDate: "2025-06-14",
			StartTime:     "08:00",
			EndTime:       breakdown.EndTime,
		},
		Student:    &entity.Profile{FirstName: "Ada", LastName: "Muir", Email: "ada@example.com"},
		Instructor: &entity.Profile{FirstName: "Ben", LastName: "Ferro", Email: "ben@example.com"},
		Aircraft:   &entity.Aircraft{TailNumber: "C-GABC", Make: "Cessna", Model: "172"},
		Breakdown:  breakdown,
	}
}

func TestMissionScheduledHandler(t *testing.T) {
	mailer := &stubMailer{}
	handler := NewMissionScheduledHandler(mailer, logger.NewLogger())

	assert.True(t, handler.CanHandle(usecase.EventMissionScheduled))
	assert.False(t, handler.CanHandle(usecase.EventMissionCancelled))

	err := handler.Process(context.Background(), flightEvent(t, usecase.EventMissionScheduled))
	require.NoError(t, err)

	require.Equal(t, []string{"ada@example.com", "ben@example.com"}, mailer.to)
	assert.Contains(t, mailer.subjects[0], "PPL-4")

	// Student reports for the pre-flight inspection, instructor joins at the
	// pre-brief half an hour later
	assert.Contains(t, mailer.bodies[0], "8:00 AM")
	assert.Contains(t, mailer.bodies[1], "8:30 AM")
	assert.Contains(t, mailer.bodies[0], "C-GABC")
	assert.Contains(t, mailer.bodies[0], "Pre-Flight Inspection")
}

func TestMissionCancelledHandler(t *testing.T) {
	mailer := &stubMailer{}
	handler := NewMissionCancelledHandler(mailer, logger.NewLogger())

	event := flightEvent(t, usecase.EventMissionCancelled)
	event.Reason = "weather below minimums"

	err := handler.Process(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, mailer.to, 2)
	assert.Contains(t, mailer.subjects[0], "cancelled")
	assert.Contains(t, mailer.bodies[0], "weather below minimums")
}

func TestMissionReminderHandlerSkipsWithoutEmail(t *testing.T) {
	mailer := &stubMailer{}
	handler := NewMissionReminderHandler(mailer, logger.NewLogger())

	event := flightEvent(t, usecase.EventMissionReminder)
	event.Student.Email = ""

	err := handler.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Empty(t, mailer.to)
}

func TestInvoiceIssuedHandler(t *testing.T) {
	mailer := &stubMailer{}
	handler := NewInvoiceIssuedHandler(mailer, logger.NewLogger())

	event := flightEvent(t, usecase.EventInvoiceIssued)
	event.Invoice = &entity.Invoice{
		ID:         "inv-1",
		MissionID:  "mis-1",
		TotalCents: 18750,
		LineItems: []entity.InvoiceLineItem{
			{Description: "Flight Training (PPL-4)", Category: entity.BillingFlightInstruction, Minutes: 90, RateCents: 7500, AmountCents: 11250},
		},
	}

	err := handler.Process(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, mailer.to, 1)
	assert.Equal(t, "ada@example.com", mailer.to[0])
	assert.Contains(t, mailer.bodies[0], "$187.50")
	assert.Contains(t, mailer.bodies[0], "$75.00/hr")
}
