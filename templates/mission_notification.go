package templates

import (
	"context"
	"fmt"
	"strings"

	"trainops-service/internal/domain/repository"
	"trainops-service/internal/usecase"
	"trainops-service/pkg/logger"
	"trainops-service/pkg/timeutil"
)

// MissionScheduledHandler emails both participants when a mission is booked
type MissionScheduledHandler struct {
	mailer repository.MailRepository
	logger logger.Logger
}

// NewMissionScheduledHandler creates a new mission scheduled handler
func NewMissionScheduledHandler(mailer repository.MailRepository, logger logger.Logger) *MissionScheduledHandler {
	return &MissionScheduledHandler{
		mailer: mailer,
		logger: logger,
	}
}

// CanHandle determines if this handler can process the given event type
func (h *MissionScheduledHandler) CanHandle(eventType string) bool {
	return eventType == usecase.EventMissionScheduled
}

// Process sends the booking confirmation to student and instructor
func (h *MissionScheduledHandler) Process(ctx context.Context, event *usecase.NotificationEvent) error {
	mission := event.Mission
	subject := fmt.Sprintf("Mission %s scheduled for %s", mission.Code, mission.ScheduledDate)

	if event.Student != nil && event.Student.Email != "" {
		body := buildScheduleBody(event, event.Student.FullName(), event.Breakdown.StudentStartTime)
		if err := h.mailer.SendHTML(ctx, event.Student.Email, subject, body); err != nil {
			return err
		}
	}

	if event.Instructor != nil && event.Instructor.Email != "" {
		body := buildScheduleBody(event, event.Instructor.FullName(), event.Breakdown.InstructorStartTime)
		if err := h.mailer.SendHTML(ctx, event.Instructor.Email, subject, body); err != nil {
			return err
		}
	}

	return nil
}

func buildScheduleBody(event *usecase.NotificationEvent, recipientName, reportTime string) string {
	mission := event.Mission

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Mission %s Confirmed</h2>", mission.Code))
	sb.WriteString(fmt.Sprintf("<p>Hi %s,</p>", recipientName))
	sb.WriteString(fmt.Sprintf("<p>Your %s on <strong>%s</strong> is confirmed. Please report at <strong>%s</strong>.</p>",
		strings.ToLower(mission.Category.Label()), mission.ScheduledDate, timeutil.FormatClockDisplay(reportTime)))

	if event.Lesson != nil {
		sb.WriteString(fmt.Sprintf("<p>Lesson: <strong>%s</strong></p>", event.Lesson.Title))
	}
	if event.Aircraft != nil {
		sb.WriteString(fmt.Sprintf("<p>Aircraft: <strong>%s</strong> (%s %s)</p>",
			event.Aircraft.TailNumber, event.Aircraft.Make, event.Aircraft.Model))
	}

	sb.WriteString("<h3>Schedule</h3>")
	sb.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	sb.WriteString("<tr><th>Block</th><th>Start</th><th>End</th><th>Duration</th></tr>")
	for _, block := range event.Breakdown.Blocks {
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			block.Label,
			timeutil.FormatClockDisplay(block.StartTime),
			timeutil.FormatClockDisplay(block.EndTime),
			timeutil.FormatDuration(block.DurationMinutes)))
	}
	sb.WriteString("</table>")

	sb.WriteString("<p>Blue skies,<br/>Flight Operations</p>")
	sb.WriteString("</body></html>")
	return sb.String()
}

// MissionCancelledHandler emails both participants when a mission is cancelled
type MissionCancelledHandler struct {
	mailer repository.MailRepository
	logger logger.Logger
}

// NewMissionCancelledHandler creates a new mission cancelled handler
func NewMissionCancelledHandler(mailer repository.MailRepository, logger logger.Logger) *MissionCancelledHandler {
	return &MissionCancelledHandler{
		mailer: mailer,
		logger: logger,
	}
}

// CanHandle determines if this handler can process the given event type
func (h *MissionCancelledHandler) CanHandle(eventType string) bool {
	return eventType == usecase.EventMissionCancelled
}

// Process sends the cancellation notice
func (h *MissionCancelledHandler) Process(ctx context.Context, event *usecase.NotificationEvent) error {
	mission := event.Mission
	subject := fmt.Sprintf("Mission %s on %s cancelled", mission.Code, mission.ScheduledDate)

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Mission %s Cancelled</h2>", mission.Code))
	sb.WriteString(fmt.Sprintf("<p>The %s scheduled for <strong>%s</strong> at <strong>%s</strong> has been cancelled.</p>",
		strings.ToLower(mission.Category.Label()), mission.ScheduledDate, timeutil.FormatClockDisplay(mission.StartTime)))
	if event.Reason != "" {
		sb.WriteString(fmt.Sprintf("<p>Reason: %s</p>", event.Reason))
	}
	sb.WriteString("<p>Please contact dispatch to rebook.</p>")
	sb.WriteString("</body></html>")
	body := sb.String()

	if event.Student != nil && event.Student.Email != "" {
		if err := h.mailer.SendHTML(ctx, event.Student.Email, subject, body); err != nil {
			return err
		}
	}
	if event.Instructor != nil && event.Instructor.Email != "" {
		if err := h.mailer.SendHTML(ctx, event.Instructor.Email, subject, body); err != nil {
			return err
		}
	}

	return nil
}

// MissionReminderHandler emails the student the day before a mission
type MissionReminderHandler struct {
	mailer repository.MailRepository
	logger logger.Logger
}

// NewMissionReminderHandler creates a new mission reminder handler
func NewMissionReminderHandler(mailer repository.MailRepository, logger logger.Logger) *MissionReminderHandler {
	return &MissionReminderHandler{
		mailer: mailer,
		logger: logger,
	}
}

// CanHandle determines if this handler can process the given event type
func (h *MissionReminderHandler) CanHandle(eventType string) bool {
	return eventType == usecase.EventMissionReminder
}

// Process sends the reminder to the student only
func (h *MissionReminderHandler) Process(ctx context.Context, event *usecase.NotificationEvent) error {
	if event.Student == nil || event.Student.Email == "" {
		h.logger.Warn("Reminder skipped, student has no email", "missionId", event.Mission.ID)
		return nil
	}

	mission := event.Mission
	subject := fmt.Sprintf("Reminder: mission %s tomorrow", mission.Code)

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Upcoming Mission %s</h2>", mission.Code))
	sb.WriteString(fmt.Sprintf("<p>Hi %s,</p>", event.Student.FullName()))
	sb.WriteString(fmt.Sprintf("<p>This is a reminder that your %s is scheduled for <strong>%s</strong>. Report time is <strong>%s</strong>.</p>",
		strings.ToLower(mission.Category.Label()), mission.ScheduledDate, timeutil.FormatClockDisplay(event.Breakdown.StudentStartTime)))
	if event.Lesson != nil {
		sb.WriteString(fmt.Sprintf("<p>Lesson: <strong>%s</strong>. Review the lesson objectives before you arrive.</p>", event.Lesson.Title))
	}
	sb.WriteString("<p>Blue skies,<br/>Flight Operations</p>")
	sb.WriteString("</body></html>")

	return h.mailer.SendHTML(ctx, event.Student.Email, subject, sb.String())
}
