package entity

import "time"

// Calendar push actions
const (
	CalendarEventCreated   = "created"
	CalendarEventCancelled = "cancelled"
)

// CalendarEvent is the payload pushed to the external calendar-sync webhook
// whenever a mission is scheduled or cancelled.
type CalendarEvent struct {
	Action         string    `json:"action"`
	MissionID      string    `json:"mission_id"`
	MissionCode    string    `json:"mission_code"`
	Title          string    `json:"title"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	StudentName    string    `json:"student_name"`
	InstructorName string    `json:"instructor_name"`
	TailNumber     string    `json:"tail_number,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
