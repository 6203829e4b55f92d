package entity

import (
	"fmt"
	"time"
)

// Mission lifecycle status
const (
	MissionScheduled  = "scheduled"
	MissionInProgress = "in_progress"
	MissionCompleted  = "completed"
	MissionCancelled  = "cancelled"
)

// Instructor assessment values recorded at mission completion
const (
	AssessmentSatisfactory      = "satisfactory"
	AssessmentNeedsMorePractice = "needs_more_practice"
	AssessmentOutstanding       = "outstanding"
)

// MissionCategory identifies the kind of training activity a mission wraps.
type MissionCategory uint8

const (
	CategoryFlight MissionCategory = iota
	CategoryGround
	CategorySimulator
)

// Code returns the single-letter wire/database code for the category.
func (c MissionCategory) Code() string {
	switch c {
	case CategoryFlight:
		return "F"
	case CategoryGround:
		return "G"
	case CategorySimulator:
		return "S"
	}
	return "?"
}

// Label returns the human-readable category name.
func (c MissionCategory) Label() string {
	switch c {
	case CategoryFlight:
		return "Flight"
	case CategoryGround:
		return "Ground"
	case CategorySimulator:
		return "Simulator"
	}
	return "Unknown"
}

func (c MissionCategory) String() string {
	return c.Code()
}

// ParseMissionCategory parses a category code ("F", "G" or "S").
func ParseMissionCategory(code string) (MissionCategory, error) {
	switch code {
	case "F":
		return CategoryFlight, nil
	case "G":
		return CategoryGround, nil
	case "S":
		return CategorySimulator, nil
	}
	return 0, fmt.Errorf("unknown mission category %q", code)
}

// Mission represents a scheduled training activity. The effective end time is
// derived from the start time, category and activity duration; the stored
// EndTime is a cache of that derivation, never an independent value.
type Mission struct {
	ID                 string
	Code               string
	EnrollmentID       string
	StudentID          string
	InstructorID       string
	AircraftID         string // flight missions only
	Category           MissionCategory
	LessonTemplateID   string // optional link to the syllabus lesson
	ScheduledDate      string // ISO date, e.g. "2025-06-14"
	StartTime          string // wall-clock "HH:MM"
	ActivityMinutes    int    // main activity only, excluding briefing overhead
	EndTime            string // derived via the time-block calculator
	Status             string
	Assessment         string
	CancellationReason string
	ReminderSentAt     *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
