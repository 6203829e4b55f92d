package scheduling

import (
	"fmt"

	"trainops-service/internal/domain/entity"
	"trainops-service/pkg/timeutil"
)

// Participant identifies who attends a time block
type Participant string

const (
	ParticipantStudent    Participant = "student"
	ParticipantInstructor Participant = "instructor"
)

// Standard block labels
const (
	LabelPreFlight = "Pre-Flight Inspection"
	LabelPreBrief  = "Pre-Brief"
	LabelPostBrief = "Post-Brief / Debrief"
)

// Block is one labeled sub-interval of a mission
type Block struct {
	Label           string        `json:"label"`
	StartTime       string        `json:"start_time"`
	EndTime         string        `json:"end_time"`
	DurationMinutes int           `json:"duration_minutes"`
	Participants    []Participant `json:"participants"`
	Description     string        `json:"description"`
}

// Breakdown is the full derived schedule of a mission. Blocks are contiguous
// and non-overlapping: each block starts where the previous one ends, the
// first block starts at the mission start time and the last block ends at
// the mission end time.
type Breakdown struct {
	Blocks                 []Block `json:"blocks"`
	TotalStudentMinutes    int     `json:"total_student_minutes"`
	TotalInstructorMinutes int     `json:"total_instructor_minutes"`
	StudentStartTime       string  `json:"student_start_time"`
	InstructorStartTime    string  `json:"instructor_start_time"`
	EndTime                string  `json:"end_time"`

	// StartMinutes/EndMinutes mirror the start and end times as minutes from
	// midnight of the mission date. EndMinutes is not wrapped, so a value
	// above timeutil.MinutesPerDay marks a mission running past midnight.
	StartMinutes int `json:"-"`
	EndMinutes   int `json:"-"`
}

// CrossesMidnight reports whether the mission runs past 24:00
func (b *Breakdown) CrossesMidnight() bool {
	return b.EndMinutes > timeutil.MinutesPerDay
}

// briefing overhead in minutes per category; the pre-activity block is
// attended by the student alone
func overheads(category entity.MissionCategory) (preActivity, preBrief, postBrief int) {
	switch category {
	case entity.CategoryFlight:
		return 30, 30, 30
	case entity.CategoryGround:
		return 0, 30, 30
	case entity.CategorySimulator:
		return 0, 30, 30
	}
	return 0, 30, 30
}

func activityBlock(category entity.MissionCategory) (label, description string) {
	switch category {
	case entity.CategoryFlight:
		return "Flight Training", "Airborne training maneuvers and procedures"
	case entity.CategoryGround:
		return "Ground Instruction", "Classroom instruction and knowledge building"
	case entity.CategorySimulator:
		return "Simulator Session", "Simulator training and procedures practice"
	}
	return "Training Activity", ""
}

// ComputeTimeBlocks derives the ordered time blocks of a mission from its
// category, start time and main-activity duration. It is a pure function of
// its inputs: no I/O, deterministic, idempotent.
func ComputeTimeBlocks(category entity.MissionCategory, startTime string, activityMinutes int) (*Breakdown, error) {
	start, err := timeutil.ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	if activityMinutes <= 0 {
		return nil, fmt.Errorf("activity duration must be positive, got %d", activityMinutes)
	}

	preActivity, preBrief, postBrief := overheads(category)

	breakdown := &Breakdown{
		StudentStartTime: timeutil.FormatClock(start),
		StartMinutes:     start,
	}

	cursor := start
	push := func(label, description string, minutes int, participants ...Participant) {
		breakdown.Blocks = append(breakdown.Blocks, Block{
			Label:           label,
			StartTime:       timeutil.FormatClock(cursor),
			EndTime:         timeutil.FormatClock(cursor + minutes),
			DurationMinutes: minutes,
			Participants:    participants,
			Description:     description,
		})
		cursor += minutes
		for _, p := range participants {
			switch p {
			case ParticipantStudent:
				breakdown.TotalStudentMinutes += minutes
			case ParticipantInstructor:
				breakdown.TotalInstructorMinutes += minutes
			}
		}
	}

	if preActivity > 0 {
		push(LabelPreFlight, "Student conducts aircraft pre-flight inspection",
			preActivity, ParticipantStudent)
	}

	breakdown.InstructorStartTime = timeutil.FormatClock(cursor)

	if preBrief > 0 {
		push(LabelPreBrief, "Review objectives, weather, and safety considerations",
			preBrief, ParticipantStudent, ParticipantInstructor)
	}

	label, description := activityBlock(category)
	push(label, description, activityMinutes, ParticipantStudent, ParticipantInstructor)

	if postBrief > 0 {
		push(LabelPostBrief, "Review performance and key takeaways",
			postBrief, ParticipantStudent, ParticipantInstructor)
	}

	breakdown.EndMinutes = cursor
	breakdown.EndTime = timeutil.FormatClock(cursor)

	return breakdown, nil
}

// EndTimeFor derives just the effective end time of a mission
func EndTimeFor(category entity.MissionCategory, startTime string, activityMinutes int) (string, error) {
	breakdown, err := ComputeTimeBlocks(category, startTime, activityMinutes)
	if err != nil {
		return "", err
	}
	return breakdown.EndTime, nil
}
