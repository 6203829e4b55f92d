package scheduling

import (
	"context"
	"fmt"

	"trainops-service/internal/domain/entity"
	"trainops-service/pkg/timeutil"
)

// DefaultActivityMinutes is assumed for existing missions whose activity
// duration was never recorded (legacy rows).
const DefaultActivityMinutes = 120

// ConflictType identifies which resource pool a conflict was found in
type ConflictType string

const (
	ConflictStudent    ConflictType = "student"
	ConflictInstructor ConflictType = "instructor"
	ConflictAircraft   ConflictType = "aircraft"
)

// ConflictRef points at the mission colliding with the proposal
type ConflictRef struct {
	ID   string `json:"id"`
	Code string `json:"code,omitempty"`
}

// Conflict is one detected collision between a proposed mission and an
// existing commitment or blackout. Produced fresh on every check, never
// persisted.
type Conflict struct {
	Type    ConflictType `json:"type"`
	Message string       `json:"message"`
	Mission *ConflictRef `json:"mission,omitempty"`
}

// CheckRequest is a proposed mission to validate
type CheckRequest struct {
	Date            string
	StartTime       string
	ActivityMinutes int
	Category        entity.MissionCategory
	StudentID       string
	InstructorID    string
	AircraftID      string

	// ExcludeMissionID drops one mission from the comparison set, so a
	// mission being rescheduled does not conflict with itself.
	ExcludeMissionID string
}

// Result is the outcome of an availability check
type Result struct {
	Available bool       `json:"available"`
	Conflicts []Conflict `json:"conflicts"`
	EndTime   string     `json:"end_time"`
}

// ResourceQuery supplies the existing commitments of each resource pool.
// Implementations read from storage; the checker itself never mutates state.
type ResourceQuery interface {
	MissionsForStudent(ctx context.Context, studentID, date string) ([]*entity.Mission, error)
	MissionsForInstructor(ctx context.Context, instructorID, date string) ([]*entity.Mission, error)
	MissionsForAircraft(ctx context.Context, aircraftID, date string) ([]*entity.Mission, error)
	InstructorAvailability(ctx context.Context, instructorID, date string) (*entity.AvailabilityRecord, error)
	AircraftMaintenance(ctx context.Context, aircraftID, date string) ([]*entity.MaintenanceEvent, error)
}

// Checker detects scheduling conflicts across the student, instructor and
// aircraft resource pools
type Checker struct {
	resources ResourceQuery
}

// NewChecker creates a conflict checker over the given resource query
func NewChecker(resources ResourceQuery) *Checker {
	return &Checker{resources: resources}
}

// CheckAvailability validates a proposed mission against each involved
// resource's existing commitments. All supplied roles are checked; conflicts
// of different types accumulate rather than short-circuiting, so the caller
// gets the complete picture. The check is read-only; serializing it against
// the subsequent insert is the mission repository's job.
func (c *Checker) CheckAvailability(ctx context.Context, req CheckRequest) (*Result, error) {
	breakdown, err := ComputeTimeBlocks(req.Category, req.StartTime, req.ActivityMinutes)
	if err != nil {
		return nil, err
	}
	if breakdown.CrossesMidnight() {
		return nil, fmt.Errorf("mission starting at %s would end past midnight (%s); cross-midnight missions are not supported",
			req.StartTime, breakdown.EndTime)
	}
	if req.Date == "" {
		return nil, fmt.Errorf("mission date is required")
	}

	result := &Result{
		Conflicts: []Conflict{},
		EndTime:   breakdown.EndTime,
	}

	if req.StudentID != "" {
		missions, err := c.resources.MissionsForStudent(ctx, req.StudentID, req.Date)
		if err != nil {
			return nil, fmt.Errorf("query student missions: %w", err)
		}
		c.collectOverlaps(result, missions, breakdown, req.ExcludeMissionID, ConflictStudent,
			"Student already has a mission scheduled from %s to %s")
	}

	if req.InstructorID != "" {
		missions, err := c.resources.MissionsForInstructor(ctx, req.InstructorID, req.Date)
		if err != nil {
			return nil, fmt.Errorf("query instructor missions: %w", err)
		}
		c.collectOverlaps(result, missions, breakdown, req.ExcludeMissionID, ConflictInstructor,
			"Instructor already scheduled from %s to %s")

		record, err := c.resources.InstructorAvailability(ctx, req.InstructorID, req.Date)
		if err != nil {
			return nil, fmt.Errorf("query instructor availability: %w", err)
		}
		if record != nil && record.Status == entity.AvailabilityNotAvailable {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictInstructor,
				Message: "Instructor marked as not available on this date",
			})
		}
	}

	// Aircraft only participate in flight missions
	if req.Category == entity.CategoryFlight && req.AircraftID != "" {
		missions, err := c.resources.MissionsForAircraft(ctx, req.AircraftID, req.Date)
		if err != nil {
			return nil, fmt.Errorf("query aircraft missions: %w", err)
		}
		c.collectOverlaps(result, missions, breakdown, req.ExcludeMissionID, ConflictAircraft,
			"Aircraft already scheduled from %s to %s")

		maintenance, err := c.resources.AircraftMaintenance(ctx, req.AircraftID, req.Date)
		if err != nil {
			return nil, fmt.Errorf("query aircraft maintenance: %w", err)
		}
		if len(maintenance) > 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictAircraft,
				Message: "Aircraft is scheduled for maintenance on this date",
			})
		}
	}

	result.Available = len(result.Conflicts) == 0
	return result, nil
}

// collectOverlaps appends one conflict per existing mission whose derived
// interval overlaps the proposal's
func (c *Checker) collectOverlaps(result *Result, existing []*entity.Mission, proposed *Breakdown, excludeID string, conflictType ConflictType, messageFormat string) {
	for _, mission := range existing {
		if excludeID != "" && mission.ID == excludeID {
			continue
		}

		start, end, ok := missionInterval(mission)
		if !ok {
			continue
		}

		if overlaps(proposed.StartMinutes, proposed.EndMinutes, start, end) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: conflictType,
				Message: fmt.Sprintf(messageFormat,
					timeutil.FormatClock(start), timeutil.FormatClock(end)),
				Mission: &ConflictRef{ID: mission.ID, Code: mission.Code},
			})
		}
	}
}

// missionInterval derives an existing mission's [start, end) interval in
// minutes from midnight, preferring the stored activity duration and falling
// back to DefaultActivityMinutes for rows that never recorded one. Degenerate
// intervals are dropped from overlap testing.
func missionInterval(mission *entity.Mission) (start, end int, ok bool) {
	startTime := mission.StartTime
	if startTime == "" {
		startTime = "00:00"
	}
	start, err := timeutil.ParseClock(startTime)
	if err != nil {
		return 0, 0, false
	}

	activity := mission.ActivityMinutes
	if activity <= 0 {
		activity = DefaultActivityMinutes
	}

	breakdown, err := ComputeTimeBlocks(mission.Category, startTime, activity)
	if err != nil {
		return 0, 0, false
	}

	end = breakdown.EndMinutes
	if end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// overlaps tests two half-open intervals [s1,e1) and [s2,e2). Touching
// endpoints do not overlap, so back-to-back missions are legal.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}
