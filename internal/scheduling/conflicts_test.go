package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainops-service/internal/domain/entity"
)

// fakeResources is an in-memory ResourceQuery for checker tests
type fakeResources struct {
	studentMissions    []*entity.Mission
	instructorMissions []*entity.Mission
	aircraftMissions   []*entity.Mission
	availability       *entity.AvailabilityRecord
	maintenance        []*entity.MaintenanceEvent
}

func (f *fakeResources) MissionsForStudent(_ context.Context, _, _ string) ([]*entity.Mission, error) {
	return f.studentMissions, nil
}

func (f *fakeResources) MissionsForInstructor(_ context.Context, _, _ string) ([]*entity.Mission, error) {
	return f.instructorMissions, nil
}

func (f *fakeResources) MissionsForAircraft(_ context.Context, _, _ string) ([]*entity.Mission, error) {
	return f.aircraftMissions, nil
}

func (f *fakeResources) InstructorAvailability(_ context.Context, _, _ string) (*entity.AvailabilityRecord, error) {
	return f.availability, nil
}

func (f *fakeResources) AircraftMaintenance(_ context.Context, _, _ string) ([]*entity.MaintenanceEvent, error) {
	return f.maintenance, nil
}

func groundMission(id, start string, activity int) *entity.Mission {
	return &entity.Mission{
		ID:              id,
		Code:            "PPL-" + id,
		Category:        entity.CategoryGround,
		StartTime:       start,
		ActivityMinutes: activity,
		Status:          entity.MissionScheduled,
	}
}

func flightMission(id, start string, activity int) *entity.Mission {
	mission := groundMission(id, start, activity)
	mission.Category = entity.CategoryFlight
	return mission
}

func TestCheckAvailabilityNoCommitments(t *testing.T) {
	checker := NewChecker(&fakeResources{})

	result, err := checker.CheckAvailability(context.Background(), CheckRequest{
		Date:            "2025-06-14",
		StartTime:       "09:00",
		ActivityMinutes: 60,
		Category:        entity.CategoryGround,
		StudentID:       "stu-1",
		InstructorID:    "ins-1",
	})
	require.NoError(t, err)

	assert.True(t, result.Available)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, "11:00", result.EndTime)
}

func TestCheckAvailabilityAdjacentMissionsDoNotConflict(t *testing.T) {
	// Existing instructor mission occupies [09:00, 10:30); the proposal
	// occupies [10:30, 12:00). Touching endpoints are legal.
	checker := NewChecker(&fakeResources{
		instructorMissions: []*entity.Mission{groundMission("m1", "09:00", 30)},
	})

	result, err := checker.CheckAvailability(context.Background(), CheckRequest{
		Date:            "2025-06-14",
		StartTime:       "10:30",
		ActivityMinutes: 30,
		Category:        entity.CategoryGround,
		InstructorID:    "ins-1",
	})
	require.NoError(t, err)

	assert.True(t, result.Available)
	assert.Empty(t, result.Conflicts)
}

func TestCheckAvailabilityAircraftOverlap(t *testing.T) {
	// Existing aircraft mission occupies [09:00, 11:00); the proposal
	// occupies [10:00, 12:00). True overlap must be flagged.
	checker := NewChecker(&fakeResources{
		aircraftMissions: []*entity.Mission{flightMission("m7", "09:00", 30)},
	})

	result, err := checker.CheckAvailability(context.Background(), CheckRequest{
		Date:            "2025-06-14",
		StartTime:       "10:00",
		ActivityMinutes: 30,
		Category:        entity.CategoryFlight,
		AircraftID:      "ac-1",
	})
	require.NoError(t, err)

	assert.False(t, result.Available)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, ConflictAircraft, result.Conflicts[0].Type)
	require.NotNil(t, result.Conflicts[0].Mission)
	assert.Equal(t, "m7", result.Conflicts[0].Mission.ID)
	assert.Equal(t, "PPL-m7", result.Conflicts[0].Mission.Code)
	assert.Contains(t, result.Conflicts[0].Message, "09:00")
	assert.Contains(t, result.Conflicts[0].Message, "11:00")
}

func TestCheckAvailabilityMultipleConflictTypes(t *testing.T) {
	// Student, instructor and aircraft all overlap, the instructor is also
	// marked unavailable, and the aircraft is down for maintenance. All five
	// conflicts must be reported; the check never short-circuits.
	checker := NewChecker(&fakeResources{
		studentMissions:    []*entity.Mission{groundMission("m1", "08:00", 120)},
		instructorMissions: []*entity.Mission{groundMission("m2", "08:30", 90)},
		aircraftMissions:   []*entity.Mission{flightMission("m3", "07:30", 120)},
		availability: &entity.AvailabilityRecord{
			ResourceID: "ins-1",
			Date:       "2025-06-14",
			Status:     entity.AvailabilityNotAvailable,
		},
		maintenance: []*entity.MaintenanceEvent{{
			AircraftID: "ac-1",
			Status:     "scheduled",
			StartDate:  "2025-06-13",
			EndDate:    "2025-06-15",
		}},
	})

	result, err := checker.CheckAvailability(context.Background(), CheckRequest{
		Date:            "2025-06-14",
		StartTime:       "09:00",
		ActivityMinutes: 90,
		Category:        entity.CategoryFlight,
		StudentID:       "stu-1",
		InstructorID:    "ins-1",
		AircraftID:      "ac-1",
	})
	require.NoError(t, err)

	assert.False(t, result.Available)
	require.Len(t, result.Conflicts, 5)

	counts := map[ConflictType]int{}
	for _, conflict := range result.Conflicts {
		counts[conflict.Type]++
	}
	assert.Equal(t, 1, counts[ConflictStudent])
	assert.Equal(t, 2, counts[ConflictInstructor])
	assert.Equal(t, 2, counts[ConflictAircraft])
}

func TestCheckAvailabilityAircraftIgnoredForGround(t *testing.T) {
	checker := NewChecker(&fakeResources{
		aircraftMissions: []*entity.Mission{flightMission("m1", "09:00", 120)},
		maintenance:      []*entity.MaintenanceEvent{{AircraftID: "ac-1"}},
	})

	result, err := checker.CheckAvailability(context.Background(), CheckRequest{
		Date:            "2025-06-14",
		StartTime:       "09:00",
		ActivityMinutes: 60,
		Category:        entity.CategoryGround,
		AircraftID:      "ac-1",
	})
	require.NoError(t, err)

	assert.True(t, result.Available)
}

func TestCheckAvailabilityDefaultDurationFallback(t *testing.T) {
	// A legacy mission without a recorded duration is assumed to run
	// DefaultActivityMinutes: ground at 13:00 -> [13:00, 16:00).
	legacy := groundMission("m1", "13:00", 0)
	checker := NewChecker(&fakeResources{
		instructorMissions: []*entity.Mission{legacy},
	})

	result, err := checker.CheckAvailability(context.Background(), CheckRequest{
		Date:            "2025-06-14",
		StartTime:       "15:00",
		ActivityMinutes: 30,
		Category:        entity.CategoryGround,
		InstructorID:    "ins-1",
	})
	require.NoError(t, err)

	assert.False(t, result.Available)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0].Message, "16:00")
}

func TestCheckAvailabilityExcludesOwnMission(t *testing.T) {
	checker := NewChecker(&fakeResources{
		instructorMissions: []*entity.Mission{groundMission("m1", "09:00", 60)},
	})

	result, err := checker.CheckAvailability(context.Background(), CheckRequest{
		Date:             "2025-06-14",
		StartTime:        "09:00",
		ActivityMinutes:  60,
		Category:         entity.CategoryGround,
		InstructorID:     "ins-1",
		ExcludeMissionID: "m1",
	})
	require.NoError(t, err)

	assert.True(t, result.Available)
}

func TestCheckAvailabilityRejectsCrossMidnight(t *testing.T) {
	checker := NewChecker(&fakeResources{})

	_, err := checker.CheckAvailability(context.Background(), CheckRequest{
		Date:            "2025-06-14",
		StartTime:       "23:00",
		ActivityMinutes: 90,
		Category:        entity.CategoryGround,
		InstructorID:    "ins-1",
	})
	assert.Error(t, err)
}

func TestCheckAvailabilityIdempotent(t *testing.T) {
	resources := &fakeResources{
		instructorMissions: []*entity.Mission{groundMission("m1", "09:30", 60)},
	}
	checker := NewChecker(resources)

	req := CheckRequest{
		Date:            "2025-06-14",
		StartTime:       "10:00",
		ActivityMinutes: 60,
		Category:        entity.CategoryGround,
		InstructorID:    "ins-1",
	}

	first, err := checker.CheckAvailability(context.Background(), req)
	require.NoError(t, err)
	second, err := checker.CheckAvailability(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
