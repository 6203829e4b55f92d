package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainops-service/internal/domain/entity"
)

func TestComputeTimeBlocksFlight(t *testing.T) {
	breakdown, err := ComputeTimeBlocks(entity.CategoryFlight, "08:00", 90)
	require.NoError(t, err)

	require.Len(t, breakdown.Blocks, 4)

	assert.Equal(t, LabelPreFlight, breakdown.Blocks[0].Label)
	assert.Equal(t, "08:00", breakdown.Blocks[0].StartTime)
	assert.Equal(t, "08:30", breakdown.Blocks[0].EndTime)
	assert.Equal(t, []Participant{ParticipantStudent}, breakdown.Blocks[0].Participants)

	assert.Equal(t, LabelPreBrief, breakdown.Blocks[1].Label)
	assert.Equal(t, "08:30", breakdown.Blocks[1].StartTime)
	assert.Equal(t, "09:00", breakdown.Blocks[1].EndTime)

	assert.Equal(t, "Flight Training", breakdown.Blocks[2].Label)
	assert.Equal(t, "09:00", breakdown.Blocks[2].StartTime)
	assert.Equal(t, "10:30", breakdown.Blocks[2].EndTime)
	assert.Equal(t, 90, breakdown.Blocks[2].DurationMinutes)

	assert.Equal(t, LabelPostBrief, breakdown.Blocks[3].Label)
	assert.Equal(t, "10:30", breakdown.Blocks[3].StartTime)
	assert.Equal(t, "11:00", breakdown.Blocks[3].EndTime)

	assert.Equal(t, "11:00", breakdown.EndTime)
	assert.Equal(t, 180, breakdown.TotalStudentMinutes)
	assert.Equal(t, 150, breakdown.TotalInstructorMinutes)
	assert.Equal(t, "08:00", breakdown.StudentStartTime)
	assert.Equal(t, "08:30", breakdown.InstructorStartTime)
}

func TestComputeTimeBlocksGround(t *testing.T) {
	breakdown, err := ComputeTimeBlocks(entity.CategoryGround, "14:00", 60)
	require.NoError(t, err)

	require.Len(t, breakdown.Blocks, 3)
	assert.Equal(t, LabelPreBrief, breakdown.Blocks[0].Label)
	assert.Equal(t, "14:00", breakdown.Blocks[0].StartTime)
	assert.Equal(t, "14:30", breakdown.Blocks[0].EndTime)
	assert.Equal(t, "Ground Instruction", breakdown.Blocks[1].Label)
	assert.Equal(t, "14:30", breakdown.Blocks[1].StartTime)
	assert.Equal(t, "15:30", breakdown.Blocks[1].EndTime)
	assert.Equal(t, LabelPostBrief, breakdown.Blocks[2].Label)
	assert.Equal(t, "15:30", breakdown.Blocks[2].StartTime)
	assert.Equal(t, "16:00", breakdown.Blocks[2].EndTime)

	assert.Equal(t, "16:00", breakdown.EndTime)
	assert.Equal(t, 120, breakdown.TotalStudentMinutes)
	assert.Equal(t, 120, breakdown.TotalInstructorMinutes)
	// No student-only pre-activity block: both start together.
	assert.Equal(t, breakdown.StudentStartTime, breakdown.InstructorStartTime)
}

func TestComputeTimeBlocksSimulator(t *testing.T) {
	breakdown, err := ComputeTimeBlocks(entity.CategorySimulator, "09:15", 45)
	require.NoError(t, err)

	require.Len(t, breakdown.Blocks, 3)
	assert.Equal(t, "Simulator Session", breakdown.Blocks[1].Label)
	assert.Equal(t, "10:45", breakdown.EndTime)
}

func TestComputeTimeBlocksContiguous(t *testing.T) {
	for _, category := range []entity.MissionCategory{
		entity.CategoryFlight, entity.CategoryGround, entity.CategorySimulator,
	} {
		breakdown, err := ComputeTimeBlocks(category, "10:20", 75)
		require.NoError(t, err, category.Label())

		assert.Equal(t, "10:20", breakdown.Blocks[0].StartTime, category.Label())
		for i := 1; i < len(breakdown.Blocks); i++ {
			assert.Equal(t, breakdown.Blocks[i-1].EndTime, breakdown.Blocks[i].StartTime,
				"%s block %d not contiguous", category.Label(), i)
		}
		assert.Equal(t, breakdown.EndTime, breakdown.Blocks[len(breakdown.Blocks)-1].EndTime, category.Label())
	}
}

func TestComputeTimeBlocksDeterministic(t *testing.T) {
	first, err := ComputeTimeBlocks(entity.CategoryFlight, "08:00", 90)
	require.NoError(t, err)
	second, err := ComputeTimeBlocks(entity.CategoryFlight, "08:00", 90)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeTimeBlocksRejectsBadInput(t *testing.T) {
	_, err := ComputeTimeBlocks(entity.CategoryFlight, "8am", 60)
	assert.Error(t, err)

	_, err = ComputeTimeBlocks(entity.CategoryFlight, "25:00", 60)
	assert.Error(t, err)

	_, err = ComputeTimeBlocks(entity.CategoryGround, "10:00", 0)
	assert.Error(t, err)

	_, err = ComputeTimeBlocks(entity.CategoryGround, "10:00", -30)
	assert.Error(t, err)
}

func TestComputeTimeBlocksCrossMidnight(t *testing.T) {
	breakdown, err := ComputeTimeBlocks(entity.CategoryFlight, "22:30", 90)
	require.NoError(t, err)
	assert.True(t, breakdown.CrossesMidnight())
	// Display value wraps; the raw minute count does not.
	assert.Equal(t, "01:30", breakdown.EndTime)
	assert.Equal(t, 25*60+30, breakdown.EndMinutes)
}

func TestEndTimeFor(t *testing.T) {
	end, err := EndTimeFor(entity.CategoryGround, "14:00", 60)
	require.NoError(t, err)
	assert.Equal(t, "16:00", end)
}

func TestParseMissionCategory(t *testing.T) {
	for _, tc := range []struct {
		code string
		want entity.MissionCategory
		ok   bool
	}{
		{"F", entity.CategoryFlight, true},
		{"G", entity.CategoryGround, true},
		{"S", entity.CategorySimulator, true},
		{"X", 0, false},
		{"", 0, false},
		{"f", 0, false},
	} {
		got, err := entity.ParseMissionCategory(tc.code)
		if tc.ok {
			require.NoError(t, err, tc.code)
			assert.Equal(t, tc.want, got, tc.code)
		} else {
			assert.Error(t, err, tc.code)
		}
	}
}
