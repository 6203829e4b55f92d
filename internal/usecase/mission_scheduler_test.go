package usecase

import (
	"context"
	"testing"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/scheduling"
	"trainops-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schedulerFixture struct {
	scheduler   *MissionScheduler
	missionRepo *fakeMissionRepo
	invoiceRepo *fakeInvoiceRepo
	calendar    *fakeCalendarRepo
	handler     *recordingHandler
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()
	log := logger.NewLogger()

	missionRepo := newFakeMissionRepo()
	enrollmentRepo := &fakeEnrollmentRepo{enrollments: map[string]*entity.Enrollment{
		"enr-1": {ID: "enr-1", StudentID: "stu-1", SyllabusID: "syl-1", ProgramCode: "PPL", Status: entity.EnrollmentActive},
		"enr-2": {ID: "enr-2", StudentID: "stu-2", SyllabusID: "syl-1", ProgramCode: "PPL", Status: entity.EnrollmentWithdrawn},
	}}
	profileRepo := &fakeProfileRepo{profiles: map[string]*entity.Profile{
		"stu-1": {ID: "stu-1", Role: entity.RoleStudent, FirstName: "Ada", LastName: "Muir", Email: "ada@example.com"},
		"ins-1": {ID: "ins-1", Role: entity.RoleInstructor, FirstName: "Ben", LastName: "Ferro", Email: "ben@example.com"},
	}}
	aircraftRepo := &fakeAircraftRepo{aircraft: map[string]*entity.Aircraft{
		"ac-1": {ID: "ac-1", TailNumber: "C-GABC", Make: "Cessna", Model: "172", Status: entity.AircraftActive},
	}}
	availabilityRepo := &fakeAvailabilityRepo{records: map[string]*entity.AvailabilityRecord{}}
	syllabusRepo := &fakeSyllabusRepo{
		syllabi: map[string]*entity.Syllabus{"syl-1": {ID: "syl-1", ProgramCode: "PPL"}},
		lessons: []entity.SyllabusLesson{
			{ID: "les-1", SyllabusID: "syl-1", Title: "Straight and Level", OrderIndex: 1, EstimatedMinutes: 60},
		},
	}
	invoiceRepo := &fakeInvoiceRepo{}
	calendar := &fakeCalendarRepo{}

	checker := scheduling.NewChecker(NewResourceQuery(missionRepo, availabilityRepo, aircraftRepo))

	notifier := NewNotifier(log)
	handler := &recordingHandler{}
	notifier.RegisterHandler(handler)

	billing := NewBillingService(invoiceRepo, BillingRates{FlightCents: 7500, GroundCents: 6000, SimulatorCents: 6500}, log)

	scheduler := NewMissionScheduler(
		missionRepo, enrollmentRepo, profileRepo, aircraftRepo, syllabusRepo,
		calendar, checker, notifier, billing, log, testMetrics)

	return &schedulerFixture{
		scheduler:   scheduler,
		missionRepo: missionRepo,
		invoiceRepo: invoiceRepo,
		calendar:    calendar,
		handler:     handler,
	}
}

func TestScheduleMission(t *testing.T) {
	f := newSchedulerFixture(t)

	mission, breakdown, err := f.scheduler.Schedule(context.Background(), ScheduleMissionInput{
		EnrollmentID:     "enr-1",
		InstructorID:     "ins-1",
		AircraftID:       "ac-1",
		LessonTemplateID: "les-1",
		Category:         entity.CategoryFlight,
		Date:             "2025-06-14",
		StartTime:        "08:00",
		ActivityMinutes:  90,
	})
	require.NoError(t, err)

	assert.Equal(t, "PPL-1", mission.Code)
	assert.Equal(t, "stu-1", mission.StudentID)
	assert.Equal(t, entity.MissionScheduled, mission.Status)
	assert.Equal(t, "11:00", mission.EndTime)
	assert.Equal(t, "11:00", breakdown.EndTime)
	assert.Len(t, breakdown.Blocks, 4)

	// Persisted through the reservation path
	stored, err := f.missionRepo.GetByID(context.Background(), mission.ID)
	require.NoError(t, err)
	assert.Equal(t, mission.Code, stored.Code)

	// Both participants notified, calendar updated
	require.Len(t, f.handler.events, 1)
	event := f.handler.events[0]
	assert.Equal(t, EventMissionScheduled, event.Type)
	assert.Equal(t, "Ada Muir", event.Student.FullName())
	assert.Equal(t, "Straight and Level", event.Lesson.Title)
	require.Len(t, f.calendar.events, 1)
	assert.Equal(t, entity.CalendarEventCreated, f.calendar.events[0].Action)
	assert.Equal(t, "C-GABC", f.calendar.events[0].TailNumber)
}

func TestScheduleMissionCodeIncrements(t *testing.T) {
	f := newSchedulerFixture(t)

	input := ScheduleMissionInput{
		EnrollmentID:    "enr-1",
		InstructorID:    "ins-1",
		AircraftID:      "ac-1",
		Category:        entity.CategoryFlight,
		Date:            "2025-06-14",
		StartTime:       "08:00",
		ActivityMinutes: 60,
	}
	first, _, err := f.scheduler.Schedule(context.Background(), input)
	require.NoError(t, err)

	input.Date = "2025-06-15"
	second, _, err := f.scheduler.Schedule(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "PPL-1", first.Code)
	assert.Equal(t, "PPL-2", second.Code)
}

func TestScheduleRejectsConflictingSlot(t *testing.T) {
	f := newSchedulerFixture(t)

	input := ScheduleMissionInput{
		EnrollmentID:    "enr-1",
		InstructorID:    "ins-1",
		AircraftID:      "ac-1",
		Category:        entity.CategoryFlight,
		Date:            "2025-06-14",
		StartTime:       "08:00",
		ActivityMinutes: 90,
	}
	_, _, err := f.scheduler.Schedule(context.Background(), input)
	require.NoError(t, err)

	// Same student, same day, overlapping window
	input.StartTime = "09:00"
	_, _, err = f.scheduler.Schedule(context.Background(), input)
	require.Error(t, err)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.False(t, conflictErr.Result.Available)
	assert.NotEmpty(t, conflictErr.Result.Conflicts)

	// The losing booking must not be persisted
	missions, err := f.missionRepo.ListByEnrollment(context.Background(), "enr-1")
	require.NoError(t, err)
	assert.Len(t, missions, 1)
}

func TestScheduleRejectsInactiveEnrollment(t *testing.T) {
	f := newSchedulerFixture(t)

	_, _, err := f.scheduler.Schedule(context.Background(), ScheduleMissionInput{
		EnrollmentID:    "enr-2",
		InstructorID:    "ins-1",
		Category:        entity.CategoryGround,
		Date:            "2025-06-14",
		StartTime:       "08:00",
		ActivityMinutes: 60,
	})
	assert.ErrorContains(t, err, "not active")
}

func TestScheduleUsesLessonEstimateWhenDurationOmitted(t *testing.T) {
	f := newSchedulerFixture(t)

	mission, _, err := f.scheduler.Schedule(context.Background(), ScheduleMissionInput{
		EnrollmentID:     "enr-1",
		InstructorID:     "ins-1",
		AircraftID:       "ac-1",
		LessonTemplateID: "les-1",
		Category:         entity.CategoryFlight,
		Date:             "2025-06-14",
		StartTime:        "08:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 60, mission.ActivityMinutes)
}

func TestCancelMission(t *testing.T) {
	f := newSchedulerFixture(t)

	mission, _, err := f.scheduler.Schedule(context.Background(), ScheduleMissionInput{
		EnrollmentID:    "enr-1",
		InstructorID:    "ins-1",
		AircraftID:      "ac-1",
		Category:        entity.CategoryFlight,
		Date:            "2025-06-14",
		StartTime:       "08:00",
		ActivityMinutes: 90,
	})
	require.NoError(t, err)
	f.handler.events = nil
	f.calendar.events = nil

	cancelled, err := f.scheduler.Cancel(context.Background(), mission.ID, "weather below minimums")
	require.NoError(t, err)
	assert.Equal(t, entity.MissionCancelled, cancelled.Status)
	assert.Equal(t, "weather below minimums", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledAt)

	require.Len(t, f.handler.events, 1)
	assert.Equal(t, EventMissionCancelled, f.handler.events[0].Type)
	require.Len(t, f.calendar.events, 1)
	assert.Equal(t, entity.CalendarEventCancelled, f.calendar.events[0].Action)

	// Cancelling twice fails
	_, err = f.scheduler.Cancel(context.Background(), mission.ID, "again")
	assert.Error(t, err)
}

func TestCancelledMissionFreesTheSlot(t *testing.T) {
	f := newSchedulerFixture(t)

	input := ScheduleMissionInput{
		EnrollmentID:    "enr-1",
		InstructorID:    "ins-1",
		AircraftID:      "ac-1",
		Category:        entity.CategoryFlight,
		Date:            "2025-06-14",
		StartTime:       "08:00",
		ActivityMinutes: 90,
	}
	mission, _, err := f.scheduler.Schedule(context.Background(), input)
	require.NoError(t, err)

	_, err = f.scheduler.Cancel(context.Background(), mission.ID, "maintenance")
	require.NoError(t, err)

	_, _, err = f.scheduler.Schedule(context.Background(), input)
	assert.NoError(t, err)
}

func TestCompleteMissionIssuesInvoice(t *testing.T) {
	f := newSchedulerFixture(t)

	mission, breakdown, err := f.scheduler.Schedule(context.Background(), ScheduleMissionInput{
		EnrollmentID:    "enr-1",
		InstructorID:    "ins-1",
		AircraftID:      "ac-1",
		Category:        entity.CategoryFlight,
		Date:            "2025-06-14",
		StartTime:       "08:00",
		ActivityMinutes: 60,
	})
	require.NoError(t, err)
	f.handler.events = nil

	completed, err := f.scheduler.Complete(context.Background(), mission.ID, entity.AssessmentSatisfactory)
	require.NoError(t, err)
	assert.Equal(t, entity.MissionCompleted, completed.Status)
	assert.Equal(t, entity.AssessmentSatisfactory, completed.Assessment)
	require.NotNil(t, completed.CompletedAt)

	require.Len(t, f.invoiceRepo.invoices, 1)
	invoice := f.invoiceRepo.invoices[0]
	assert.Equal(t, mission.ID, invoice.MissionID)
	assert.Len(t, invoice.LineItems, len(breakdown.Blocks))

	// 2.5 billed hours at $75/hr
	assert.Equal(t, int64(18750), invoice.TotalCents)

	require.Len(t, f.handler.events, 1)
	assert.Equal(t, EventInvoiceIssued, f.handler.events[0].Type)
	assert.Equal(t, invoice.ID, f.handler.events[0].Invoice.ID)
}

func TestCompleteRejectsUnknownAssessment(t *testing.T) {
	f := newSchedulerFixture(t)

	_, err := f.scheduler.Complete(context.Background(), "whatever", "excellent")
	assert.ErrorContains(t, err, "unknown assessment")
}

func TestReminderPass(t *testing.T) {
	f := newSchedulerFixture(t)

	f.missionRepo.remindable = []*entity.Mission{
		{
			ID:              "mis-1",
			Code:            "PPL-3",
			StudentID:       "stu-1",
			InstructorID:    "ins-1",
			Category:        entity.CategoryFlight,
			ScheduledDate:   time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
			StartTime:       "09:00",
			ActivityMinutes: 60,
			Status:          entity.MissionScheduled,
		},
	}

	f.scheduler.RunReminderPass(context.Background())

	require.Len(t, f.handler.events, 1)
	assert.Equal(t, EventMissionReminder, f.handler.events[0].Type)
	assert.Equal(t, []string{"mis-1"}, f.missionRepo.reminderMarked)
}
