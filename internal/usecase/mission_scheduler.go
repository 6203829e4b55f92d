package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"
	"trainops-service/internal/scheduling"
	"trainops-service/pkg/logger"
	"trainops-service/pkg/metrics"

	"github.com/google/uuid"
)

// ConflictError is returned by Schedule when the requested slot is taken
type ConflictError struct {
	Result *scheduling.Result
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot unavailable: %d conflict(s)", len(e.Result.Conflicts))
}

// ScheduleMissionInput is a request to book a new mission
type ScheduleMissionInput struct {
	EnrollmentID     string
	InstructorID     string
	AircraftID       string
	LessonTemplateID string
	Category         entity.MissionCategory
	Date             string
	StartTime        string
	ActivityMinutes  int
}

// MissionScheduler owns the mission lifecycle: booking, cancellation,
// completion and the reminder pass.
type MissionScheduler struct {
	missionRepo    repository.MissionRepository
	enrollmentRepo repository.EnrollmentRepository
	profileRepo    repository.ProfileRepository
	aircraftRepo   repository.AircraftRepository
	syllabusRepo   repository.SyllabusRepository
	calendarRepo   repository.CalendarRepository
	checker        *scheduling.Checker
	notifier       *Notifier
	billing        *BillingService
	logger         logger.Logger
	metrics        *metrics.Metrics
}

// NewMissionScheduler creates a new mission scheduler
func NewMissionScheduler(
	missionRepo repository.MissionRepository,
	enrollmentRepo repository.EnrollmentRepository,
	profileRepo repository.ProfileRepository,
	aircraftRepo repository.AircraftRepository,
	syllabusRepo repository.SyllabusRepository,
	calendarRepo repository.CalendarRepository,
	checker *scheduling.Checker,
	notifier *Notifier,
	billing *BillingService,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *MissionScheduler {
	return &MissionScheduler{
		missionRepo:    missionRepo,
		enrollmentRepo: enrollmentRepo,
		profileRepo:    profileRepo,
		aircraftRepo:   aircraftRepo,
		syllabusRepo:   syllabusRepo,
		calendarRepo:   calendarRepo,
		checker:        checker,
		notifier:       notifier,
		billing:        billing,
		logger:         logger,
		metrics:        metrics,
	}
}

// Schedule books a mission. The availability check runs inside the
// reservation transaction while advisory locks on the three resource/date
// pairs are held, so two concurrent bookings of the same resource serialize
// and the loser sees the winner's row.
func (s *MissionScheduler) Schedule(ctx context.Context, input ScheduleMissionInput) (*entity.Mission, *scheduling.Breakdown, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, input.EnrollmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load enrollment: %w", err)
	}
	if enrollment.Status != entity.EnrollmentActive {
		return nil, nil, fmt.Errorf("enrollment %s is %s, not active", enrollment.ID, enrollment.Status)
	}

	var lesson *entity.SyllabusLesson
	if input.LessonTemplateID != "" {
		lesson, err = s.syllabusRepo.GetLesson(ctx, input.LessonTemplateID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load lesson template: %w", err)
		}
	}

	activityMinutes := input.ActivityMinutes
	if activityMinutes <= 0 && lesson != nil {
		activityMinutes = lesson.EstimatedMinutes
	}

	breakdown, err := scheduling.ComputeTimeBlocks(input.Category, input.StartTime, activityMinutes)
	if err != nil {
		return nil, nil, err
	}

	checkReq := scheduling.CheckRequest{
		Date:            input.Date,
		StartTime:       input.StartTime,
		ActivityMinutes: activityMinutes,
		Category:        input.Category,
		StudentID:       enrollment.StudentID,
		InstructorID:    input.InstructorID,
		AircraftID:      input.AircraftID,
	}

	count, err := s.missionRepo.CountByEnrollment(ctx, input.EnrollmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count enrollment missions: %w", err)
	}

	now := time.Now()
	mission := &entity.Mission{
		ID:               uuid.NewString(),
		Code:             fmt.Sprintf("%s-%d", enrollment.ProgramCode, count+1),
		EnrollmentID:     enrollment.ID,
		StudentID:        enrollment.StudentID,
		InstructorID:     input.InstructorID,
		AircraftID:       input.AircraftID,
		Category:         input.Category,
		LessonTemplateID: input.LessonTemplateID,
		ScheduledDate:    input.Date,
		StartTime:        input.StartTime,
		ActivityMinutes:  activityMinutes,
		EndTime:          breakdown.EndTime,
		Status:           entity.MissionScheduled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	lockKeys := reservationLockKeys(mission)
	err = s.missionRepo.Reserve(ctx, mission, lockKeys, func(ctx context.Context) error {
		result, checkErr := s.checker.CheckAvailability(ctx, checkReq)
		if checkErr != nil {
			return checkErr
		}
		if !result.Available {
			for _, conflict := range result.Conflicts {
				s.metrics.ConflictsDetected.WithLabelValues(string(conflict.Type)).Inc()
			}
			return &ConflictError{Result: result}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.metrics.MissionsScheduled.Inc()
	s.logger.Info("Mission scheduled",
		"missionId", mission.ID,
		"code", mission.Code,
		"date", mission.ScheduledDate,
		"start", mission.StartTime)

	event := s.buildEvent(ctx, EventMissionScheduled, mission, breakdown)
	event.Lesson = lesson
	s.notifier.Dispatch(ctx, event)
	s.pushCalendar(ctx, entity.CalendarEventCreated, mission, event)

	return mission, breakdown, nil
}

// Cancel marks a scheduled mission cancelled and notifies the participants
func (s *MissionScheduler) Cancel(ctx context.Context, id, reason string) (*entity.Mission, error) {
	mission, err := s.missionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mission.Status != entity.MissionScheduled && mission.Status != entity.MissionInProgress {
		return nil, fmt.Errorf("mission %s is %s and cannot be cancelled", mission.Code, mission.Status)
	}

	now := time.Now()
	mission.Status = entity.MissionCancelled
	mission.CancellationReason = reason
	mission.CancelledAt = &now
	mission.UpdatedAt = now

	if err := s.missionRepo.Update(ctx, mission); err != nil {
		return nil, fmt.Errorf("failed to cancel mission: %w", err)
	}

	s.metrics.MissionsCancelled.Inc()
	s.logger.Info("Mission cancelled", "missionId", mission.ID, "reason", reason)

	breakdown, _ := scheduling.ComputeTimeBlocks(mission.Category, mission.StartTime, mission.ActivityMinutes)
	event := s.buildEvent(ctx, EventMissionCancelled, mission, breakdown)
	event.Reason = reason
	s.notifier.Dispatch(ctx, event)
	s.pushCalendar(ctx, entity.CalendarEventCancelled, mission, event)

	return mission, nil
}

// Complete records the instructor's assessment, closes the mission and
// issues the invoice.
func (s *MissionScheduler) Complete(ctx context.Context, id, assessment string) (*entity.Mission, error) {
	switch assessment {
	case entity.AssessmentSatisfactory, entity.AssessmentNeedsMorePractice, entity.AssessmentOutstanding:
	default:
		return nil, fmt.Errorf("unknown assessment %q", assessment)
	}

	mission, err := s.missionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mission.Status == entity.MissionCancelled || mission.Status == entity.MissionCompleted {
		return nil, fmt.Errorf("mission %s is already %s", mission.Code, mission.Status)
	}

	now := time.Now()
	mission.Status = entity.MissionCompleted
	mission.Assessment = assessment
	mission.CompletedAt = &now
	mission.UpdatedAt = now

	if err := s.missionRepo.Update(ctx, mission); err != nil {
		return nil, fmt.Errorf("failed to complete mission: %w", err)
	}

	s.metrics.MissionsCompleted.Inc()
	s.logger.Info("Mission completed", "missionId", mission.ID, "assessment", assessment)

	invoice, err := s.billing.IssueForMission(ctx, mission)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("billing").Inc()
		s.logger.Error("Failed to issue invoice", "missionId", mission.ID, "error", err)
		return mission, nil
	}

	breakdown, _ := scheduling.ComputeTimeBlocks(mission.Category, mission.StartTime, mission.ActivityMinutes)
	event := s.buildEvent(ctx, EventInvoiceIssued, mission, breakdown)
	event.Invoice = invoice
	s.notifier.Dispatch(ctx, event)

	return mission, nil
}

// GetMission returns a mission by ID
func (s *MissionScheduler) GetMission(ctx context.Context, id string) (*entity.Mission, error) {
	return s.missionRepo.GetByID(ctx, id)
}

// ListByEnrollment returns an enrollment's missions
func (s *MissionScheduler) ListByEnrollment(ctx context.Context, enrollmentID string) ([]*entity.Mission, error) {
	return s.missionRepo.ListByEnrollment(ctx, enrollmentID)
}

// ListOnDate returns the day's missions for the dispatch board
func (s *MissionScheduler) ListOnDate(ctx context.Context, date string) ([]*entity.Mission, error) {
	return s.missionRepo.ListOnDate(ctx, date)
}

// CheckAvailability runs the conflict checker without booking anything
func (s *MissionScheduler) CheckAvailability(ctx context.Context, req scheduling.CheckRequest) (*scheduling.Result, error) {
	start := time.Now()
	result, err := s.checker.CheckAvailability(ctx, req)
	s.metrics.CheckDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	for _, conflict := range result.Conflicts {
		s.metrics.ConflictsDetected.WithLabelValues(string(conflict.Type)).Inc()
	}
	return result, nil
}

// RunReminderPass sends a reminder for every mission scheduled tomorrow that
// has not been reminded yet. Called periodically from the server loop.
func (s *MissionScheduler) RunReminderPass(ctx context.Context) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	missions, err := s.missionRepo.FindRemindable(ctx, tomorrow)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("reminder_pass").Inc()
		s.logger.Error("Reminder pass failed", "error", err)
		return
	}

	for _, mission := range missions {
		breakdown, err := scheduling.ComputeTimeBlocks(mission.Category, mission.StartTime, mission.ActivityMinutes)
		if err != nil {
			s.logger.Error("Skipping reminder for malformed mission", "missionId", mission.ID, "error", err)
			continue
		}

		event := s.buildEvent(ctx, EventMissionReminder, mission, breakdown)
		s.notifier.Dispatch(ctx, event)

		if err := s.missionRepo.MarkReminderSent(ctx, mission.ID); err != nil {
			s.logger.Error("Failed to mark reminder sent", "missionId", mission.ID, "error", err)
		}
	}

	if len(missions) > 0 {
		s.logger.Info("Reminder pass complete", "date", tomorrow, "count", len(missions))
	}
}

// buildEvent assembles the notification payload, tolerating missing lookups
func (s *MissionScheduler) buildEvent(ctx context.Context, eventType string, mission *entity.Mission, breakdown *scheduling.Breakdown) *NotificationEvent {
	event := &NotificationEvent{
		Type:      eventType,
		Mission:   mission,
		Breakdown: breakdown,
	}

	if student, err := s.profileRepo.GetByID(ctx, mission.StudentID); err == nil {
		event.Student = student
	} else {
		s.logger.Warn("Failed to load student profile", "studentId", mission.StudentID, "error", err)
	}

	if instructor, err := s.profileRepo.GetByID(ctx, mission.InstructorID); err == nil {
		event.Instructor = instructor
	} else {
		s.logger.Warn("Failed to load instructor profile", "instructorId", mission.InstructorID, "error", err)
	}

	if mission.AircraftID != "" {
		if aircraft, err := s.aircraftRepo.GetByID(ctx, mission.AircraftID); err == nil {
			event.Aircraft = aircraft
		}
	}

	if event.Lesson == nil && mission.LessonTemplateID != "" {
		if lesson, err := s.syllabusRepo.GetLesson(ctx, mission.LessonTemplateID); err == nil {
			event.Lesson = lesson
		}
	}

	return event
}

func (s *MissionScheduler) pushCalendar(ctx context.Context, action string, mission *entity.Mission, event *NotificationEvent) {
	calEvent := &entity.CalendarEvent{
		Action:      action,
		MissionID:   mission.ID,
		MissionCode: mission.Code,
		Title:       fmt.Sprintf("%s %s", mission.Category.Label(), mission.Code),
		Date:        mission.ScheduledDate,
		StartTime:   mission.StartTime,
		EndTime:     mission.EndTime,
		OccurredAt:  time.Now(),
	}
	if event.Student != nil {
		calEvent.StudentName = event.Student.FullName()
	}
	if event.Instructor != nil {
		calEvent.InstructorName = event.Instructor.FullName()
	}
	if event.Aircraft != nil {
		calEvent.TailNumber = event.Aircraft.TailNumber
	}

	if err := s.calendarRepo.PushEvent(ctx, calEvent); err != nil {
		s.metrics.ErrorsCount.WithLabelValues("calendar_push").Inc()
		s.logger.Error("Calendar push failed", "missionId", mission.ID, "error", err)
	}
}

// reservationLockKeys hashes each resource/date pair into an advisory lock
// key. Keys are sorted so concurrent reservations acquire them in the same
// order.
func reservationLockKeys(mission *entity.Mission) []int64 {
	pairs := []string{
		"student:" + mission.StudentID + ":" + mission.ScheduledDate,
		"instructor:" + mission.InstructorID + ":" + mission.ScheduledDate,
	}
	if mission.AircraftID != "" {
		pairs = append(pairs, "aircraft:"+mission.AircraftID+":"+mission.ScheduledDate)
	}

	keys := make([]int64, 0, len(pairs))
	for _, pair := range pairs {
		h := fnv.New64a()
		h.Write([]byte(pair))
		keys = append(keys, int64(h.Sum64()))
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
