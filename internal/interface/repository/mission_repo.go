package repository

import (
	"context"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormMissionRepository implements the MissionRepository interface
type GormMissionRepository struct {
	db *gorm.DB
}

// NewGormMissionRepository creates a new GORM mission repository
func NewGormMissionRepository(db *gorm.DB) repository.MissionRepository {
	return &GormMissionRepository{
		db: db,
	}
}

// Missions GORM model for database mapping
type Missions struct {
	ID                 string `gorm:"primaryKey;column:id"`
	Code               string `gorm:"column:code;uniqueIndex"`
	EnrollmentID       string `gorm:"column:enrollment_id;index"`
	StudentID          string `gorm:"column:student_id;index"`
	InstructorID       string `gorm:"column:instructor_id;index"`
	AircraftID         string `gorm:"column:aircraft_id;index"`
	Category           string `gorm:"column:category"`
	LessonTemplateID   string `gorm:"column:lesson_template_id"`
	ScheduledDate      string `gorm:"column:scheduled_date;index"`
	StartTime          string `gorm:"column:start_time"`
	ActivityMinutes    int    `gorm:"column:activity_minutes"`
	EndTime            string `gorm:"column:end_time"`
	Status             string `gorm:"column:status;index"`
	Assessment         string `gorm:"column:assessment"`
	CancellationReason string `gorm:"column:cancellation_reason"`
	ReminderSentAt     *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the default table name
func (Missions) TableName() string {
	return "missions"
}

func missionToEntity(model *Missions) *entity.Mission {
	category, err := entity.ParseMissionCategory(model.Category)
	if err != nil {
		category = entity.CategoryFlight
	}

	return &entity.Mission{
		ID:                 model.ID,
		Code:               model.Code,
		EnrollmentID:       model.EnrollmentID,
		StudentID:          model.StudentID,
		InstructorID:       model.InstructorID,
		AircraftID:         model.AircraftID,
		Category:           category,
		LessonTemplateID:   model.LessonTemplateID,
		ScheduledDate:      model.ScheduledDate,
		StartTime:          model.StartTime,
		ActivityMinutes:    model.ActivityMinutes,
		EndTime:            model.EndTime,
		Status:             model.Status,
		Assessment:         model.Assessment,
		CancellationReason: model.CancellationReason,
		ReminderSentAt:     model.ReminderSentAt,
		CompletedAt:        model.CompletedAt,
		CancelledAt:        model.CancelledAt,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

func missionFromEntity(mission *entity.Mission) Missions {
	return Missions{
		ID:                 mission.ID,
		Code:               mission.Code,
		EnrollmentID:       mission.EnrollmentID,
		StudentID:          mission.StudentID,
		InstructorID:       mission.InstructorID,
		AircraftID:         mission.AircraftID,
		Category:           mission.Category.Code(),
		LessonTemplateID:   mission.LessonTemplateID,
		ScheduledDate:      mission.ScheduledDate,
		StartTime:          mission.StartTime,
		ActivityMinutes:    mission.ActivityMinutes,
		EndTime:            mission.EndTime,
		Status:             mission.Status,
		Assessment:         mission.Assessment,
		CancellationReason: mission.CancellationReason,
		ReminderSentAt:     mission.ReminderSentAt,
		CompletedAt:        mission.CompletedAt,
		CancelledAt:        mission.CancelledAt,
	}
}

var activeMissionStatuses = []string{entity.MissionScheduled, entity.MissionInProgress}

// Reserve inserts the mission inside one transaction that first takes an
// advisory lock per resource/date key and re-runs the conflict predicate
// while holding them. Concurrent reservations for the same resource and
// date serialize on pg_advisory_xact_lock, so the second caller sees the
// first caller's row when its precheck runs.
func (r *GormMissionRepository) Reserve(ctx context.Context, mission *entity.Mission, lockKeys []int64, precheck func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range lockKeys {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", key).Error; err != nil {
				return err
			}
		}

		if precheck != nil {
			if err := precheck(ctx); err != nil {
				return err
			}
		}

		model := missionFromEntity(mission)
		if err := tx.Create(&model).Error; err != nil {
			return err
		}

		mission.CreatedAt = model.CreatedAt
		mission.UpdatedAt = model.UpdatedAt
		return nil
	})
}

// GetByID finds a mission by ID
func (r *GormMissionRepository) GetByID(ctx context.Context, id string) (*entity.Mission, error) {
	var model Missions
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)

	if result.Error != nil {
		return nil, result.Error
	}

	return missionToEntity(&model), nil
}

// Update saves mission changes
func (r *GormMissionRepository) Update(ctx context.Context, mission *entity.Mission) error {
	model := missionFromEntity(mission)
	result := r.db.WithContext(ctx).Model(&Missions{}).Where("id = ?", mission.ID).Updates(&model)
	return result.Error
}

// ListByEnrollment returns all missions of an enrollment, newest first
func (r *GormMissionRepository) ListByEnrollment(ctx context.Context, enrollmentID string) ([]*entity.Mission, error) {
	var models []Missions
	result := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Order("scheduled_date DESC, start_time DESC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	missions := make([]*entity.Mission, 0, len(models))
	for i := range models {
		missions = append(missions, missionToEntity(&models[i]))
	}
	return missions, nil
}

// ListOnDate returns every mission on a date, ordered by start time
func (r *GormMissionRepository) ListOnDate(ctx context.Context, date string) ([]*entity.Mission, error) {
	var models []Missions
	result := r.db.WithContext(ctx).
		Where("scheduled_date = ?", date).
		Order("start_time ASC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	missions := make([]*entity.Mission, 0, len(models))
	for i := range models {
		missions = append(missions, missionToEntity(&models[i]))
	}
	return missions, nil
}

// CountByEnrollment counts the missions ever created for an enrollment
func (r *GormMissionRepository) CountByEnrollment(ctx context.Context, enrollmentID string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&Missions{}).
		Where("enrollment_id = ?", enrollmentID).
		Count(&count)
	return count, result.Error
}

func (r *GormMissionRepository) findActiveOnDate(ctx context.Context, column, value, date string) ([]*entity.Mission, error) {
	var models []Missions
	result := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		Where("scheduled_date = ?", date).
		Where("status IN ?", activeMissionStatuses).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	missions := make([]*entity.Mission, 0, len(models))
	for i := range models {
		missions = append(missions, missionToEntity(&models[i]))
	}
	return missions, nil
}

// FindForStudentOnDate returns the student's scheduled/in-progress missions on a date
func (r *GormMissionRepository) FindForStudentOnDate(ctx context.Context, studentID, date string) ([]*entity.Mission, error) {
	return r.findActiveOnDate(ctx, "student_id", studentID, date)
}

// FindForInstructorOnDate returns the instructor's scheduled/in-progress missions on a date
func (r *GormMissionRepository) FindForInstructorOnDate(ctx context.Context, instructorID, date string) ([]*entity.Mission, error) {
	return r.findActiveOnDate(ctx, "instructor_id", instructorID, date)
}

// FindForAircraftOnDate returns the aircraft's scheduled/in-progress missions on a date
func (r *GormMissionRepository) FindForAircraftOnDate(ctx context.Context, aircraftID, date string) ([]*entity.Mission, error) {
	return r.findActiveOnDate(ctx, "aircraft_id", aircraftID, date)
}

// CompletedLessonIDs returns the distinct lesson-template IDs completed in an enrollment
func (r *GormMissionRepository) CompletedLessonIDs(ctx context.Context, enrollmentID string) ([]string, error) {
	var ids []string
	result := r.db.WithContext(ctx).Model(&Missions{}).
		Distinct("lesson_template_id").
		Where("enrollment_id = ?", enrollmentID).
		Where("status = ?", entity.MissionCompleted).
		Where("lesson_template_id <> ''").
		Pluck("lesson_template_id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// FindRemindable returns scheduled missions on a date without a sent reminder
func (r *GormMissionRepository) FindRemindable(ctx context.Context, date string) ([]*entity.Mission, error) {
	var models []Missions
	result := r.db.WithContext(ctx).
		Where("scheduled_date = ?", date).
		Where("status = ?", entity.MissionScheduled).
		Where("reminder_sent_at IS NULL").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	missions := make([]*entity.Mission, 0, len(models))
	for i := range models {
		missions = append(missions, missionToEntity(&models[i]))
	}
	return missions, nil
}

// MarkReminderSent records that the mission's reminder email went out
func (r *GormMissionRepository) MarkReminderSent(ctx context.Context, id string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&Missions{}).
		Where("id = ?", id).
		Update("reminder_sent_at", &now)
	return result.Error
}
