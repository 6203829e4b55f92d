package repository

import (
	"context"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormEnrollmentRepository implements the EnrollmentRepository interface
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewGormEnrollmentRepository creates a new GORM enrollment repository
func NewGormEnrollmentRepository(db *gorm.DB) repository.EnrollmentRepository {
	return &GormEnrollmentRepository{
		db: db,
	}
}

// Enrollments GORM model for database mapping
type Enrollments struct {
	ID          string `gorm:"primaryKey;column:id"`
	StudentID   string `gorm:"column:student_id;index"`
	SyllabusID  string `gorm:"column:syllabus_id;index"`
	ProgramCode string `gorm:"column:program_code"`
	Status      string `gorm:"column:status"`
	StartDate   string `gorm:"column:start_date"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (Enrollments) TableName() string {
	return "student_enrollments"
}

func enrollmentToEntity(model *Enrollments) *entity.Enrollment {
	return &entity.Enrollment{
		ID:          model.ID,
		StudentID:   model.StudentID,
		SyllabusID:  model.SyllabusID,
		ProgramCode: model.ProgramCode,
		Status:      model.Status,
		StartDate:   model.StartDate,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		DeletedAt:   model.DeletedAt,
	}
}

// Create inserts a new enrollment
func (r *GormEnrollmentRepository) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	model := Enrollments{
		ID:          enrollment.ID,
		StudentID:   enrollment.StudentID,
		SyllabusID:  enrollment.SyllabusID,
		ProgramCode: enrollment.ProgramCode,
		Status:      enrollment.Status,
		StartDate:   enrollment.StartDate,
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	enrollment.CreatedAt = model.CreatedAt
	enrollment.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID finds an enrollment by ID
func (r *GormEnrollmentRepository) GetByID(ctx context.Context, id string) (*entity.Enrollment, error) {
	var model Enrollments
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)

	if result.Error != nil {
		return nil, result.Error
	}

	return enrollmentToEntity(&model), nil
}

// ListByStudent returns a student's enrollments
func (r *GormEnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]*entity.Enrollment, error) {
	var models []Enrollments
	result := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	enrollments := make([]*entity.Enrollment, 0, len(models))
	for i := range models {
		enrollments = append(enrollments, enrollmentToEntity(&models[i]))
	}
	return enrollments, nil
}
