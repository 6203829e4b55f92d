package repository

import (
	"context"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormSyllabusRepository implements the SyllabusRepository interface
type GormSyllabusRepository struct {
	db *gorm.DB
}

// NewGormSyllabusRepository creates a new GORM syllabus repository
func NewGormSyllabusRepository(db *gorm.DB) repository.SyllabusRepository {
	return &GormSyllabusRepository{
		db: db,
	}
}

// Syllabi GORM model for database mapping
type Syllabi struct {
	ID          string `gorm:"primaryKey;column:id"`
	ProgramCode string `gorm:"column:program_code;unique"`
	Title       string `gorm:"column:title"`
	Description string `gorm:"column:description"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (Syllabi) TableName() string {
	return "m_syllabi"
}

// SyllabusLessons GORM model for database mapping
type SyllabusLessons struct {
	ID               string `gorm:"primaryKey;column:id"`
	SyllabusID       string `gorm:"column:syllabus_id;uniqueIndex:idx_syllabus_order"`
	OrderIndex       int    `gorm:"column:order_index;uniqueIndex:idx_syllabus_order"`
	Title            string `gorm:"column:title"`
	Description      string `gorm:"column:description"`
	LessonType       string `gorm:"column:lesson_type"`
	EstimatedMinutes int    `gorm:"column:estimated_minutes"`
	IsActive         bool   `gorm:"column:is_active"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName overrides the default table name
func (SyllabusLessons) TableName() string {
	return "syllabus_lessons"
}

func lessonToEntity(model *SyllabusLessons) entity.SyllabusLesson {
	return entity.SyllabusLesson{
		ID:               model.ID,
		SyllabusID:       model.SyllabusID,
		Title:            model.Title,
		Description:      model.Description,
		OrderIndex:       model.OrderIndex,
		LessonType:       model.LessonType,
		EstimatedMinutes: model.EstimatedMinutes,
		IsActive:         model.IsActive,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

// GetByID finds a syllabus by ID
func (r *GormSyllabusRepository) GetByID(ctx context.Context, id string) (*entity.Syllabus, error) {
	var model Syllabi
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)

	if result.Error != nil {
		return nil, result.Error
	}

	return &entity.Syllabus{
		ID:          model.ID,
		ProgramCode: model.ProgramCode,
		Title:       model.Title,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		DeletedAt:   model.DeletedAt,
	}, nil
}

// LessonsBySyllabus returns the active lessons ordered by order index
func (r *GormSyllabusRepository) LessonsBySyllabus(ctx context.Context, syllabusID string) ([]entity.SyllabusLesson, error) {
	var models []SyllabusLessons
	result := r.db.WithContext(ctx).
		Where("syllabus_id = ?", syllabusID).
		Where("is_active = ?", true).
		Order("order_index ASC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	lessons := make([]entity.SyllabusLesson, 0, len(models))
	for i := range models {
		lessons = append(lessons, lessonToEntity(&models[i]))
	}
	return lessons, nil
}

// GetLesson finds a syllabus lesson by ID
func (r *GormSyllabusRepository) GetLesson(ctx context.Context, id string) (*entity.SyllabusLesson, error) {
	var model SyllabusLessons
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)

	if result.Error != nil {
		return nil, result.Error
	}

	lesson := lessonToEntity(&model)
	return &lesson, nil
}
