package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
)

// SyllabusRepository defines the interface for syllabus templates
type SyllabusRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Syllabus, error)

	// LessonsBySyllabus returns the syllabus's active lessons ordered
	// ascending by order index.
	LessonsBySyllabus(ctx context.Context, syllabusID string) ([]entity.SyllabusLesson, error)
	GetLesson(ctx context.Context, id string) (*entity.SyllabusLesson, error)
}
