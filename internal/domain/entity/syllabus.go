package entity

import (
	"time"

	"gorm.io/gorm"
)

// Syllabus is an ordered training program template
type Syllabus struct {
	ID          string
	ProgramCode string // e.g. "PPL", "IFR"
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}

// SyllabusLesson is one ordered template step within a syllabus. OrderIndex is
// unique within a syllabus and defines the total order used by the lesson
// progression resolver.
type SyllabusLesson struct {
	ID               string
	SyllabusID       string
	Title            string
	Description      string
	OrderIndex       int
	LessonType       string // mission category code: "F", "G" or "S"
	EstimatedMinutes int
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
