package entity

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment status values
const (
	EnrollmentPending   = "pending"
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentWithdrawn = "withdrawn"
)

// Enrollment ties a student to a syllabus
type Enrollment struct {
	ID          string
	StudentID   string
	SyllabusID  string
	ProgramCode string
	Status      string
	StartDate   string // ISO date
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
