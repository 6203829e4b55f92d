package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
)

// EnrollmentRepository defines the interface for student enrollments
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entity.Enrollment) error
	GetByID(ctx context.Context, id string) (*entity.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]*entity.Enrollment, error)
}
