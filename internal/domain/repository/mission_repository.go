package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
)

// MissionRepository defines the interface for mission persistence
type MissionRepository interface {
	// Reserve atomically re-validates and inserts a mission. It takes an
	// advisory lock per lockKey inside one transaction, runs precheck while
	// holding the locks, and only then writes the row. Two concurrent
	// reservations touching the same resource/date serialize on the locks,
	// closing the read-then-write double-booking window.
	Reserve(ctx context.Context, mission *entity.Mission, lockKeys []int64, precheck func(ctx context.Context) error) error

	GetByID(ctx context.Context, id string) (*entity.Mission, error)
	Update(ctx context.Context, mission *entity.Mission) error

	// ListOnDate returns every mission on the date regardless of status,
	// ordered by start time. Feeds the dispatch board.
	ListOnDate(ctx context.Context, date string) ([]*entity.Mission, error)
	ListByEnrollment(ctx context.Context, enrollmentID string) ([]*entity.Mission, error)
	CountByEnrollment(ctx context.Context, enrollmentID string) (int64, error)

	// The three active-mission queries feed the conflict checker; they
	// return missions with status scheduled or in_progress only.
	FindForStudentOnDate(ctx context.Context, studentID, date string) ([]*entity.Mission, error)
	FindForInstructorOnDate(ctx context.Context, instructorID, date string) ([]*entity.Mission, error)
	FindForAircraftOnDate(ctx context.Context, aircraftID, date string) ([]*entity.Mission, error)

	// CompletedLessonIDs returns the distinct lesson-template IDs of the
	// enrollment's completed missions, feeding the progression resolver.
	CompletedLessonIDs(ctx context.Context, enrollmentID string) ([]string, error)

	// FindRemindable returns scheduled missions on the given date that have
	// not yet had a reminder sent.
	FindRemindable(ctx context.Context, date string) ([]*entity.Mission, error)
	MarkReminderSent(ctx context.Context, id string) error
}
