package usecase

import (
	"context"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"
	"trainops-service/internal/scheduling"
)

// repoResourceQuery adapts the persistence repositories to the read-only
// view the conflict checker consumes.
type repoResourceQuery struct {
	missionRepo      repository.MissionRepository
	availabilityRepo repository.AvailabilityRepository
	aircraftRepo     repository.AircraftRepository
}

// NewResourceQuery wires the repositories behind the conflict checker
func NewResourceQuery(
	missionRepo repository.MissionRepository,
	availabilityRepo repository.AvailabilityRepository,
	aircraftRepo repository.AircraftRepository,
) scheduling.ResourceQuery {
	return &repoResourceQuery{
		missionRepo:      missionRepo,
		availabilityRepo: availabilityRepo,
		aircraftRepo:     aircraftRepo,
	}
}

func (q *repoResourceQuery) MissionsForStudent(ctx context.Context, studentID, date string) ([]*entity.Mission, error) {
	return q.missionRepo.FindForStudentOnDate(ctx, studentID, date)
}

func (q *repoResourceQuery) MissionsForInstructor(ctx context.Context, instructorID, date string) ([]*entity.Mission, error) {
	return q.missionRepo.FindForInstructorOnDate(ctx, instructorID, date)
}

func (q *repoResourceQuery) MissionsForAircraft(ctx context.Context, aircraftID, date string) ([]*entity.Mission, error) {
	return q.missionRepo.FindForAircraftOnDate(ctx, aircraftID, date)
}

func (q *repoResourceQuery) InstructorAvailability(ctx context.Context, instructorID, date string) (*entity.AvailabilityRecord, error) {
	return q.availabilityRepo.GetForDate(ctx, instructorID, date)
}

func (q *repoResourceQuery) AircraftMaintenance(ctx context.Context, aircraftID, date string) ([]*entity.MaintenanceEvent, error) {
	return q.aircraftRepo.MaintenanceOn(ctx, aircraftID, date)
}
