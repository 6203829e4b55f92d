package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
)

// AircraftRepository defines the interface for aircraft and maintenance data
type AircraftRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Aircraft, error)
	List(ctx context.Context) ([]*entity.Aircraft, error)

	// MaintenanceOn returns scheduled maintenance events whose date range
	// contains the given date.
	MaintenanceOn(ctx context.Context, aircraftID, date string) ([]*entity.MaintenanceEvent, error)
	ListMaintenance(ctx context.Context, aircraftID string) ([]*entity.MaintenanceEvent, error)
}
