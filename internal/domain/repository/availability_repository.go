package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
)

// AvailabilityRepository defines the interface for availability records
type AvailabilityRepository interface {
	Upsert(ctx context.Context, record *entity.AvailabilityRecord) error
	GetForDate(ctx context.Context, resourceID, date string) (*entity.AvailabilityRecord, error)
	ListForResource(ctx context.Context, resourceID string) ([]*entity.AvailabilityRecord, error)
}
