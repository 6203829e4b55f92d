package repository

import (
	"context"

	"trainops-service/internal/domain/entity"
)

// ProfileRepository defines the interface for user profiles
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	ListByRole(ctx context.Context, role string) ([]*entity.Profile, error)
}
