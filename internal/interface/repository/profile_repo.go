package repository

import (
	"context"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormProfileRepository implements the ProfileRepository interface
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository
func NewGormProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &GormProfileRepository{
		db: db,
	}
}

// Profiles GORM model for database mapping
type Profiles struct {
	ID        string `gorm:"primaryKey;column:id"`
	Role      string `gorm:"column:role;index"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	Email     string `gorm:"column:email;unique"`
	Phone     string `gorm:"column:phone"`
	AvatarURL string `gorm:"column:avatar_url"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Profiles) TableName() string {
	return "profiles"
}

func profileToEntity(model *Profiles) *entity.Profile {
	return &entity.Profile{
		ID:        model.ID,
		Role:      model.Role,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
		Phone:     model.Phone,
		AvatarURL: model.AvatarURL,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		DeletedAt: model.DeletedAt,
	}
}

// GetByID finds a profile by ID
func (r *GormProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	var model Profiles
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)

	if result.Error != nil {
		return nil, result.Error
	}

	return profileToEntity(&model), nil
}

// ListByRole returns all profiles with the given role
func (r *GormProfileRepository) ListByRole(ctx context.Context, role string) ([]*entity.Profile, error) {
	var models []Profiles
	result := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("last_name ASC, first_name ASC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	profiles := make([]*entity.Profile, 0, len(models))
	for i := range models {
		profiles = append(profiles, profileToEntity(&models[i]))
	}
	return profiles, nil
}
