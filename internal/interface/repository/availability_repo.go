package repository

import (
	"context"
	"errors"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAvailabilityRepository implements the AvailabilityRepository interface
type GormAvailabilityRepository struct {
	db *gorm.DB
}

// NewGormAvailabilityRepository creates a new GORM availability repository
func NewGormAvailabilityRepository(db *gorm.DB) repository.AvailabilityRepository {
	return &GormAvailabilityRepository{
		db: db,
	}
}

// AvailabilityRecords GORM model for database mapping
type AvailabilityRecords struct {
	ID         string `gorm:"primaryKey;column:id"`
	ResourceID string `gorm:"column:resource_id;uniqueIndex:idx_availability_resource_date"`
	Date       string `gorm:"column:date;uniqueIndex:idx_availability_resource_date"`
	Status     string `gorm:"column:status"`
	StartTime  string `gorm:"column:start_time"`
	EndTime    string `gorm:"column:end_time"`
	Notes      string `gorm:"column:notes"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the default table name
func (AvailabilityRecords) TableName() string {
	return "availability_records"
}

func availabilityToEntity(model *AvailabilityRecords) *entity.AvailabilityRecord {
	return &entity.AvailabilityRecord{
		ID:         model.ID,
		ResourceID: model.ResourceID,
		Date:       model.Date,
		Status:     model.Status,
		StartTime:  model.StartTime,
		EndTime:    model.EndTime,
		Notes:      model.Notes,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// Upsert creates or replaces the record for (resource, date)
func (r *GormAvailabilityRepository) Upsert(ctx context.Context, record *entity.AvailabilityRecord) error {
	model := AvailabilityRecords{
		ID:         record.ID,
		ResourceID: record.ResourceID,
		Date:       record.Date,
		Status:     record.Status,
		StartTime:  record.StartTime,
		EndTime:    record.EndTime,
		Notes:      record.Notes,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resource_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "start_time", "end_time", "notes", "updated_at"}),
	}).Create(&model)

	if result.Error != nil {
		return result.Error
	}

	record.CreatedAt = model.CreatedAt
	record.UpdatedAt = model.UpdatedAt
	return nil
}

// GetForDate finds the availability record for a resource on a date; a
// missing record returns nil rather than an error.
func (r *GormAvailabilityRepository) GetForDate(ctx context.Context, resourceID, date string) (*entity.AvailabilityRecord, error) {
	var model AvailabilityRecords
	result := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Where("date = ?", date).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return availabilityToEntity(&model), nil
}

// ListForResource returns all availability records of a resource
func (r *GormAvailabilityRepository) ListForResource(ctx context.Context, resourceID string) ([]*entity.AvailabilityRecord, error) {
	var models []AvailabilityRecords
	result := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("date ASC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.AvailabilityRecord, 0, len(models))
	for i := range models {
		records = append(records, availabilityToEntity(&models[i]))
	}
	return records, nil
}
