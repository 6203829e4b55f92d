package repository

import (
	"context"
	"time"

	"trainops-service/internal/domain/entity"
	"trainops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAircraftRepository implements the AircraftRepository interface
type GormAircraftRepository struct {
	db *gorm.DB
}

// NewGormAircraftRepository creates a new GORM aircraft repository
func NewGormAircraftRepository(db *gorm.DB) repository.AircraftRepository {
	return &GormAircraftRepository{
		db: db,
	}
}

// Aircrafts GORM model for database mapping
type Aircrafts struct {
	ID         string `gorm:"primaryKey;column:id"`
	TailNumber string `gorm:"column:tail_number;unique"`
	Make       string `gorm:"column:make"`
	Model      string `gorm:"column:model"`
	Status     string `gorm:"column:status"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the default table name
func (Aircrafts) TableName() string {
	return "m_aircraft"
}

// MaintenanceEvents GORM model for database mapping
type MaintenanceEvents struct {
	ID          string `gorm:"primaryKey;column:id"`
	AircraftID  string `gorm:"column:aircraft_id;index"`
	Status      string `gorm:"column:status"`
	StartDate   string `gorm:"column:scheduled_start_date"`
	EndDate     string `gorm:"column:scheduled_end_date"`
	Description string `gorm:"column:description"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (MaintenanceEvents) TableName() string {
	return "maintenance_events"
}

func aircraftToEntity(model *Aircrafts) *entity.Aircraft {
	return &entity.Aircraft{
		ID:         model.ID,
		TailNumber: model.TailNumber,
		Make:       model.Make,
		Model:      model.Model,
		Status:     model.Status,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
		DeletedAt:  model.DeletedAt,
	}
}

func maintenanceToEntity(model *MaintenanceEvents) *entity.MaintenanceEvent {
	return &entity.MaintenanceEvent{
		ID:          model.ID,
		AircraftID:  model.AircraftID,
		Status:      model.Status,
		StartDate:   model.StartDate,
		EndDate:     model.EndDate,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// GetByID finds an aircraft by ID
func (r *GormAircraftRepository) GetByID(ctx context.Context, id string) (*entity.Aircraft, error) {
	var model Aircrafts
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)

	if result.Error != nil {
		return nil, result.Error
	}

	return aircraftToEntity(&model), nil
}

// List returns the fleet
func (r *GormAircraftRepository) List(ctx context.Context) ([]*entity.Aircraft, error) {
	var models []Aircrafts
	result := r.db.WithContext(ctx).Order("tail_number ASC").Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	aircraft := make([]*entity.Aircraft, 0, len(models))
	for i := range models {
		aircraft = append(aircraft, aircraftToEntity(&models[i]))
	}
	return aircraft, nil
}

// MaintenanceOn returns scheduled maintenance windows containing the date
func (r *GormAircraftRepository) MaintenanceOn(ctx context.Context, aircraftID, date string) ([]*entity.MaintenanceEvent, error) {
	var models []MaintenanceEvents
	result := r.db.WithContext(ctx).
		Where("aircraft_id = ?", aircraftID).
		Where("status = ?", "scheduled").
		Where("scheduled_start_date <= ?", date).
		Where("scheduled_end_date >= ?", date).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]*entity.MaintenanceEvent, 0, len(models))
	for i := range models {
		events = append(events, maintenanceToEntity(&models[i]))
	}
	return events, nil
}

// ListMaintenance returns all maintenance events of an aircraft
func (r *GormAircraftRepository) ListMaintenance(ctx context.Context, aircraftID string) ([]*entity.MaintenanceEvent, error) {
	var models []MaintenanceEvents
	result := r.db.WithContext(ctx).
		Where("aircraft_id = ?", aircraftID).
		Order("scheduled_start_date DESC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]*entity.MaintenanceEvent, 0, len(models))
	for i := range models {
		events = append(events, maintenanceToEntity(&models[i]))
	}
	return events, nil
}
