package entity

import (
	"time"

	"gorm.io/gorm"
)

// Aircraft status values
const (
	AircraftActive      = "active"
	AircraftMaintenance = "maintenance"
	AircraftRetired     = "retired"
)

// Aircraft represents a training aircraft in the fleet
type Aircraft struct {
	ID         string
	TailNumber string
	Make       string
	Model      string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt
}

// MaintenanceEvent is a blackout window for an aircraft. Read-only from the
// scheduling core's perspective.
type MaintenanceEvent struct {
	ID          string
	AircraftID  string
	Status      string // "scheduled", "in_progress", "completed"
	StartDate   string // ISO date
	EndDate     string // ISO date
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
