package entity

import "time"

// Availability status values
const (
	AvailabilityAvailable    = "available"
	AvailabilityNotAvailable = "not_available"
	AvailabilityTentative    = "tentative"
)

// AvailabilityRecord is a per-resource-per-date statement of availability,
// maintained self-service by instructors and students and read by the
// scheduling conflict checker.
type AvailabilityRecord struct {
	ID         string
	ResourceID string
	Date       string // ISO date
	Status     string
	StartTime  string // optional "HH:MM" bound
	EndTime    string // optional "HH:MM" bound
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
