package entity

import (
	"time"

	"gorm.io/gorm"
)

// Profile roles
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// Profile represents a user of the system. Identity and sessions are owned by
// the external identity provider; this row only carries the application-side
// attributes keyed by the provider's subject ID.
type Profile struct {
	ID        string
	Role      string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

// FullName returns the profile's display name
func (p *Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
