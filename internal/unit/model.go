// Package unit provides the rentable-unit domain model and data access.
package unit

import (
	"fmt"
	"time"
)

// Status represents whether a unit is rentable, rented, or offline.
type Status string

const (
	StatusVacant      Status = "vacant"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

// ValidStatus returns true if s is a known unit status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusVacant, StatusOccupied, StatusMaintenance:
		return true
	}
	return false
}

// Unit represents a rentable sub-space within a property.
type Unit struct {
	ID            int64     `json:"id"`
	PropertyID    int64     `json:"propertyId"`
	UnitNumber    string    `json:"unitNumber"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     string    `json:"bathrooms"` // decimal-as-string, e.g. "1.5"
	RentAmount    string    `json:"rentAmount"`
	Status        Status    `json:"status"`
	SquareFootage *int64    `json:"squareFootage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Validate checks required fields and enum values on a unit payload.
func (u *Unit) Validate() error {
	if u.PropertyID == 0 {
		return fmt.Errorf("propertyId is required")
	}
	if u.UnitNumber == "" {
		return fmt.Errorf("unitNumber is required")
	}
	if u.Bedrooms < 0 {
		return fmt.Errorf("bedrooms must be >= 0")
	}
	if u.Status != "" && !ValidStatus(string(u.Status)) {
		return fmt.Errorf("invalid status: %q", u.Status)
	}
	return nil
}
