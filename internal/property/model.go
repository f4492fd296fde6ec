// Package property provides the property domain model and data access.
package property

import (
	"fmt"
	"time"
)

// Type classifies a property.
type Type string

const (
	TypeApartment    Type = "apartment"
	TypeSingleFamily Type = "single_family"
	TypeDuplex       Type = "duplex"
	TypeCommercial   Type = "commercial"
	TypeCondo        Type = "condo"
	TypeTownhome     Type = "townhome"
)

// ValidType returns true if t is a known property type.
func ValidType(t string) bool {
	switch Type(t) {
	case TypeApartment, TypeSingleFamily, TypeDuplex, TypeCommercial, TypeCondo, TypeTownhome:
		return true
	}
	return false
}

// Status represents where a property is in its lifecycle.
type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusPending     Status = "pending"
	StatusSold        Status = "sold"
	StatusMaintenance Status = "maintenance"
)

// ValidStatus returns true if s is a known property status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusInactive, StatusPending, StatusSold, StatusMaintenance:
		return true
	}
	return false
}

// Property represents a managed rental property.
type Property struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Street        string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	ZipCode       string    `json:"zipCode"`
	TotalUnits    int       `json:"totalUnits"`
	PurchasePrice string    `json:"purchasePrice"`
	PurchaseDate  string    `json:"purchaseDate"` // YYYY-MM-DD
	PropertyType  Type      `json:"propertyType"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Stats is the derived per-property view computed at read time.
type Stats struct {
	PropertyID     int64   `json:"propertyId"`
	TotalUnits     int     `json:"totalUnits"`
	OccupiedUnits  int     `json:"occupiedUnits"`
	VacantUnits    int     `json:"vacantUnits"`
	OccupancyRate  float64 `json:"occupancyRate"`
	MonthlyRevenue string  `json:"monthlyRevenue"`
}

// WithStats pairs a property with its computed stats for list views.
type WithStats struct {
	Property
	Stats Stats `json:"stats"`
}

// Validate checks required fields and enum values on a property payload.
func (p *Property) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Street == "" {
		return fmt.Errorf("address is required")
	}
	if p.TotalUnits < 0 {
		return fmt.Errorf("totalUnits must be >= 0")
	}
	if p.PropertyType != "" && !ValidType(string(p.PropertyType)) {
		return fmt.Errorf("invalid property type: %q", p.PropertyType)
	}
	if p.Status != "" && !ValidStatus(string(p.Status)) {
		return fmt.Errorf("invalid status: %q", p.Status)
	}
	return nil
}
