// Package tenant provides the tenant domain model, occupancy assignment,
// and the per-unit tenant history log.
package tenant

import (
	"fmt"
	"time"
)

// Status represents where a tenant is in the occupancy lifecycle.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusMovedOut Status = "moved_out"
)

// ValidStatus returns true if s is a known tenant status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusActive, StatusInactive, StatusMovedOut:
		return true
	}
	return false
}

// transitions is the allowed status transition table. A moved-out tenant
// becomes active again only through reassignment.
var transitions = map[Status][]Status{
	StatusPending:  {StatusActive, StatusInactive},
	StatusActive:   {StatusInactive, StatusMovedOut},
	StatusInactive: {StatusActive, StatusMovedOut},
	StatusMovedOut: {StatusActive},
}

// CanTransition reports whether moving from one status to another is allowed.
// A no-op transition (same status) is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Tenant represents a renter, assigned to a unit or available.
type Tenant struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	UnitID        *int64    `json:"unitId,omitempty"`
	LeaseStart    string    `json:"leaseStart"` // YYYY-MM-DD
	LeaseEnd      string    `json:"leaseEnd"`
	MonthlyRent   string    `json:"monthlyRent"`
	Status        Status    `json:"status"`
	MoveOutDate   *string   `json:"moveOutDate,omitempty"`
	MoveOutReason string    `json:"moveOutReason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Available reports whether the tenant can be assigned to a unit.
func (t *Tenant) Available() bool {
	return t.UnitID == nil || t.Status == StatusInactive
}

// Validate checks required fields and enum values on a tenant payload.
func (t *Tenant) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if t.Status != "" && !ValidStatus(string(t.Status)) {
		return fmt.Errorf("invalid status: %q", t.Status)
	}
	return nil
}

// HistoryRecord is one append-only occupancy record for a unit.
type HistoryRecord struct {
	ID         int64     `json:"id"`
	UnitID     int64     `json:"unitId"`
	TenantID   *int64    `json:"tenantId,omitempty"`
	TenantName string    `json:"tenantName"`
	MoveIn     string    `json:"moveIn"` // YYYY-MM-DD
	MoveOut    *string   `json:"moveOut,omitempty"`
	Rent       string    `json:"rent"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}
