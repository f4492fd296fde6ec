// Package billing manages per-tenant billing records, monthly
// generation, outstanding balances, and plan cost simulation.
package billing

import (
	"fmt"
	"time"
)

// Status tracks whether a billing record has been settled.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// ValidStatus returns true if s is a known billing status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Type classifies what a billing record charges for.
type Type string

const (
	TypeRent    Type = "rent"
	TypeFee     Type = "fee"
	TypeUtility Type = "utility"
)

// ValidType returns true if t is a known billing type.
func ValidType(t string) bool {
	switch Type(t) {
	case TypeRent, TypeFee, TypeUtility:
		return true
	}
	return false
}

// Record is one charge against a tenant for a billing period.
// Amount is a decimal string; billingPeriod is YYYY-MM.
type Record struct {
	ID             int64     `json:"id"`
	TenantID       int64     `json:"tenantId"`
	UnitID         *int64    `json:"unitId,omitempty"`
	Amount         string    `json:"amount"`
	BillingPeriod  string    `json:"billingPeriod"`
	DueDate        string    `json:"dueDate"`
	Status         Status    `json:"status"`
	Type           Type      `json:"type"`
	OrganizationID string    `json:"organizationId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate checks required fields on a billing record payload.
func (r *Record) Validate() error {
	if r.TenantID == 0 {
		return fmt.Errorf("tenantId is required")
	}
	if r.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if r.BillingPeriod == "" {
		return fmt.Errorf("billingPeriod is required")
	}
	if _, err := time.Parse("2006-01", r.BillingPeriod); err != nil {
		return fmt.Errorf("invalid billing period (use YYYY-MM): %w", err)
	}
	if r.DueDate != "" {
		if _, err := time.Parse("2006-01-02", r.DueDate); err != nil {
			return fmt.Errorf("invalid due date (use YYYY-MM-DD): %w", err)
		}
	}
	if r.Status != "" && !ValidStatus(string(r.Status)) {
		return fmt.Errorf("invalid status: %q", r.Status)
	}
	if r.Type != "" && !ValidType(string(r.Type)) {
		return fmt.Errorf("invalid type: %q", r.Type)
	}
	return nil
}
