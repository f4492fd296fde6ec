// Package payment records rent payments against tenants, units, and
// properties.
package payment

import (
	"fmt"
	"time"
)

// Status tracks whether a rent payment has been received.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusLate    Status = "late"
	StatusPartial Status = "partial"
)

// ValidStatus returns true if s is a known payment status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusLate, StatusPartial:
		return true
	}
	return false
}

// Payment is one rent payment record. Amount is a decimal string,
// dates are YYYY-MM-DD.
type Payment struct {
	ID            int64     `json:"id"`
	TenantID      *int64    `json:"tenantId,omitempty"`
	UnitID        *int64    `json:"unitId,omitempty"`
	PropertyID    *int64    `json:"propertyId,omitempty"`
	Amount        string    `json:"amount"`
	DueDate       string    `json:"dueDate"`
	PaidDate      *string   `json:"paidDate,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Status        Status    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Validate checks required fields on a payment payload.
func (p *Payment) Validate() error {
	if p.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if p.DueDate == "" {
		return fmt.Errorf("dueDate is required")
	}
	if _, err := time.Parse("2006-01-02", p.DueDate); err != nil {
		return fmt.Errorf("invalid due date (use YYYY-MM-DD): %w", err)
	}
	if p.PaidDate != nil && *p.PaidDate != "" {
		if _, err := time.Parse("2006-01-02", *p.PaidDate); err != nil {
			return fmt.Errorf("invalid paid date (use YYYY-MM-DD): %w", err)
		}
	}
	if p.Status != "" && !ValidStatus(string(p.Status)) {
		return fmt.Errorf("invalid status: %q", p.Status)
	}
	return nil
}
