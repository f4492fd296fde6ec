// Package expense records property operating costs for financial
// reporting.
package expense

import (
	"fmt"
	"time"
)

// Category classifies an expense.
type Category string

const (
	CategoryMaintenance Category = "maintenance"
	CategoryRepairs     Category = "repairs"
	CategoryUtilities   Category = "utilities"
	CategoryInsurance   Category = "insurance"
	CategoryTaxes       Category = "taxes"
	CategoryManagement  Category = "management"
	CategoryOther       Category = "other"
)

// ValidCategory returns true if c is a known expense category.
func ValidCategory(c string) bool {
	switch Category(c) {
	case CategoryMaintenance, CategoryRepairs, CategoryUtilities,
		CategoryInsurance, CategoryTaxes, CategoryManagement, CategoryOther:
		return true
	}
	return false
}

// Expense is a single cost entry, optionally tied to a property.
type Expense struct {
	ID          int64     `json:"id"`
	PropertyID  *int64    `json:"propertyId,omitempty"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	IsRecurring bool      `json:"isRecurring"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks required fields on an expense payload.
func (e *Expense) Validate() error {
	if e.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if e.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return fmt.Errorf("invalid date (use YYYY-MM-DD): %w", err)
	}
	if e.Category != "" && !ValidCategory(string(e.Category)) {
		return fmt.Errorf("invalid category: %q", e.Category)
	}
	return nil
}
