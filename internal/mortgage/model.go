// Package mortgage tracks loan details per property, including the
// monthly payment breakdown used by financial reports.
package mortgage

import (
	"fmt"
	"time"
)

// Mortgage is a loan recorded against a property. Money fields are
// decimal strings; dates are YYYY-MM-DD.
type Mortgage struct {
	ID             int64     `json:"id"`
	PropertyID     int64     `json:"propertyId"`
	Lender         string    `json:"lender"`
	OriginalAmount string    `json:"originalAmount"`
	CurrentBalance string    `json:"currentBalance"`
	InterestRate   string    `json:"interestRate"`
	MonthlyPayment string    `json:"monthlyPayment"`
	Principal      string    `json:"principal"`
	Interest       string    `json:"interest"`
	Escrow         string    `json:"escrow"`
	StartDate      string    `json:"startDate"`
	TermYears      int       `json:"termYears"`
	AccountNumber  string    `json:"accountNumber,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate checks required fields on a mortgage payload.
func (m *Mortgage) Validate() error {
	if m.PropertyID == 0 {
		return fmt.Errorf("propertyId is required")
	}
	if m.Lender == "" {
		return fmt.Errorf("lender is required")
	}
	if m.TermYears < 0 {
		return fmt.Errorf("termYears must not be negative")
	}
	if m.StartDate != "" {
		if _, err := time.Parse("2006-01-02", m.StartDate); err != nil {
			return fmt.Errorf("invalid start date (use YYYY-MM-DD): %w", err)
		}
	}
	return nil
}
