package report

import (
	"fmt"
	"strconv"

	"github.com/jcarver/rentroll/internal/expense"
	"github.com/jcarver/rentroll/internal/payment"
)

// Financial summarizes revenue against expenses for a property and
// date range. Money fields are decimal strings.
type Financial struct {
	Revenue            string            `json:"revenue"`
	TotalExpenses      string            `json:"totalExpenses"`
	ExpensesByCategory map[string]string `json:"expensesByCategory"`
	Net                string            `json:"net"`
}

// FinancialOptions scopes a financial report. Zero values mean
// unbounded.
type FinancialOptions struct {
	PropertyID int64
	From       string // YYYY-MM-DD, inclusive
	To         string // YYYY-MM-DD, inclusive
}

// Financial sums paid rent payments as revenue and groups expenses by
// category. The computation reads but never writes the sources.
func (b *Builder) Financial(opts FinancialOptions) (*Financial, error) {
	payments, err := b.payments.List(payment.ListOptions{
		PropertyID: opts.PropertyID,
		Status:     payment.StatusPaid,
		StartDate:  opts.From,
		EndDate:    opts.To,
	})
	if err != nil {
		return nil, fmt.Errorf("loading payments: %w", err)
	}

	var revenue float64
	for _, p := range payments {
		v, err := strconv.ParseFloat(p.Amount, 64)
		if err != nil {
			continue
		}
		revenue += v
	}

	expenses, err := b.expenses.List(expense.ListOptions{
		PropertyID: opts.PropertyID,
		StartDate:  opts.From,
		EndDate:    opts.To,
	})
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	var totalExpenses float64
	byCategory := map[string]float64{}
	for _, e := range expenses {
		v, err := strconv.ParseFloat(e.Amount, 64)
		if err != nil {
			continue
		}
		totalExpenses += v
		byCategory[string(e.Category)] += v
	}

	categories := make(map[string]string, len(byCategory))
	for category, total := range byCategory {
		categories[category] = money(total)
	}

	return &Financial{
		Revenue:            money(revenue),
		TotalExpenses:      money(totalExpenses),
		ExpensesByCategory: categories,
		Net:                money(revenue - totalExpenses),
	}, nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
