package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jcarver/rentroll/internal/expense"
	"github.com/jcarver/rentroll/internal/payment"
	"github.com/jcarver/rentroll/internal/task"
)

// ExportTypes are the supported CSV export flavors.
var ExportTypes = []string{"financial", "expenses", "revenues", "maintenance"}

// ValidExportType returns true if t is a known export type.
func ValidExportType(t string) bool {
	for _, known := range ExportTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ExportCSV writes the requested report as CSV. The financial export
// interleaves revenue and expense rows; the others are single-domain.
func (b *Builder) ExportCSV(w io.Writer, exportType string) error {
	cw := csv.NewWriter(w)

	var err error
	switch exportType {
	case "financial":
		err = b.exportFinancial(cw)
	case "expenses":
		err = b.exportExpenses(cw)
	case "revenues":
		err = b.exportRevenues(cw)
	case "maintenance":
		err = b.exportMaintenance(cw)
	default:
		return fmt.Errorf("unknown export type: %q", exportType)
	}
	if err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func (b *Builder) exportFinancial(cw *csv.Writer) error {
	if err := cw.Write([]string{"Date", "Type", "Category", "Description", "Amount"}); err != nil {
		return err
	}

	payments, err := b.payments.List(payment.ListOptions{Status: payment.StatusPaid})
	if err != nil {
		return fmt.Errorf("loading payments: %w", err)
	}
	for _, p := range payments {
		date := p.DueDate
		if p.PaidDate != nil && *p.PaidDate != "" {
			date = *p.PaidDate
		}
		if err := cw.Write([]string{date, "revenue", "rent", p.Notes, p.Amount}); err != nil {
			return err
		}
	}

	expenses, err := b.expenses.List(expense.ListOptions{})
	if err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}
	for _, e := range expenses {
		if err := cw.Write([]string{e.Date, "expense", string(e.Category), e.Description, e.Amount}); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) exportExpenses(cw *csv.Writer) error {
	if err := cw.Write([]string{"Date", "Type", "Category", "Description", "Amount"}); err != nil {
		return err
	}

	expenses, err := b.expenses.List(expense.ListOptions{})
	if err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}
	for _, e := range expenses {
		if err := cw.Write([]string{e.Date, "expense", string(e.Category), e.Description, e.Amount}); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) exportRevenues(cw *csv.Writer) error {
	if err := cw.Write([]string{"Date", "Type", "Status", "Method", "Amount"}); err != nil {
		return err
	}

	payments, err := b.payments.List(payment.ListOptions{})
	if err != nil {
		return fmt.Errorf("loading payments: %w", err)
	}
	for _, p := range payments {
		date := p.DueDate
		if p.PaidDate != nil && *p.PaidDate != "" {
			date = *p.PaidDate
		}
		if err := cw.Write([]string{date, "revenue", string(p.Status), p.PaymentMethod, p.Amount}); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) exportMaintenance(cw *csv.Writer) error {
	if err := cw.Write([]string{"Date", "Type", "Title", "Priority", "Status"}); err != nil {
		return err
	}

	tasks, err := b.tasks.List(task.ListOptions{})
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	for _, t := range tasks {
		date := ""
		if t.DueDate != nil {
			date = *t.DueDate
		}
		if err := cw.Write([]string{date, string(t.Category), t.Title, string(t.Priority), string(t.Status)}); err != nil {
			return err
		}
	}

	return nil
}
