// Package report builds read-only aggregation views over the other
// domains: the event calendar, financial summaries, and CSV exports.
package report

import (
	"fmt"
	"sort"

	"github.com/jcarver/rentroll/internal/expense"
	"github.com/jcarver/rentroll/internal/payment"
	"github.com/jcarver/rentroll/internal/task"
)

// Event is one calendar entry derived from a task, expense, or rent
// payment. Recomputing the calendar never mutates the sources.
type Event struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Date   string `json:"date"` // YYYY-MM-DD
	Type   string `json:"type"` // task | expense | rent_payment
	Status string `json:"status"`
	Amount string `json:"amount,omitempty"`
}

// Builder assembles reports from the domain repositories.
type Builder struct {
	tasks    *task.Repository
	expenses *expense.Repository
	payments *payment.Repository
}

// NewBuilder creates a report builder.
func NewBuilder(tasks *task.Repository, expenses *expense.Repository, payments *payment.Repository) *Builder {
	return &Builder{tasks: tasks, expenses: expenses, payments: payments}
}

// Calendar returns the union of dated tasks, expenses, and rent
// payments sorted ascending by date, with type then ID as tiebreaks
// so repeated calls produce identical output.
func (b *Builder) Calendar() ([]Event, error) {
	events := []Event{}

	tasks, err := b.tasks.List(task.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	for _, t := range tasks {
		if t.DueDate == nil || *t.DueDate == "" {
			continue
		}
		events = append(events, Event{
			ID:     t.ID,
			Title:  t.Title,
			Date:   *t.DueDate,
			Type:   "task",
			Status: string(t.Status),
		})
	}

	expenses, err := b.expenses.List(expense.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}
	for _, e := range expenses {
		title := e.Description
		if title == "" {
			title = string(e.Category) + " expense"
		}
		events = append(events, Event{
			ID:     e.ID,
			Title:  title,
			Date:   e.Date,
			Type:   "expense",
			Status: string(e.Category),
			Amount: e.Amount,
		})
	}

	payments, err := b.payments.List(payment.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading payments: %w", err)
	}
	for _, p := range payments {
		events = append(events, Event{
			ID:     p.ID,
			Title:  "Rent due",
			Date:   p.DueDate,
			Type:   "rent_payment",
			Status: string(p.Status),
			Amount: p.Amount,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		if events[i].Type != events[j].Type {
			return events[i].Type < events[j].Type
		}
		return events[i].ID < events[j].ID
	})

	return events, nil
}
