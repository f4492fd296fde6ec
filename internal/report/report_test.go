package report

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jcarver/rentroll/internal/db"
	"github.com/jcarver/rentroll/internal/expense"
	"github.com/jcarver/rentroll/internal/payment"
	"github.com/jcarver/rentroll/internal/task"
)

func testBuilder(t *testing.T) (*Builder, *task.Repository, *expense.Repository, *payment.Repository) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})

	tasks := task.NewRepository(d)
	expenses := expense.NewRepository(d)
	payments := payment.NewRepository(d)
	return NewBuilder(tasks, expenses, payments), tasks, expenses, payments
}

func TestCalendarSortedByDate(t *testing.T) {
	b, tasks, expenses, payments := testBuilder(t)

	due := "2026-02-10"
	if _, err := tasks.Insert(&task.Task{Title: "Inspect roof", Description: "annual", DueDate: &due}); err != nil {
		t.Fatalf("insert task: %v", err)
	}
	if _, err := tasks.Insert(&task.Task{Title: "No date", Description: "excluded"}); err != nil {
		t.Fatalf("insert undated task: %v", err)
	}
	if _, err := expenses.Insert(&expense.Expense{Amount: "80", Date: "2026-01-05", Description: "Filters"}); err != nil {
		t.Fatalf("insert expense: %v", err)
	}
	if _, err := payments.Insert(&payment.Payment{Amount: "1500", DueDate: "2026-03-01"}); err != nil {
		t.Fatalf("insert payment: %v", err)
	}

	events, err := b.Calendar()
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}

	wantDates := []string{"2026-01-05", "2026-02-10", "2026-03-01"}
	if len(events) != len(wantDates) {
		t.Fatalf("got %d events, want %d", len(events), len(wantDates))
	}
	for i, want := range wantDates {
		if events[i].Date != want {
			t.Errorf("events[%d].Date = %q, want %q", i, events[i].Date, want)
		}
	}
	if events[1].Type != "task" {
		t.Errorf("events[1].Type = %q, want %q", events[1].Type, "task")
	}
}

func TestCalendarIdempotent(t *testing.T) {
	b, tasks, expenses, payments := testBuilder(t)

	due := "2026-02-10"
	if _, err := tasks.Insert(&task.Task{Title: "a", Description: "d", DueDate: &due}); err != nil {
		t.Fatalf("insert task: %v", err)
	}
	if _, err := expenses.Insert(&expense.Expense{Amount: "80", Date: "2026-02-10"}); err != nil {
		t.Fatalf("insert expense: %v", err)
	}
	if _, err := payments.Insert(&payment.Payment{Amount: "1500", DueDate: "2026-02-10"}); err != nil {
		t.Fatalf("insert payment: %v", err)
	}

	first, err := b.Calendar()
	if err != nil {
		t.Fatalf("first calendar: %v", err)
	}
	second, err := b.Calendar()
	if err != nil {
		t.Fatalf("second calendar: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated calendar calls returned different output")
	}
}

func TestFinancialReport(t *testing.T) {
	b, _, expenses, payments := testBuilder(t)

	paid := "2026-01-03"
	if _, err := payments.Insert(&payment.Payment{
		Amount: "1500.00", DueDate: "2026-01-01", PaidDate: &paid, Status: payment.StatusPaid,
	}); err != nil {
		t.Fatalf("insert paid payment: %v", err)
	}
	// Pending payments are not revenue.
	if _, err := payments.Insert(&payment.Payment{Amount: "1500.00", DueDate: "2026-02-01"}); err != nil {
		t.Fatalf("insert pending payment: %v", err)
	}
	if _, err := expenses.Insert(&expense.Expense{
		Amount: "200.00", Date: "2026-01-10", Category: expense.CategoryRepairs,
	}); err != nil {
		t.Fatalf("insert expense: %v", err)
	}
	if _, err := expenses.Insert(&expense.Expense{
		Amount: "100.00", Date: "2026-01-20", Category: expense.CategoryRepairs,
	}); err != nil {
		t.Fatalf("insert expense: %v", err)
	}

	got, err := b.Financial(FinancialOptions{})
	if err != nil {
		t.Fatalf("financial: %v", err)
	}
	if got.Revenue != "1500.00" {
		t.Errorf("revenue = %q, want %q", got.Revenue, "1500.00")
	}
	if got.TotalExpenses != "300.00" {
		t.Errorf("expenses = %q, want %q", got.TotalExpenses, "300.00")
	}
	if got.ExpensesByCategory["repairs"] != "300.00" {
		t.Errorf("repairs = %q, want %q", got.ExpensesByCategory["repairs"], "300.00")
	}
	if got.Net != "1200.00" {
		t.Errorf("net = %q, want %q", got.Net, "1200.00")
	}
}

func TestFinancialDateRange(t *testing.T) {
	b, _, expenses, _ := testBuilder(t)

	for _, date := range []string{"2026-01-10", "2026-02-10"} {
		if _, err := expenses.Insert(&expense.Expense{Amount: "100", Date: date}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, err := b.Financial(FinancialOptions{From: "2026-02-01", To: "2026-02-28"})
	if err != nil {
		t.Fatalf("financial: %v", err)
	}
	if got.TotalExpenses != "100.00" {
		t.Errorf("expenses = %q, want %q", got.TotalExpenses, "100.00")
	}
}

func TestExportCSV(t *testing.T) {
	b, tasks, expenses, _ := testBuilder(t)

	due := "2026-02-10"
	if _, err := tasks.Insert(&task.Task{
		Title: "Inspect roof", Description: "annual", DueDate: &due,
		Category: task.CategoryInspection, Priority: task.PriorityHigh,
	}); err != nil {
		t.Fatalf("insert task: %v", err)
	}
	if _, err := expenses.Insert(&expense.Expense{
		Amount: "80.00", Date: "2026-01-05", Description: "Filters",
	}); err != nil {
		t.Fatalf("insert expense: %v", err)
	}

	var sb strings.Builder
	if err := b.ExportCSV(&sb, "maintenance"); err != nil {
		t.Fatalf("export maintenance: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "Date,Type,Title,Priority,Status" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Inspect roof") {
		t.Errorf("row = %q, want task title", lines[1])
	}

	sb.Reset()
	if err := b.ExportCSV(&sb, "expenses"); err != nil {
		t.Fatalf("export expenses: %v", err)
	}
	if !strings.Contains(sb.String(), "2026-01-05,expense,other,Filters,80.00") {
		t.Errorf("expenses export missing row: %q", sb.String())
	}

	if err := b.ExportCSV(&sb, "bogus"); err == nil {
		t.Error("expected error for unknown export type")
	}
}
