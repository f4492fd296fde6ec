// Package task provides the maintenance task domain model, its status
// state machine, the draft edit buffer, attachments, and the outbound
// communications log.
package task

import (
	"fmt"
	"time"
)

// Category classifies a task.
type Category string

const (
	CategoryMaintenance   Category = "maintenance"
	CategoryInspection    Category = "inspection"
	CategoryRepair        Category = "repair"
	CategoryCleaning      Category = "cleaning"
	CategoryDocumentation Category = "documentation"
	CategoryTenantComm    Category = "tenant_communication"
	CategoryGeneral       Category = "general"
)

// ValidCategory returns true if c is a known category.
func ValidCategory(c string) bool {
	switch Category(c) {
	case CategoryMaintenance, CategoryInspection, CategoryRepair,
		CategoryCleaning, CategoryDocumentation, CategoryTenantComm, CategoryGeneral:
		return true
	}
	return false
}

// Priority ranks task urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriority returns true if p is a known priority.
func ValidPriority(p string) bool {
	switch Priority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Status represents where a task is in its lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus returns true if s is a known task status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// transitions is the allowed status transition table.
// completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether moving from one status to another is
// allowed. A no-op transition (same status) is always allowed.
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

// Task is a schedulable unit of work, optionally scoped to a
// property, unit, tenant, vendor, or rent payment.
type Task struct {
	ID               int64        `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Category         Category     `json:"category"`
	Priority         Priority     `json:"priority"`
	Status           Status       `json:"status"`
	DueDate          *string      `json:"dueDate,omitempty"` // YYYY-MM-DD
	AssignedTo       string       `json:"assignedTo"`
	PropertyID       *int64       `json:"propertyId,omitempty"`
	UnitID           *int64       `json:"unitId,omitempty"`
	TenantID         *int64       `json:"tenantId,omitempty"`
	VendorID         *int64       `json:"vendorId,omitempty"`
	RentPaymentID    *int64       `json:"rentPaymentId,omitempty"`
	Notes            string       `json:"notes"`
	IsRecurring      bool         `json:"isRecurring"`
	RecurrencePeriod string       `json:"recurrencePeriod,omitempty"`
	Attachments      []Attachment `json:"attachments,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Validate checks required fields and enum values on a task payload.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if t.Description == "" {
		return fmt.Errorf("description is required")
	}
	if t.Category != "" && !ValidCategory(string(t.Category)) {
		return fmt.Errorf("invalid category: %q", t.Category)
	}
	if t.Priority != "" && !ValidPriority(string(t.Priority)) {
		return fmt.Errorf("invalid priority: %q", t.Priority)
	}
	if t.Status != "" && !ValidStatus(string(t.Status)) {
		return fmt.Errorf("invalid status: %q", t.Status)
	}
	if t.DueDate != nil && *t.DueDate != "" {
		if _, err := time.Parse("2006-01-02", *t.DueDate); err != nil {
			return fmt.Errorf("invalid due date (use YYYY-MM-DD): %w", err)
		}
	}
	if t.IsRecurring && t.RecurrencePeriod == "" {
		return fmt.Errorf("recurrencePeriod is required for recurring tasks")
	}
	return nil
}

// Attachment is a file reference stored alongside a task.
type Attachment struct {
	ID          int64     `json:"id"`
	TaskID      int64     `json:"taskId"`
	FileName    string    `json:"fileName"`
	StoredName  string    `json:"storedName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Method is a communication channel.
type Method string

const (
	MethodEmail Method = "email"
	MethodSMS   Method = "sms"
)

// ValidMethod returns true if m is a known communication method.
func ValidMethod(m string) bool {
	return Method(m) == MethodEmail || Method(m) == MethodSMS
}

// CommStatus tracks the delivery outcome of a communication.
type CommStatus string

const (
	CommPending   CommStatus = "pending"
	CommDelivered CommStatus = "delivered"
	CommFailed    CommStatus = "failed"
)

// Communication is one outbound message recorded against a task.
// Records are append-only; the only permitted mutation is the
// pending → delivered|failed status transition.
type Communication struct {
	ID           int64      `json:"id"`
	TaskID       int64      `json:"taskId"`
	Method       Method     `json:"method"`
	Recipient    string     `json:"recipient"`
	Subject      string     `json:"subject,omitempty"`
	Message      string     `json:"message"`
	Status       CommStatus `json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
