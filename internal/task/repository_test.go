package task

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jcarver/rentroll/internal/db"
)

func testRepo(t *testing.T) (*Repository, *sql.DB) {
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
	return NewRepository(d), d
}

func TestInsertDefaults(t *testing.T) {
	repo, _ := testRepo(t)

	saved, err := repo.Insert(&Task{Title: "Fix faucet", Description: "Kitchen faucet drips"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.Priority != PriorityMedium {
		t.Errorf("priority = %q, want %q", saved.Priority, PriorityMedium)
	}
	if saved.Status != StatusPending {
		t.Errorf("status = %q, want %q", saved.Status, StatusPending)
	}
	if saved.Category != CategoryGeneral {
		t.Errorf("category = %q, want %q", saved.Category, CategoryGeneral)
	}
}

func TestInsertValidation(t *testing.T) {
	repo, _ := testRepo(t)

	due := "not-a-date"
	tests := []struct {
		name string
		task *Task
	}{
		{"missing title", &Task{Description: "d"}},
		{"missing description", &Task{Title: "t"}},
		{"bad priority", &Task{Title: "t", Description: "d", Priority: "extreme"}},
		{"bad status", &Task{Title: "t", Description: "d", Status: "paused"}},
		{"bad category", &Task{Title: "t", Description: "d", Category: "misc"}},
		{"bad due date", &Task{Title: "t", Description: "d", DueDate: &due}},
		{"recurring without period", &Task{Title: "t", Description: "d", IsRecurring: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Insert(tt.task); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, true},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestUpdateRejectsIllegalTransition(t *testing.T) {
	repo, _ := testRepo(t)

	saved, err := repo.Insert(&Task{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	saved.Status = StatusCompleted
	if _, err := repo.Update(saved); err != nil {
		t.Fatalf("complete: %v", err)
	}

	saved.Status = StatusPending
	if _, err := repo.Update(saved); err == nil {
		t.Fatal("expected error reopening completed task")
	}
}

func TestUpdateFields(t *testing.T) {
	repo, _ := testRepo(t)

	saved, err := repo.Insert(&Task{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	due := "2026-09-15"
	saved.Title = "Updated"
	saved.Priority = PriorityUrgent
	saved.DueDate = &due
	saved.AssignedTo = "Sam"

	updated, err := repo.Update(saved)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Updated" {
		t.Errorf("title = %q, want %q", updated.Title, "Updated")
	}
	if updated.Priority != PriorityUrgent {
		t.Errorf("priority = %q, want %q", updated.Priority, PriorityUrgent)
	}
	if updated.DueDate == nil || *updated.DueDate != due {
		t.Errorf("due date = %v, want %q", updated.DueDate, due)
	}
}

func TestListFilters(t *testing.T) {
	repo, d := testRepo(t)

	res, err := d.Exec("INSERT INTO properties (name, street) VALUES (?, ?)", "P", "1 St")
	if err != nil {
		t.Fatalf("insert property: %v", err)
	}
	propID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("insert id: %v", err)
	}

	if _, err := repo.Insert(&Task{Title: "scoped", Description: "d", PropertyID: &propID}); err != nil {
		t.Fatalf("insert scoped: %v", err)
	}
	if _, err := repo.Insert(&Task{Title: "loose", Description: "d"}); err != nil {
		t.Fatalf("insert loose: %v", err)
	}

	all, err := repo.List(ListOptions{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all: got %d, want 2", len(all))
	}

	scoped, err := repo.List(ListOptions{PropertyID: propID})
	if err != nil {
		t.Fatalf("list scoped: %v", err)
	}
	if len(scoped) != 1 {
		t.Fatalf("scoped: got %d, want 1", len(scoped))
	}
	if scoped[0].Title != "scoped" {
		t.Errorf("title = %q, want %q", scoped[0].Title, "scoped")
	}

	pending, err := repo.List(ListOptions{Status: StatusPending})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending: got %d, want 2", len(pending))
	}
}

func TestDeleteRemovesFromList(t *testing.T) {
	repo, _ := testRepo(t)

	saved, err := repo.Insert(&Task{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.Delete(saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	all, err := repo.List(ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("got %d tasks after delete, want 0", len(all))
	}
}

func TestInsertMissingParent(t *testing.T) {
	repo, _ := testRepo(t)

	bogus := int64(9999)
	if _, err := repo.Insert(&Task{Title: "t", Description: "d", PropertyID: &bogus}); err == nil {
		t.Fatal("expected foreign key error for missing property")
	}
}

func TestAttachments(t *testing.T) {
	repo, _ := testRepo(t)

	saved, err := repo.Insert(&Task{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := repo.AddAttachment(&Attachment{
			TaskID:      saved.ID,
			FileName:    fmt.Sprintf("photo%d.jpg", i),
			StoredName:  fmt.Sprintf("stored-%d", i),
			ContentType: "image/jpeg",
			SizeBytes:   1024,
		}); err != nil {
			t.Fatalf("add attachment %d: %v", i, err)
		}
	}

	got, err := repo.GetByID(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Attachments) != 2 {
		t.Fatalf("got %d attachments, want 2", len(got.Attachments))
	}
	if got.Attachments[0].FileName != "photo0.jpg" {
		t.Errorf("first attachment = %q, want %q", got.Attachments[0].FileName, "photo0.jpg")
	}

	storedName, err := repo.DeleteAttachment(got.Attachments[0].ID)
	if err != nil {
		t.Fatalf("delete attachment: %v", err)
	}
	if storedName != "stored-0" {
		t.Errorf("stored name = %q, want %q", storedName, "stored-0")
	}

	remaining, err := repo.ListAttachments(saved.ID)
	if err != nil {
		t.Fatalf("list attachments: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("got %d attachments after delete, want 1", len(remaining))
	}
}
