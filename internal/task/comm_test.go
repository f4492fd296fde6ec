package task

import (
	"fmt"
	"testing"
)

func commFixture(t *testing.T) (*CommRepository, *Task) {
	t.Helper()
	repo, d := testRepo(t)
	saved, err := repo.Insert(&Task{Title: "Notify tenant", Description: "Send repair schedule"})
	if err != nil {
		t.Fatalf("insert task: %v", err)
	}
	return NewCommRepository(d), saved
}

func TestCommAddDefaultsPending(t *testing.T) {
	comms, task := commFixture(t)

	saved, err := comms.Add(&Communication{
		TaskID:    task.ID,
		Method:    MethodEmail,
		Recipient: "tenant@example.com",
		Subject:   "Repair scheduled",
		Message:   "A plumber will arrive Tuesday at 9am.",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if saved.Status != CommPending {
		t.Errorf("status = %q, want %q", saved.Status, CommPending)
	}
}

func TestCommAddValidation(t *testing.T) {
	comms, task := commFixture(t)

	tests := []struct {
		name string
		comm *Communication
	}{
		{"bad method", &Communication{TaskID: task.ID, Method: "fax", Recipient: "r", Message: "m"}},
		{"missing recipient", &Communication{TaskID: task.ID, Method: MethodEmail, Message: "m"}},
		{"missing message", &Communication{TaskID: task.ID, Method: MethodSMS, Recipient: "r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := comms.Add(tt.comm); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCommListCreationOrder(t *testing.T) {
	comms, task := commFixture(t)

	for i := 0; i < 3; i++ {
		if _, err := comms.Add(&Communication{
			TaskID:    task.ID,
			Method:    MethodEmail,
			Recipient: "tenant@example.com",
			Message:   fmt.Sprintf("message %d", i),
		}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	list, err := comms.ListByTask(task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d communications, want 3", len(list))
	}
	for i, c := range list {
		want := fmt.Sprintf("message %d", i)
		if c.Message != want {
			t.Errorf("list[%d].Message = %q, want %q", i, c.Message, want)
		}
	}
}

func TestCommResolve(t *testing.T) {
	comms, task := commFixture(t)

	first, err := comms.Add(&Communication{
		TaskID: task.ID, Method: MethodEmail, Recipient: "a@example.com", Message: "hello",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := comms.Add(&Communication{
		TaskID: task.ID, Method: MethodSMS, Recipient: "555-0100", Message: "hi",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := comms.MarkDelivered(first.ID); err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	if err := comms.MarkFailed(second.ID, "connection refused"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	got, err := comms.GetByID(first.ID)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if got.Status != CommDelivered {
		t.Errorf("first status = %q, want %q", got.Status, CommDelivered)
	}

	got, err = comms.GetByID(second.ID)
	if err != nil {
		t.Fatalf("get second: %v", err)
	}
	if got.Status != CommFailed {
		t.Errorf("second status = %q, want %q", got.Status, CommFailed)
	}
	if got.ErrorMessage != "connection refused" {
		t.Errorf("error message = %q, want %q", got.ErrorMessage, "connection refused")
	}
}

func TestCommDoubleResolveFails(t *testing.T) {
	comms, task := commFixture(t)

	saved, err := comms.Add(&Communication{
		TaskID: task.ID, Method: MethodEmail, Recipient: "a@example.com", Message: "hello",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := comms.MarkDelivered(saved.ID); err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	if err := comms.MarkFailed(saved.ID, "late failure"); err == nil {
		t.Fatal("expected error resolving an already delivered communication")
	}
}

func TestCommIsolationAcrossTasks(t *testing.T) {
	repo, d := testRepo(t)
	comms := NewCommRepository(d)

	first, err := repo.Insert(&Task{Title: "a", Description: "d"})
	if err != nil {
		t.Fatalf("insert first: %v", err)
	}
	second, err := repo.Insert(&Task{Title: "b", Description: "d"})
	if err != nil {
		t.Fatalf("insert second: %v", err)
	}

	if _, err := comms.Add(&Communication{
		TaskID: first.ID, Method: MethodEmail, Recipient: "a@example.com", Message: "for first",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	otherList, err := comms.ListByTask(second.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(otherList) != 0 {
		t.Errorf("got %d communications on unrelated task, want 0", len(otherList))
	}

	if err := repo.Delete(first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	firstList, err := comms.ListByTask(first.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(firstList) != 0 {
		t.Errorf("got %d communications after task delete, want 0", len(firstList))
	}
}
