package task

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Draft is an uncommitted field patch for a task. Edits accumulate in the
// draft and only reach the task on an explicit commit; discarding the
// draft leaves the task untouched.
type Draft struct {
	TaskID  int64                  `json:"taskId"`
	Changes map[string]interface{} `json:"changes"`
}

// draftFields is the set of task fields editable through a draft.
var draftFields = map[string]bool{
	"title":            true,
	"description":      true,
	"category":         true,
	"priority":         true,
	"status":           true,
	"dueDate":          true,
	"assignedTo":       true,
	"notes":            true,
	"isRecurring":      true,
	"recurrencePeriod": true,
}

// DraftRepository manages the per-task draft edit buffer.
type DraftRepository struct {
	db    *sql.DB
	tasks *Repository
}

// NewDraftRepository creates a draft repository.
func NewDraftRepository(db *sql.DB, tasks *Repository) *DraftRepository {
	return &DraftRepository{db: db, tasks: tasks}
}

// Save merges the given field changes into the task's draft, creating
// the draft if none exists. Unknown fields are rejected.
func (r *DraftRepository) Save(taskID int64, changes map[string]interface{}) (*Draft, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("no changes provided")
	}
	for field := range changes {
		if !draftFields[field] {
			return nil, fmt.Errorf("field %q is not editable through a draft", field)
		}
	}

	// Verify the task exists before buffering edits for it.
	if _, err := r.tasks.GetByID(taskID); err != nil {
		return nil, err
	}

	existing, err := r.Get(taskID)
	if err == nil {
		for k, v := range changes {
			existing.Changes[k] = v
		}
		changes = existing.Changes
	}

	encoded, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("encoding draft: %w", err)
	}

	if _, err := r.db.Exec(
		`INSERT INTO task_drafts (task_id, changes) VALUES (?, ?)
		 ON CONFLICT(task_id) DO UPDATE SET changes = excluded.changes, updated_at = CURRENT_TIMESTAMP`,
		taskID, string(encoded),
	); err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}

	return &Draft{TaskID: taskID, Changes: changes}, nil
}

// Get returns the draft for a task.
func (r *DraftRepository) Get(taskID int64) (*Draft, error) {
	var encoded string
	err := r.db.QueryRow(
		"SELECT changes FROM task_drafts WHERE task_id = ?", taskID,
	).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no draft for task %d", taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying draft: %w", err)
	}

	var changes map[string]interface{}
	if err := json.Unmarshal([]byte(encoded), &changes); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}

	return &Draft{TaskID: taskID, Changes: changes}, nil
}

// Commit merges the draft into the task and deletes the draft. The merge
// goes through Repository.Update, so illegal status transitions reject
// the commit and leave the draft in place.
func (r *DraftRepository) Commit(taskID int64) (*Task, error) {
	draft, err := r.Get(taskID)
	if err != nil {
		return nil, err
	}

	t, err := r.tasks.GetByID(taskID)
	if err != nil {
		return nil, err
	}

	applyDraft(t, draft.Changes)

	updated, err := r.tasks.Update(t)
	if err != nil {
		return nil, err
	}

	if err := r.Discard(taskID); err != nil {
		return nil, err
	}

	return updated, nil
}

// Discard deletes the draft without touching the task.
func (r *DraftRepository) Discard(taskID int64) error {
	result, err := r.db.Exec("DELETE FROM task_drafts WHERE task_id = ?", taskID)
	if err != nil {
		return fmt.Errorf("discarding draft: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("no draft for task %d", taskID)
	}

	return nil
}

// applyDraft copies draft field values onto a task.
func applyDraft(t *Task, changes map[string]interface{}) {
	if v, ok := changes["title"].(string); ok {
		t.Title = v
	}
	if v, ok := changes["description"].(string); ok {
		t.Description = v
	}
	if v, ok := changes["category"].(string); ok {
		t.Category = Category(v)
	}
	if v, ok := changes["priority"].(string); ok {
		t.Priority = Priority(v)
	}
	if v, ok := changes["status"].(string); ok {
		t.Status = Status(v)
	}
	if v, ok := changes["dueDate"].(string); ok {
		if v == "" {
			t.DueDate = nil
		} else {
			t.DueDate = &v
		}
	}
	if v, ok := changes["assignedTo"].(string); ok {
		t.AssignedTo = v
	}
	if v, ok := changes["notes"].(string); ok {
		t.Notes = v
	}
	if v, ok := changes["isRecurring"].(bool); ok {
		t.IsRecurring = v
	}
	if v, ok := changes["recurrencePeriod"].(string); ok {
		t.RecurrencePeriod = v
	}
}
