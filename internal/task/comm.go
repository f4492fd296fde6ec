package task

import (
	"database/sql"
	"fmt"
)

// CommRepository manages the append-only communications log for tasks.
type CommRepository struct {
	db *sql.DB
}

// NewCommRepository creates a communications repository.
func NewCommRepository(db *sql.DB) *CommRepository {
	return &CommRepository{db: db}
}

// Add records an outbound message against a task with status pending.
func (r *CommRepository) Add(c *Communication) (*Communication, error) {
	if !ValidMethod(string(c.Method)) {
		return nil, fmt.Errorf("invalid method: %q (use email or sms)", c.Method)
	}
	if c.Recipient == "" {
		return nil, fmt.Errorf("recipient is required")
	}
	if c.Message == "" {
		return nil, fmt.Errorf("message is required")
	}

	result, err := r.db.Exec(
		`INSERT INTO task_communications (task_id, method, recipient, subject, message)
		 VALUES (?, ?, ?, ?, ?)`,
		c.TaskID, string(c.Method), c.Recipient, c.Subject, c.Message,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting communication: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a communication by its ID.
func (r *CommRepository) GetByID(id int64) (*Communication, error) {
	var c Communication
	err := r.db.QueryRow(
		`SELECT id, task_id, method, recipient, subject, message, status, error_message, created_at
		 FROM task_communications WHERE id = ?`, id,
	).Scan(&c.ID, &c.TaskID, &c.Method, &c.Recipient, &c.Subject,
		&c.Message, &c.Status, &c.ErrorMessage, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("communication %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying communication %d: %w", id, err)
	}
	return &c, nil
}

// ListByTask returns a task's communications in creation order, oldest first.
func (r *CommRepository) ListByTask(taskID int64) ([]*Communication, error) {
	rows, err := r.db.Query(
		`SELECT id, task_id, method, recipient, subject, message, status, error_message, created_at
		 FROM task_communications WHERE task_id = ? ORDER BY id ASC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing communications: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var comms []*Communication
	for rows.Next() {
		var c Communication
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Method, &c.Recipient, &c.Subject,
			&c.Message, &c.Status, &c.ErrorMessage, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning communication: %w", err)
		}
		comms = append(comms, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating communications: %w", err)
	}

	return comms, nil
}

// MarkDelivered transitions a pending communication to delivered.
func (r *CommRepository) MarkDelivered(id int64) error {
	return r.resolve(id, CommDelivered, "")
}

// MarkFailed transitions a pending communication to failed with the
// transport's error message.
func (r *CommRepository) MarkFailed(id int64, errorMessage string) error {
	return r.resolve(id, CommFailed, errorMessage)
}

// resolve applies the only permitted mutation: pending → delivered|failed.
func (r *CommRepository) resolve(id int64, status CommStatus, errorMessage string) error {
	result, err := r.db.Exec(
		`UPDATE task_communications SET status = ?, error_message = ?
		 WHERE id = ? AND status = 'pending'`,
		string(status), errorMessage, id,
	)
	if err != nil {
		return fmt.Errorf("resolving communication: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("communication %d not found or already resolved", id)
	}

	return nil
}
