package task

import (
	"database/sql"
	"fmt"
	"strings"
)

// Repository provides CRUD operations for tasks and their sub-records.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a task repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, title, description, category, priority, status, due_date, assigned_to,
	property_id, unit_id, tenant_id, vendor_id, rent_payment_id,
	notes, is_recurring, recurrence_period, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (*Task, error) {
	var t Task
	var dueDate sql.NullString
	var propertyID, unitID, tenantID, vendorID, rentPaymentID sql.NullInt64
	var isRecurring int

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.Status,
		&dueDate, &t.AssignedTo,
		&propertyID, &unitID, &tenantID, &vendorID, &rentPaymentID,
		&t.Notes, &isRecurring, &t.RecurrencePeriod, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		t.DueDate = &dueDate.String
	}
	if propertyID.Valid {
		t.PropertyID = &propertyID.Int64
	}
	if unitID.Valid {
		t.UnitID = &unitID.Int64
	}
	if tenantID.Valid {
		t.TenantID = &tenantID.Int64
	}
	if vendorID.Valid {
		t.VendorID = &vendorID.Int64
	}
	if rentPaymentID.Valid {
		t.RentPaymentID = &rentPaymentID.Int64
	}
	t.IsRecurring = isRecurring != 0

	return &t, nil
}

// Insert adds a new task and returns it with its generated ID.
// Priority defaults to medium and status to pending.
func (r *Repository) Insert(t *Task) (*Task, error) {
	if t.Category == "" {
		t.Category = CategoryGeneral
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.Exec(
		`INSERT INTO tasks
		 (title, description, category, priority, status, due_date, assigned_to,
		  property_id, unit_id, tenant_id, vendor_id, rent_payment_id,
		  notes, is_recurring, recurrence_period)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, string(t.Category), string(t.Priority), string(t.Status),
		t.DueDate, t.AssignedTo,
		t.PropertyID, t.UnitID, t.TenantID, t.VendorID, t.RentPaymentID,
		t.Notes, boolToInt(t.IsRecurring), t.RecurrencePeriod,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a task by its ID, with attachments loaded.
func (r *Repository) GetByID(id int64) (*Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = ?", selectColumns)
	t, err := scanTask(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying task %d: %w", id, err)
	}

	attachments, err := r.ListAttachments(id)
	if err != nil {
		return nil, err
	}
	t.Attachments = attachments

	return t, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	PropertyID int64
	UnitID     int64
	TenantID   int64
	Status     Status // empty = all
}

// List returns tasks matching the options, newest first.
func (r *Repository) List(opts ListOptions) ([]*Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks", selectColumns)
	var args []interface{}
	var conditions []string

	if opts.PropertyID != 0 {
		conditions = append(conditions, "property_id = ?")
		args = append(args, opts.PropertyID)
	}
	if opts.UnitID != 0 {
		conditions = append(conditions, "unit_id = ?")
		args = append(args, opts.UnitID)
	}
	if opts.TenantID != 0 {
		conditions = append(conditions, "tenant_id = ?")
		args = append(args, opts.TenantID)
	}
	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(opts.Status))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var tasks []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// Update replaces the mutable fields of a task. Status changes must be
// legal per the transition table.
func (r *Repository) Update(t *Task) (*Task, error) {
	current, err := r.GetByID(t.ID)
	if err != nil {
		return nil, err
	}

	if t.Category == "" {
		t.Category = current.Category
	}
	if t.Priority == "" {
		t.Priority = current.Priority
	}
	if t.Status == "" {
		t.Status = current.Status
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, t.Status) {
		return nil, fmt.Errorf("invalid status transition: %s -> %s", current.Status, t.Status)
	}

	_, err = r.db.Exec(
		`UPDATE tasks SET
		 title = ?, description = ?, category = ?, priority = ?, status = ?,
		 due_date = ?, assigned_to = ?, property_id = ?, unit_id = ?, tenant_id = ?,
		 vendor_id = ?, rent_payment_id = ?, notes = ?, is_recurring = ?,
		 recurrence_period = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		t.Title, t.Description, string(t.Category), string(t.Priority), string(t.Status),
		t.DueDate, t.AssignedTo, t.PropertyID, t.UnitID, t.TenantID,
		t.VendorID, t.RentPaymentID, t.Notes, boolToInt(t.IsRecurring),
		t.RecurrencePeriod, t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	return r.GetByID(t.ID)
}

// Delete removes a task by ID. Communications, attachments, and any
// draft cascade with it.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %d not found", id)
	}

	return nil
}

// AddAttachment records a stored file against a task.
func (r *Repository) AddAttachment(a *Attachment) (*Attachment, error) {
	if a.FileName == "" || a.StoredName == "" {
		return nil, fmt.Errorf("fileName and storedName are required")
	}

	result, err := r.db.Exec(
		`INSERT INTO task_attachments (task_id, file_name, stored_name, content_type, size_bytes)
		 VALUES (?, ?, ?, ?, ?)`,
		a.TaskID, a.FileName, a.StoredName, a.ContentType, a.SizeBytes,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting attachment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	var saved Attachment
	err = r.db.QueryRow(
		`SELECT id, task_id, file_name, stored_name, content_type, size_bytes, created_at
		 FROM task_attachments WHERE id = ?`, id,
	).Scan(&saved.ID, &saved.TaskID, &saved.FileName, &saved.StoredName,
		&saved.ContentType, &saved.SizeBytes, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("reading back attachment: %w", err)
	}

	return &saved, nil
}

// ListAttachments returns a task's attachments in upload order.
func (r *Repository) ListAttachments(taskID int64) ([]Attachment, error) {
	rows, err := r.db.Query(
		`SELECT id, task_id, file_name, stored_name, content_type, size_bytes, created_at
		 FROM task_attachments WHERE task_id = ? ORDER BY id`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var attachments []Attachment
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.ID, &a.TaskID, &a.FileName, &a.StoredName,
			&a.ContentType, &a.SizeBytes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning attachment: %w", err)
		}
		attachments = append(attachments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attachments: %w", err)
	}

	return attachments, nil
}

// DeleteAttachment removes an attachment record and returns its stored
// name so the caller can unlink the file.
func (r *Repository) DeleteAttachment(id int64) (string, error) {
	var storedName string
	err := r.db.QueryRow(
		"SELECT stored_name FROM task_attachments WHERE id = ?", id,
	).Scan(&storedName)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("attachment %d not found", id)
	}
	if err != nil {
		return "", fmt.Errorf("querying attachment %d: %w", id, err)
	}

	if _, err := r.db.Exec("DELETE FROM task_attachments WHERE id = ?", id); err != nil {
		return "", fmt.Errorf("deleting attachment: %w", err)
	}

	return storedName, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
