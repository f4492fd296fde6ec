package expense

import (
	"database/sql"
	"fmt"
	"strings"
)

// Repository provides CRUD operations for expenses.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an expense repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, property_id, amount, date, category, description, is_recurring, created_at`

func scanExpense(row interface{ Scan(...interface{}) error }) (*Expense, error) {
	var e Expense
	var propertyID sql.NullInt64
	var isRecurring int

	err := row.Scan(&e.ID, &propertyID, &e.Amount, &e.Date, &e.Category,
		&e.Description, &isRecurring, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	if propertyID.Valid {
		e.PropertyID = &propertyID.Int64
	}
	e.IsRecurring = isRecurring != 0

	return &e, nil
}

// Insert adds a new expense and returns it with its generated ID.
func (r *Repository) Insert(e *Expense) (*Expense, error) {
	if e.Category == "" {
		e.Category = CategoryOther
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	isRecurring := 0
	if e.IsRecurring {
		isRecurring = 1
	}

	result, err := r.db.Exec(
		`INSERT INTO expenses (property_id, amount, date, category, description, is_recurring)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.PropertyID, e.Amount, e.Date, string(e.Category), e.Description, isRecurring,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns an expense by its ID.
func (r *Repository) GetByID(id int64) (*Expense, error) {
	query := fmt.Sprintf("SELECT %s FROM expenses WHERE id = ?", selectColumns)
	e, err := scanExpense(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying expense %d: %w", id, err)
	}
	return e, nil
}

// ListOptions controls filtering for List. Empty values match all.
type ListOptions struct {
	PropertyID int64
	Category   Category
	StartDate  string // inclusive, YYYY-MM-DD
	EndDate    string // inclusive, YYYY-MM-DD
}

// List returns expenses matching the options, most recent date first.
func (r *Repository) List(opts ListOptions) ([]*Expense, error) {
	query := fmt.Sprintf("SELECT %s FROM expenses", selectColumns)
	var args []interface{}
	var conditions []string

	if opts.PropertyID != 0 {
		conditions = append(conditions, "property_id = ?")
		args = append(args, opts.PropertyID)
	}
	if opts.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, string(opts.Category))
	}
	if opts.StartDate != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, opts.StartDate)
	}
	if opts.EndDate != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, opts.EndDate)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var expenses []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return expenses, nil
}

// Update replaces the mutable fields of an expense.
func (r *Repository) Update(e *Expense) (*Expense, error) {
	if e.Category == "" {
		e.Category = CategoryOther
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	isRecurring := 0
	if e.IsRecurring {
		isRecurring = 1
	}

	result, err := r.db.Exec(
		`UPDATE expenses SET property_id = ?, amount = ?, date = ?, category = ?,
		 description = ?, is_recurring = ? WHERE id = ?`,
		e.PropertyID, e.Amount, e.Date, string(e.Category), e.Description, isRecurring, e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("expense %d not found", e.ID)
	}

	return r.GetByID(e.ID)
}

// Delete removes an expense by ID.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("expense %d not found", id)
	}

	return nil
}
