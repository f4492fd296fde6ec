package payment

import (
	"database/sql"
	"fmt"
	"strings"
)

// Repository provides CRUD operations for rent payments.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a payment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, tenant_id, unit_id, property_id, amount, due_date, paid_date,
	payment_method, status, notes, created_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (*Payment, error) {
	var p Payment
	var tenantID, unitID, propertyID sql.NullInt64
	var paidDate sql.NullString

	err := row.Scan(&p.ID, &tenantID, &unitID, &propertyID, &p.Amount, &p.DueDate,
		&paidDate, &p.PaymentMethod, &p.Status, &p.Notes, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	if tenantID.Valid {
		p.TenantID = &tenantID.Int64
	}
	if unitID.Valid {
		p.UnitID = &unitID.Int64
	}
	if propertyID.Valid {
		p.PropertyID = &propertyID.Int64
	}
	if paidDate.Valid {
		p.PaidDate = &paidDate.String
	}

	return &p, nil
}

// Insert adds a new payment and returns it with its generated ID.
// Status defaults to pending, or paid when a paid date is present.
func (r *Repository) Insert(p *Payment) (*Payment, error) {
	applyStatusDefault(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.Exec(
		`INSERT INTO rent_payments
		 (tenant_id, unit_id, property_id, amount, due_date, paid_date, payment_method, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.TenantID, p.UnitID, p.PropertyID, p.Amount, p.DueDate, p.PaidDate,
		p.PaymentMethod, string(p.Status), p.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a payment by its ID.
func (r *Repository) GetByID(id int64) (*Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM rent_payments WHERE id = ?", selectColumns)
	p, err := scanPayment(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying payment %d: %w", id, err)
	}
	return p, nil
}

// ListOptions controls filtering for List. Empty values match all.
type ListOptions struct {
	TenantID   int64
	PropertyID int64
	Status     Status
	StartDate  string // due date lower bound, inclusive
	EndDate    string // due date upper bound, inclusive
}

// List returns payments matching the options, most recent due date first.
func (r *Repository) List(opts ListOptions) ([]*Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM rent_payments", selectColumns)
	var args []interface{}
	var conditions []string

	if opts.TenantID != 0 {
		conditions = append(conditions, "tenant_id = ?")
		args = append(args, opts.TenantID)
	}
	if opts.PropertyID != 0 {
		conditions = append(conditions, "property_id = ?")
		args = append(args, opts.PropertyID)
	}
	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(opts.Status))
	}
	if opts.StartDate != "" {
		conditions = append(conditions, "due_date >= ?")
		args = append(args, opts.StartDate)
	}
	if opts.EndDate != "" {
		conditions = append(conditions, "due_date <= ?")
		args = append(args, opts.EndDate)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY due_date DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var payments []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, nil
}

// applyStatusDefault fills in a blank status: a payment recorded with
// a paid date is paid, everything else starts pending.
func applyStatusDefault(p *Payment) {
	if p.Status != "" {
		return
	}
	if p.PaidDate != nil && *p.PaidDate != "" {
		p.Status = StatusPaid
		return
	}
	p.Status = StatusPending
}

// Update replaces the mutable fields of a payment.
func (r *Repository) Update(p *Payment) (*Payment, error) {
	applyStatusDefault(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.Exec(
		`UPDATE rent_payments SET
		 tenant_id = ?, unit_id = ?, property_id = ?, amount = ?, due_date = ?,
		 paid_date = ?, payment_method = ?, status = ?, notes = ?
		 WHERE id = ?`,
		p.TenantID, p.UnitID, p.PropertyID, p.Amount, p.DueDate, p.PaidDate,
		p.PaymentMethod, string(p.Status), p.Notes, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("payment %d not found", p.ID)
	}

	return r.GetByID(p.ID)
}

// MarkPaid sets a payment's status to paid with the given paid date.
func (r *Repository) MarkPaid(id int64, paidDate, method string) (*Payment, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	p.Status = StatusPaid
	p.PaidDate = &paidDate
	if method != "" {
		p.PaymentMethod = method
	}

	return r.Update(p)
}

// Delete removes a payment by ID.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM rent_payments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("payment %d not found", id)
	}

	return nil
}
