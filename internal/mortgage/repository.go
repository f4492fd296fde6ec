package mortgage

import (
	"database/sql"
	"fmt"
)

// Repository provides CRUD operations for mortgages.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a mortgage repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, property_id, lender, original_amount, current_balance, interest_rate,
	monthly_payment, principal, interest, escrow, start_date, term_years,
	account_number, notes, created_at`

func scanMortgage(row interface{ Scan(...interface{}) error }) (*Mortgage, error) {
	var m Mortgage
	err := row.Scan(
		&m.ID, &m.PropertyID, &m.Lender, &m.OriginalAmount, &m.CurrentBalance,
		&m.InterestRate, &m.MonthlyPayment, &m.Principal, &m.Interest, &m.Escrow,
		&m.StartDate, &m.TermYears, &m.AccountNumber, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Insert adds a new mortgage and returns it with its generated ID.
func (r *Repository) Insert(m *Mortgage) (*Mortgage, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.TermYears == 0 {
		m.TermYears = 30
	}

	result, err := r.db.Exec(
		`INSERT INTO mortgages
		 (property_id, lender, original_amount, current_balance, interest_rate,
		  monthly_payment, principal, interest, escrow, start_date, term_years,
		  account_number, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.PropertyID, m.Lender, zeroDefault(m.OriginalAmount), zeroDefault(m.CurrentBalance),
		zeroDefault(m.InterestRate), zeroDefault(m.MonthlyPayment), zeroDefault(m.Principal),
		zeroDefault(m.Interest), zeroDefault(m.Escrow), m.StartDate, m.TermYears,
		m.AccountNumber, m.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting mortgage: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a mortgage by its ID.
func (r *Repository) GetByID(id int64) (*Mortgage, error) {
	query := fmt.Sprintf("SELECT %s FROM mortgages WHERE id = ?", selectColumns)
	m, err := scanMortgage(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("mortgage %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying mortgage %d: %w", id, err)
	}
	return m, nil
}

// List returns all mortgages, optionally scoped to a property (0 = all).
func (r *Repository) List(propertyID int64) ([]*Mortgage, error) {
	query := fmt.Sprintf("SELECT %s FROM mortgages", selectColumns)
	var args []interface{}
	if propertyID != 0 {
		query += " WHERE property_id = ?"
		args = append(args, propertyID)
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing mortgages: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var mortgages []*Mortgage
	for rows.Next() {
		m, err := scanMortgage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mortgage: %w", err)
		}
		mortgages = append(mortgages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mortgages: %w", err)
	}

	return mortgages, nil
}

// Update replaces the mutable fields of a mortgage.
func (r *Repository) Update(m *Mortgage) (*Mortgage, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.Exec(
		`UPDATE mortgages SET
		 property_id = ?, lender = ?, original_amount = ?, current_balance = ?,
		 interest_rate = ?, monthly_payment = ?, principal = ?, interest = ?,
		 escrow = ?, start_date = ?, term_years = ?, account_number = ?, notes = ?
		 WHERE id = ?`,
		m.PropertyID, m.Lender, zeroDefault(m.OriginalAmount), zeroDefault(m.CurrentBalance),
		zeroDefault(m.InterestRate), zeroDefault(m.MonthlyPayment), zeroDefault(m.Principal),
		zeroDefault(m.Interest), zeroDefault(m.Escrow), m.StartDate, m.TermYears,
		m.AccountNumber, m.Notes, m.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating mortgage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("mortgage %d not found", m.ID)
	}

	return r.GetByID(m.ID)
}

// Delete removes a mortgage by ID.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM mortgages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting mortgage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("mortgage %d not found", id)
	}

	return nil
}

func zeroDefault(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
