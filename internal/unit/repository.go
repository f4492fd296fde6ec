package unit

import (
	"database/sql"
	"fmt"
)

// Repository provides CRUD operations for units.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a unit repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, property_id, unit_number, bedrooms, bathrooms, rent_amount, status, square_footage, created_at, updated_at`

func scanUnit(row interface{ Scan(...interface{}) error }) (*Unit, error) {
	var u Unit
	var sqft sql.NullInt64
	err := row.Scan(
		&u.ID, &u.PropertyID, &u.UnitNumber, &u.Bedrooms, &u.Bathrooms,
		&u.RentAmount, &u.Status, &sqft, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sqft.Valid {
		u.SquareFootage = &sqft.Int64
	}
	return &u, nil
}

// Insert adds a new unit and returns it with its generated ID.
// Fails if the referenced property does not exist.
func (r *Repository) Insert(u *Unit) (*Unit, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if u.Status == "" {
		u.Status = StatusVacant
	}
	if u.Bathrooms == "" {
		u.Bathrooms = "1"
	}
	if u.RentAmount == "" {
		u.RentAmount = "0"
	}

	result, err := r.db.Exec(
		`INSERT INTO units (property_id, unit_number, bedrooms, bathrooms, rent_amount, status, square_footage)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.PropertyID, u.UnitNumber, u.Bedrooms, u.Bathrooms,
		u.RentAmount, string(u.Status), u.SquareFootage,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting unit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a unit by its ID.
func (r *Repository) GetByID(id int64) (*Unit, error) {
	query := fmt.Sprintf("SELECT %s FROM units WHERE id = ?", selectColumns)
	u, err := scanUnit(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("unit %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying unit %d: %w", id, err)
	}
	return u, nil
}

// List returns all units, optionally scoped to a property.
func (r *Repository) List(propertyID int64) ([]*Unit, error) {
	query := fmt.Sprintf("SELECT %s FROM units", selectColumns)
	var args []interface{}
	if propertyID != 0 {
		query += " WHERE property_id = ?"
		args = append(args, propertyID)
	}
	query += " ORDER BY property_id, unit_number"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var units []*Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		units = append(units, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}

	return units, nil
}

// Update replaces the mutable fields of a unit.
func (r *Repository) Update(u *Unit) (*Unit, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.Exec(
		`UPDATE units SET
		 unit_number = ?, bedrooms = ?, bathrooms = ?, rent_amount = ?,
		 status = ?, square_footage = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		u.UnitNumber, u.Bedrooms, u.Bathrooms, u.RentAmount,
		string(u.Status), u.SquareFootage, u.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating unit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("unit %d not found", u.ID)
	}

	return r.GetByID(u.ID)
}

// Delete removes a unit by ID. Tenant and task references are nulled.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM units WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting unit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("unit %d not found", id)
	}

	return nil
}
