package property

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Repository provides CRUD operations for properties.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a property repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, name, street, city, state, zip_code, total_units, purchase_price, purchase_date, property_type, status, created_at, updated_at`

func scanProperty(row interface{ Scan(...interface{}) error }) (*Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.Name, &p.Street, &p.City, &p.State, &p.ZipCode,
		&p.TotalUnits, &p.PurchasePrice, &p.PurchaseDate,
		&p.PropertyType, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert adds a new property and returns it with its generated ID.
func (r *Repository) Insert(p *Property) (*Property, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.PropertyType == "" {
		p.PropertyType = TypeApartment
	}
	if p.Status == "" {
		p.Status = StatusActive
	}

	result, err := r.db.Exec(
		`INSERT INTO properties
		 (name, street, city, state, zip_code, total_units, purchase_price, purchase_date, property_type, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Street, p.City, p.State, p.ZipCode,
		p.TotalUnits, p.PurchasePrice, p.PurchaseDate,
		string(p.PropertyType), string(p.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting property: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a property by its ID.
func (r *Repository) GetByID(id int64) (*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = ?", selectColumns)
	p, err := scanProperty(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying property %d: %w", id, err)
	}
	return p, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	Status Status // empty = all
	Type   Type   // empty = all
}

// List returns all properties, optionally filtered, newest first.
func (r *Repository) List(opts ListOptions) ([]*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties", selectColumns)
	var args []interface{}
	var conditions []string

	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(opts.Status))
	}
	if opts.Type != "" {
		conditions = append(conditions, "property_type = ?")
		args = append(args, string(opts.Type))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var properties []*Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}

	return properties, nil
}

// Update replaces the mutable fields of a property.
func (r *Repository) Update(p *Property) (*Property, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.Exec(
		`UPDATE properties SET
		 name = ?, street = ?, city = ?, state = ?, zip_code = ?,
		 total_units = ?, purchase_price = ?, purchase_date = ?,
		 property_type = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.Name, p.Street, p.City, p.State, p.ZipCode,
		p.TotalUnits, p.PurchasePrice, p.PurchaseDate,
		string(p.PropertyType), string(p.Status), p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("property %d not found", p.ID)
	}

	return r.GetByID(p.ID)
}

// Delete removes a property by ID. Units and mortgages cascade;
// tasks and expenses keep their rows with the reference nulled.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %d not found", id)
	}

	return nil
}

// GetStats computes the read-time occupancy and revenue view for a property.
// Occupancy rate is occupied/total × 100, or 0 when the property has no units.
func (r *Repository) GetStats(id int64) (*Stats, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		"SELECT status, rent_amount FROM units WHERE property_id = ?", id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying units for property %d: %w", id, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	stats := Stats{PropertyID: id, TotalUnits: p.TotalUnits}
	var revenue float64
	var unitCount int

	for rows.Next() {
		var status, rent string
		if err := rows.Scan(&status, &rent); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		unitCount++
		if status == "occupied" {
			stats.OccupiedUnits++
			if amt, perr := strconv.ParseFloat(rent, 64); perr == nil {
				revenue += amt
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}

	// The declared total wins when it exceeds the number of unit rows;
	// otherwise fall back to the rows actually present.
	if unitCount > stats.TotalUnits {
		stats.TotalUnits = unitCount
	}
	stats.VacantUnits = stats.TotalUnits - stats.OccupiedUnits

	if stats.TotalUnits > 0 {
		stats.OccupancyRate = 100 * float64(stats.OccupiedUnits) / float64(stats.TotalUnits)
	}
	stats.MonthlyRevenue = strconv.FormatFloat(revenue, 'f', 2, 64)

	return &stats, nil
}

// ListWithStats returns all properties with their computed stats.
func (r *Repository) ListWithStats(opts ListOptions) ([]*WithStats, error) {
	props, err := r.List(opts)
	if err != nil {
		return nil, err
	}

	result := make([]*WithStats, 0, len(props))
	for _, p := range props {
		stats, err := r.GetStats(p.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &WithStats{Property: *p, Stats: *stats})
	}
	return result, nil
}
