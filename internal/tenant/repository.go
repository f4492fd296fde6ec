package tenant

import (
	"database/sql"
	"fmt"
	"time"
)

// Repository provides CRUD and occupancy operations for tenants.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a tenant repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, name, email, phone, unit_id, lease_start, lease_end, monthly_rent, status, move_out_date, move_out_reason, created_at, updated_at`

func scanTenant(row interface{ Scan(...interface{}) error }) (*Tenant, error) {
	var t Tenant
	var unitID sql.NullInt64
	var moveOutDate sql.NullString
	err := row.Scan(
		&t.ID, &t.Name, &t.Email, &t.Phone, &unitID,
		&t.LeaseStart, &t.LeaseEnd, &t.MonthlyRent, &t.Status,
		&moveOutDate, &t.MoveOutReason, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if unitID.Valid {
		t.UnitID = &unitID.Int64
	}
	if moveOutDate.Valid {
		t.MoveOutDate = &moveOutDate.String
	}
	return &t, nil
}

// Insert adds a new tenant and returns it with its generated ID.
func (r *Repository) Insert(t *Tenant) (*Tenant, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.MonthlyRent == "" {
		t.MonthlyRent = "0"
	}

	result, err := r.db.Exec(
		`INSERT INTO tenants (name, email, phone, unit_id, lease_start, lease_end, monthly_rent, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Name, t.Email, t.Phone, t.UnitID,
		t.LeaseStart, t.LeaseEnd, t.MonthlyRent, string(t.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting tenant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a tenant by its ID.
func (r *Repository) GetByID(id int64) (*Tenant, error) {
	query := fmt.Sprintf("SELECT %s FROM tenants WHERE id = ?", selectColumns)
	t, err := scanTenant(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tenant %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying tenant %d: %w", id, err)
	}
	return t, nil
}

// List returns all tenants, newest first.
func (r *Repository) List() ([]*Tenant, error) {
	query := fmt.Sprintf("SELECT %s FROM tenants ORDER BY created_at DESC, id DESC", selectColumns)
	return r.queryTenants(query)
}

// ListAvailable returns tenants eligible for assignment:
// no current unit, or status inactive.
func (r *Repository) ListAvailable() ([]*Tenant, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM tenants WHERE unit_id IS NULL OR status = 'inactive' ORDER BY name",
		selectColumns,
	)
	return r.queryTenants(query)
}

func (r *Repository) queryTenants(query string, args ...interface{}) ([]*Tenant, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var tenants []*Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenants: %w", err)
	}

	return tenants, nil
}

// Update replaces the mutable contact/lease fields of a tenant.
// Status changes go through the transition table; use Assign/MoveOut
// for occupancy changes since those also touch the unit and history.
func (r *Repository) Update(t *Tenant) (*Tenant, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	current, err := r.GetByID(t.ID)
	if err != nil {
		return nil, err
	}
	if t.Status != "" && !CanTransition(current.Status, t.Status) {
		return nil, fmt.Errorf("invalid status transition: %s -> %s", current.Status, t.Status)
	}
	if t.Status == "" {
		t.Status = current.Status
	}

	_, err = r.db.Exec(
		`UPDATE tenants SET
		 name = ?, email = ?, phone = ?, lease_start = ?, lease_end = ?,
		 monthly_rent = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		t.Name, t.Email, t.Phone, t.LeaseStart, t.LeaseEnd,
		t.MonthlyRent, string(t.Status), t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating tenant: %w", err)
	}

	return r.GetByID(t.ID)
}

// Delete removes a tenant by ID.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM tenants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting tenant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tenant %d not found", id)
	}

	return nil
}

// Assign places a tenant in a unit. The tenant's unit reference, the
// tenant status, the unit status, and the history move-in record are all
// written in one transaction so the occupancy view is never half-updated.
func (r *Repository) Assign(tenantID, unitID int64, moveIn string) (err error) {
	if moveIn == "" {
		moveIn = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", moveIn); err != nil {
		return fmt.Errorf("invalid move-in date (use YYYY-MM-DD): %w", err)
	}

	t, err := r.GetByID(tenantID)
	if err != nil {
		return err
	}
	if !t.Available() {
		return fmt.Errorf("tenant %d is already assigned to unit %d", tenantID, *t.UnitID)
	}
	if !CanTransition(t.Status, StatusActive) {
		return fmt.Errorf("invalid status transition: %s -> %s", t.Status, StatusActive)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning assignment: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	var unitStatus string
	err = tx.QueryRow("SELECT status FROM units WHERE id = ?", unitID).Scan(&unitStatus)
	if err == sql.ErrNoRows {
		return fmt.Errorf("unit %d not found", unitID)
	}
	if err != nil {
		return fmt.Errorf("querying unit %d: %w", unitID, err)
	}
	if unitStatus == "occupied" {
		return fmt.Errorf("unit %d is already occupied", unitID)
	}

	if _, err = tx.Exec(
		`UPDATE tenants SET unit_id = ?, status = 'active', move_out_date = NULL,
		 move_out_reason = '', updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		unitID, tenantID,
	); err != nil {
		return fmt.Errorf("assigning tenant: %w", err)
	}

	if _, err = tx.Exec(
		"UPDATE units SET status = 'occupied', updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		unitID,
	); err != nil {
		return fmt.Errorf("marking unit occupied: %w", err)
	}

	if _, err = tx.Exec(
		`INSERT INTO tenant_history (unit_id, tenant_id, tenant_name, move_in, rent, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		unitID, tenantID, t.Name, moveIn, t.MonthlyRent, "",
	); err != nil {
		return fmt.Errorf("recording move-in: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing assignment: %w", err)
	}
	return nil
}

// MoveOut releases a tenant from their unit. The unit becomes vacant, the
// tenant becomes moved_out and unassigned, and the open history record is
// closed — all in one transaction.
func (r *Repository) MoveOut(tenantID int64, moveOutDate, reason string) (err error) {
	if moveOutDate == "" {
		moveOutDate = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", moveOutDate); err != nil {
		return fmt.Errorf("invalid move-out date (use YYYY-MM-DD): %w", err)
	}

	t, err := r.GetByID(tenantID)
	if err != nil {
		return err
	}
	if t.UnitID == nil {
		return fmt.Errorf("tenant %d is not assigned to a unit", tenantID)
	}
	if !CanTransition(t.Status, StatusMovedOut) {
		return fmt.Errorf("invalid status transition: %s -> %s", t.Status, StatusMovedOut)
	}
	unitID := *t.UnitID

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning move-out: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	if _, err = tx.Exec(
		`UPDATE tenants SET unit_id = NULL, status = 'moved_out', move_out_date = ?,
		 move_out_reason = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		moveOutDate, reason, tenantID,
	); err != nil {
		return fmt.Errorf("releasing tenant: %w", err)
	}

	if _, err = tx.Exec(
		"UPDATE units SET status = 'vacant', updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		unitID,
	); err != nil {
		return fmt.Errorf("marking unit vacant: %w", err)
	}

	// Close the open history record; append a standalone one if none exists
	// (the tenant may predate history logging).
	res, err := tx.Exec(
		`UPDATE tenant_history SET move_out = ?, notes = ?
		 WHERE unit_id = ? AND tenant_id = ? AND move_out IS NULL`,
		moveOutDate, reason, unitID, tenantID,
	)
	if err != nil {
		return fmt.Errorf("closing history record: %w", err)
	}
	closed, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if closed == 0 {
		if _, err = tx.Exec(
			`INSERT INTO tenant_history (unit_id, tenant_id, tenant_name, move_in, move_out, rent, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			unitID, tenantID, t.Name, t.LeaseStart, moveOutDate, t.MonthlyRent, reason,
		); err != nil {
			return fmt.Errorf("recording move-out: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing move-out: %w", err)
	}
	return nil
}

// HistoryByUnit returns the occupancy history for a unit, newest first.
func (r *Repository) HistoryByUnit(unitID int64) ([]*HistoryRecord, error) {
	rows, err := r.db.Query(
		`SELECT id, unit_id, tenant_id, tenant_name, move_in, move_out, rent, notes, created_at
		 FROM tenant_history WHERE unit_id = ? ORDER BY id DESC`,
		unitID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tenant history: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var records []*HistoryRecord
	for rows.Next() {
		var h HistoryRecord
		var tenantID sql.NullInt64
		var moveOut sql.NullString
		if err := rows.Scan(
			&h.ID, &h.UnitID, &tenantID, &h.TenantName,
			&h.MoveIn, &moveOut, &h.Rent, &h.Notes, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning history record: %w", err)
		}
		if tenantID.Valid {
			h.TenantID = &tenantID.Int64
		}
		if moveOut.Valid {
			h.MoveOut = &moveOut.String
		}
		records = append(records, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	return records, nil
}
