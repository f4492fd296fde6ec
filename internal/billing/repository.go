package billing

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Repository provides billing record operations.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository creates a billing repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

const selectColumns = `id, tenant_id, unit_id, amount, billing_period, due_date, status, type,
	organization_id, created_at, updated_at`

func scanRecord(row interface{ Scan(...interface{}) error }) (*Record, error) {
	var rec Record
	var unitID sql.NullInt64

	err := row.Scan(&rec.ID, &rec.TenantID, &unitID, &rec.Amount, &rec.BillingPeriod,
		&rec.DueDate, &rec.Status, &rec.Type, &rec.OrganizationID,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if unitID.Valid {
		rec.UnitID = &unitID.Int64
	}

	return &rec, nil
}

// Insert adds a new billing record and returns it with its generated ID.
// Status defaults to pending and type to rent. A tenant gets at most one
// record per period and type.
func (r *Repository) Insert(rec *Record) (*Record, error) {
	if rec.Status == "" {
		rec.Status = StatusPending
	}
	if rec.Type == "" {
		rec.Type = TypeRent
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.Exec(
		`INSERT INTO billing_records
		 (tenant_id, unit_id, amount, billing_period, due_date, status, type, organization_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.TenantID, rec.UnitID, rec.Amount, rec.BillingPeriod, rec.DueDate,
		string(rec.Status), string(rec.Type), rec.OrganizationID,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting billing record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a billing record by its ID.
func (r *Repository) GetByID(id int64) (*Record, error) {
	query := fmt.Sprintf("SELECT %s FROM billing_records WHERE id = ?", selectColumns)
	rec, err := scanRecord(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("billing record %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying billing record %d: %w", id, err)
	}
	return rec, nil
}

// ListByTenant returns a tenant's billing records, newest period first.
func (r *Repository) ListByTenant(tenantID int64) ([]*Record, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM billing_records WHERE tenant_id = ? ORDER BY billing_period DESC, id DESC",
		selectColumns,
	)
	return r.queryRecords(query, tenantID)
}

func (r *Repository) queryRecords(query string, args ...interface{}) ([]*Record, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing billing records: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning billing record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating billing records: %w", err)
	}

	return records, nil
}

// Update replaces the mutable fields of a billing record.
func (r *Repository) Update(rec *Record) (*Record, error) {
	if rec.Status == "" {
		rec.Status = StatusPending
	}
	if rec.Type == "" {
		rec.Type = TypeRent
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.Exec(
		`UPDATE billing_records SET
		 tenant_id = ?, unit_id = ?, amount = ?, billing_period = ?, due_date = ?,
		 status = ?, type = ?, organization_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		rec.TenantID, rec.UnitID, rec.Amount, rec.BillingPeriod, rec.DueDate,
		string(rec.Status), string(rec.Type), rec.OrganizationID, rec.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating billing record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("billing record %d not found", rec.ID)
	}

	return r.GetByID(rec.ID)
}

// GenerateMonthly creates one rent record per active tenant with a unit
// for the given period (YYYY-MM; empty = current month). Tenants that
// already have a rent record for the period are skipped. Returns the
// number of records created.
func (r *Repository) GenerateMonthly(period string) (int, error) {
	if period == "" {
		period = r.now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", period); err != nil {
		return 0, fmt.Errorf("invalid billing period (use YYYY-MM): %w", err)
	}

	rows, err := r.db.Query(
		`SELECT t.id, t.unit_id, t.monthly_rent FROM tenants t
		 WHERE t.status = 'active' AND t.unit_id IS NOT NULL
		 AND NOT EXISTS (
			SELECT 1 FROM billing_records b
			WHERE b.tenant_id = t.id AND b.billing_period = ? AND b.type = 'rent'
		 )`,
		period,
	)
	if err != nil {
		return 0, fmt.Errorf("finding billable tenants: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	type billable struct {
		tenantID int64
		unitID   int64
		rent     string
	}
	var tenants []billable
	for rows.Next() {
		var b billable
		if err := rows.Scan(&b.tenantID, &b.unitID, &b.rent); err != nil {
			return 0, fmt.Errorf("scanning tenant: %w", err)
		}
		tenants = append(tenants, b)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating tenants: %w", err)
	}

	// Rent is due on the first of the period.
	dueDate := period + "-01"

	generated := 0
	for _, b := range tenants {
		_, err := r.db.Exec(
			`INSERT INTO billing_records (tenant_id, unit_id, amount, billing_period, due_date, status, type)
			 VALUES (?, ?, ?, ?, ?, 'pending', 'rent')`,
			b.tenantID, b.unitID, b.rent, period, dueDate,
		)
		if err != nil {
			return generated, fmt.Errorf("generating record for tenant %d: %w", b.tenantID, err)
		}
		generated++
	}

	return generated, nil
}

// RunResult is what an automatic billing run produced.
type RunResult struct {
	Generated int `json:"generated"`
	Updated   int `json:"updated"`
}

// RunAutomatic generates the current month's records and marks pending
// records whose due date has passed as overdue.
func (r *Repository) RunAutomatic() (*RunResult, error) {
	generated, err := r.GenerateMonthly("")
	if err != nil {
		return nil, err
	}

	today := r.now().Format("2006-01-02")
	result, err := r.db.Exec(
		`UPDATE billing_records SET status = 'overdue', updated_at = CURRENT_TIMESTAMP
		 WHERE status = 'pending' AND due_date != '' AND due_date < ?`,
		today,
	)
	if err != nil {
		return nil, fmt.Errorf("marking overdue records: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}

	return &RunResult{Generated: generated, Updated: int(updated)}, nil
}

// OutstandingBalance sums a tenant's unpaid billing amounts and
// subtracts rent payments already received, floored at zero.
func (r *Repository) OutstandingBalance(tenantID int64) (string, error) {
	rows, err := r.db.Query(
		`SELECT amount FROM billing_records
		 WHERE tenant_id = ? AND status IN ('pending', 'overdue')`,
		tenantID,
	)
	if err != nil {
		return "", fmt.Errorf("querying unpaid records: %w", err)
	}
	billed, err := sumAmounts(rows)
	if err != nil {
		return "", err
	}

	rows, err = r.db.Query(
		"SELECT amount FROM rent_payments WHERE tenant_id = ? AND status = 'paid'",
		tenantID,
	)
	if err != nil {
		return "", fmt.Errorf("querying payments: %w", err)
	}
	paid, err := sumAmounts(rows)
	if err != nil {
		return "", err
	}

	balance := billed - paid
	if balance < 0 {
		balance = 0
	}

	return strconv.FormatFloat(balance, 'f', 2, 64), nil
}

func sumAmounts(rows *sql.Rows) (float64, error) {
	defer func() {
		_ = rows.Close()
	}()

	var total float64
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return 0, fmt.Errorf("scanning amount: %w", err)
		}
		v, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			continue // malformed amounts don't break the sum
		}
		total += v
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating amounts: %w", err)
	}

	return total, nil
}
