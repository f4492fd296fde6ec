package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
// Tables referencing other tables appear after their parents.
//
// Cascade policy: deleting a property removes its units and mortgages;
// tasks and expenses survive with the reference nulled. Deleting a task
// removes its communications, attachments, and draft.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT    NOT NULL,
		email           TEXT    NOT NULL UNIQUE,
		password_hash   TEXT    NOT NULL,
		role            TEXT    NOT NULL DEFAULT 'manager',
		organization_id TEXT    NOT NULL DEFAULT '',
		created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		token      TEXT    PRIMARY KEY,
		user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		name           TEXT    NOT NULL,
		street         TEXT    NOT NULL,
		city           TEXT    NOT NULL DEFAULT '',
		state          TEXT    NOT NULL DEFAULT '',
		zip_code       TEXT    NOT NULL DEFAULT '',
		total_units    INTEGER NOT NULL DEFAULT 1 CHECK (total_units >= 0),
		purchase_price TEXT    NOT NULL DEFAULT '',
		purchase_date  TEXT    NOT NULL DEFAULT '',
		property_type  TEXT    NOT NULL DEFAULT 'apartment',
		status         TEXT    NOT NULL DEFAULT 'active',
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS units (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id     INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		unit_number     TEXT    NOT NULL,
		bedrooms        INTEGER NOT NULL DEFAULT 0 CHECK (bedrooms >= 0),
		bathrooms       TEXT    NOT NULL DEFAULT '1',
		rent_amount     TEXT    NOT NULL DEFAULT '0',
		status          TEXT    NOT NULL DEFAULT 'vacant',
		square_footage  INTEGER,
		created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT    NOT NULL,
		email           TEXT    NOT NULL DEFAULT '',
		phone           TEXT    NOT NULL DEFAULT '',
		unit_id         INTEGER REFERENCES units(id) ON DELETE SET NULL,
		lease_start     TEXT    NOT NULL DEFAULT '',
		lease_end       TEXT    NOT NULL DEFAULT '',
		monthly_rent    TEXT    NOT NULL DEFAULT '0',
		status          TEXT    NOT NULL DEFAULT 'pending',
		move_out_date   TEXT,
		move_out_reason TEXT    NOT NULL DEFAULT '',
		created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tenant_history (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		unit_id     INTEGER NOT NULL REFERENCES units(id) ON DELETE CASCADE,
		tenant_id   INTEGER REFERENCES tenants(id) ON DELETE SET NULL,
		tenant_name TEXT    NOT NULL,
		move_in     TEXT    NOT NULL,
		move_out    TEXT,
		rent        TEXT    NOT NULL DEFAULT '0',
		notes       TEXT    NOT NULL DEFAULT '',
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS vendors (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT    NOT NULL,
		email        TEXT    NOT NULL DEFAULT '',
		phone        TEXT    NOT NULL DEFAULT '',
		service_type TEXT    NOT NULL DEFAULT 'general',
		rating       INTEGER CHECK (rating IS NULL OR (rating >= 1 AND rating <= 5)),
		notes        TEXT    NOT NULL DEFAULT '',
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS rent_payments (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		tenant_id      INTEGER REFERENCES tenants(id) ON DELETE SET NULL,
		unit_id        INTEGER REFERENCES units(id) ON DELETE SET NULL,
		property_id    INTEGER REFERENCES properties(id) ON DELETE SET NULL,
		amount         TEXT    NOT NULL DEFAULT '0',
		due_date       TEXT    NOT NULL DEFAULT '',
		paid_date      TEXT,
		payment_method TEXT    NOT NULL DEFAULT '',
		status         TEXT    NOT NULL DEFAULT 'pending',
		notes          TEXT    NOT NULL DEFAULT '',
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		title             TEXT    NOT NULL,
		description       TEXT    NOT NULL,
		category          TEXT    NOT NULL DEFAULT 'general',
		priority          TEXT    NOT NULL DEFAULT 'medium',
		status            TEXT    NOT NULL DEFAULT 'pending',
		due_date          TEXT,
		assigned_to       TEXT    NOT NULL DEFAULT '',
		property_id       INTEGER REFERENCES properties(id) ON DELETE SET NULL,
		unit_id           INTEGER REFERENCES units(id) ON DELETE SET NULL,
		tenant_id         INTEGER REFERENCES tenants(id) ON DELETE SET NULL,
		vendor_id         INTEGER REFERENCES vendors(id) ON DELETE SET NULL,
		rent_payment_id   INTEGER REFERENCES rent_payments(id) ON DELETE SET NULL,
		notes             TEXT    NOT NULL DEFAULT '',
		is_recurring      INTEGER NOT NULL DEFAULT 0,
		recurrence_period TEXT    NOT NULL DEFAULT '',
		created_at        DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at        DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS task_attachments (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id      INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		file_name    TEXT    NOT NULL,
		stored_name  TEXT    NOT NULL UNIQUE,
		content_type TEXT    NOT NULL DEFAULT '',
		size_bytes   INTEGER NOT NULL DEFAULT 0,
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS task_communications (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id       INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		method        TEXT    NOT NULL,
		recipient     TEXT    NOT NULL,
		subject       TEXT    NOT NULL DEFAULT '',
		message       TEXT    NOT NULL,
		status        TEXT    NOT NULL DEFAULT 'pending',
		error_message TEXT    NOT NULL DEFAULT '',
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS task_drafts (
		task_id    INTEGER PRIMARY KEY REFERENCES tasks(id) ON DELETE CASCADE,
		changes    TEXT    NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS mortgages (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id     INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		lender          TEXT    NOT NULL,
		original_amount TEXT    NOT NULL DEFAULT '0',
		current_balance TEXT    NOT NULL DEFAULT '0',
		interest_rate   TEXT    NOT NULL DEFAULT '0',
		monthly_payment TEXT    NOT NULL DEFAULT '0',
		principal       TEXT    NOT NULL DEFAULT '0',
		interest        TEXT    NOT NULL DEFAULT '0',
		escrow          TEXT    NOT NULL DEFAULT '0',
		start_date      TEXT    NOT NULL DEFAULT '',
		term_years      INTEGER NOT NULL DEFAULT 30,
		account_number  TEXT    NOT NULL DEFAULT '',
		notes           TEXT    NOT NULL DEFAULT '',
		created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id  INTEGER REFERENCES properties(id) ON DELETE SET NULL,
		amount       TEXT    NOT NULL DEFAULT '0',
		date         TEXT    NOT NULL,
		category     TEXT    NOT NULL DEFAULT 'other',
		description  TEXT    NOT NULL DEFAULT '',
		is_recurring INTEGER NOT NULL DEFAULT 0,
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS billing_records (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		tenant_id       INTEGER NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		unit_id         INTEGER REFERENCES units(id) ON DELETE SET NULL,
		amount          TEXT    NOT NULL DEFAULT '0',
		billing_period  TEXT    NOT NULL,
		due_date        TEXT    NOT NULL DEFAULT '',
		status          TEXT    NOT NULL DEFAULT 'pending',
		type            TEXT    NOT NULL DEFAULT 'rent',
		organization_id TEXT    NOT NULL DEFAULT '',
		created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (tenant_id, billing_period, type)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_units_property ON units(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tenants_unit ON tenants(unit_id)`,
	`CREATE INDEX IF NOT EXISTS idx_history_unit ON tenant_history(unit_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_property ON tasks(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comms_task ON task_communications(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_billing_tenant ON billing_records(tenant_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
