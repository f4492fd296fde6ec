package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "creates new database",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "rentroll.db")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "rentroll.db")
			},
		},
		{
			name: "opens existing database",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "rentroll.db")
				d, err := Open(path)
				if err != nil {
					t.Fatalf("setup: %v", err)
				}
				if err := d.Close(); err != nil {
					t.Fatalf("setup close: %v", err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			d, err := Open(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() {
				if err := d.Close(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Error("database file was not created")
			}
		})
	}
}

func TestForeignKeys(t *testing.T) {
	d := openTestDB(t)

	var fk int
	if err := d.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestMigrationsCreateTables(t *testing.T) {
	d := openTestDB(t)

	tables := []string{
		"users", "sessions", "properties", "units", "tenants",
		"tenant_history", "vendors", "rent_payments", "tasks",
		"task_attachments", "task_communications", "task_drafts",
		"mortgages", "expenses", "billing_records",
	}

	for _, table := range tables {
		t.Run(table, func(t *testing.T) {
			var name string
			err := d.QueryRow(
				"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table,
			).Scan(&name)
			if err != nil {
				t.Fatalf("table %s missing: %v", table, err)
			}
		})
	}
}

func TestForeignKeysSurvivePoolCycling(t *testing.T) {
	d := openTestDB(t)

	// Force the pool to discard connections so the next statement runs
	// on a freshly opened one.
	d.SetMaxIdleConns(0)

	_, err := d.Exec(
		"INSERT INTO units (property_id, unit_number) VALUES (?, ?)",
		99999, "1A",
	)
	if err == nil {
		t.Fatal("expected foreign key violation on a fresh pool connection")
	}
}

func TestUnitRequiresProperty(t *testing.T) {
	d := openTestDB(t)

	_, err := d.Exec(
		"INSERT INTO units (property_id, unit_number) VALUES (?, ?)",
		9999, "1A",
	)
	if err == nil {
		t.Fatal("expected foreign key violation for missing property")
	}
}

func TestPropertyDeleteCascadesUnits(t *testing.T) {
	d := openTestDB(t)

	res, err := d.Exec(
		"INSERT INTO properties (name, street) VALUES (?, ?)",
		"Oak Apts", "100 Oak St",
	)
	if err != nil {
		t.Fatalf("insert property: %v", err)
	}
	propID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := d.Exec(
			"INSERT INTO units (property_id, unit_number) VALUES (?, ?)",
			propID, fmt.Sprintf("%dA", i+1),
		); err != nil {
			t.Fatalf("insert unit %d: %v", i, err)
		}
	}

	if _, err := d.Exec("DELETE FROM properties WHERE id = ?", propID); err != nil {
		t.Fatalf("delete property: %v", err)
	}

	var count int
	if err := d.QueryRow("SELECT COUNT(*) FROM units WHERE property_id = ?", propID).Scan(&count); err != nil {
		t.Fatalf("count units: %v", err)
	}
	if count != 0 {
		t.Errorf("got %d units after cascade delete, want 0", count)
	}
}

func TestPropertyDeleteNullifiesTasks(t *testing.T) {
	d := openTestDB(t)

	res, err := d.Exec(
		"INSERT INTO properties (name, street) VALUES (?, ?)",
		"Oak Apts", "100 Oak St",
	)
	if err != nil {
		t.Fatalf("insert property: %v", err)
	}
	propID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	res, err = d.Exec(
		"INSERT INTO tasks (title, description, property_id) VALUES (?, ?, ?)",
		"Fix roof", "Shingles missing", propID,
	)
	if err != nil {
		t.Fatalf("insert task: %v", err)
	}
	taskID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("task insert id: %v", err)
	}

	if _, err := d.Exec("DELETE FROM properties WHERE id = ?", propID); err != nil {
		t.Fatalf("delete property: %v", err)
	}

	var pid sql.NullInt64
	if err := d.QueryRow("SELECT property_id FROM tasks WHERE id = ?", taskID).Scan(&pid); err != nil {
		t.Fatalf("query task: %v", err)
	}
	if pid.Valid {
		t.Errorf("task property_id = %d, want NULL after property delete", pid.Int64)
	}
}

func TestVendorRatingConstraint(t *testing.T) {
	d := openTestDB(t)

	tests := []struct {
		name    string
		rating  interface{}
		wantErr bool
	}{
		{"null rating is valid", nil, false},
		{"rating 1 is valid", 1, false},
		{"rating 5 is valid", 5, false},
		{"rating 0 is invalid", 0, true},
		{"rating 6 is invalid", 6, true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Exec(
				"INSERT INTO vendors (name, rating) VALUES (?, ?)",
				fmt.Sprintf("Vendor %d", i), tt.rating,
			)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentroll.db")

	d1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := d1.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	d2, err := Open(path)
	if err != nil {
		t.Fatalf("second open (idempotency): %v", err)
	}
	if err := d2.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(p) != "rentroll.db" {
		t.Errorf("expected filename rentroll.db, got %s", filepath.Base(p))
	}
}

// openTestDB creates a temporary database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rentroll.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return d
}
