package property

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jcarver/rentroll/internal/db"
)

func testRepo(t *testing.T) (*Repository, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})
	return NewRepository(d), d
}

func TestInsertAndGetByID(t *testing.T) {
	repo, _ := testRepo(t)

	p := &Property{
		Name:          "Oak Apts",
		Street:        "100 Oak St",
		City:          "Springfield",
		State:         "IL",
		ZipCode:       "62704",
		TotalUnits:    10,
		PurchasePrice: "850000",
		PurchaseDate:  "2020-06-15",
		PropertyType:  TypeApartment,
		Status:        StatusActive,
	}

	saved, err := repo.Insert(p)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.ID == 0 {
		t.Error("expected non-zero ID")
	}

	got, err := repo.GetByID(saved.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Name != "Oak Apts" {
		t.Errorf("name = %q, want %q", got.Name, "Oak Apts")
	}
	if got.TotalUnits != 10 {
		t.Errorf("total units = %d, want 10", got.TotalUnits)
	}
}

func TestInsertDefaults(t *testing.T) {
	repo, _ := testRepo(t)

	saved, err := repo.Insert(&Property{Name: "Bare", Street: "1 Bare Rd"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.PropertyType != TypeApartment {
		t.Errorf("type = %q, want %q", saved.PropertyType, TypeApartment)
	}
	if saved.Status != StatusActive {
		t.Errorf("status = %q, want %q", saved.Status, StatusActive)
	}
}

func TestInsertValidation(t *testing.T) {
	repo, _ := testRepo(t)

	tests := []struct {
		name string
		prop *Property
	}{
		{"missing name", &Property{Street: "1 St"}},
		{"missing address", &Property{Name: "X"}},
		{"negative units", &Property{Name: "X", Street: "1 St", TotalUnits: -1}},
		{"bad type", &Property{Name: "X", Street: "1 St", PropertyType: "castle"}},
		{"bad status", &Property{Name: "X", Street: "1 St", Status: "haunted"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Insert(tt.prop); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _ := testRepo(t)

	if _, err := repo.GetByID(9999); err == nil {
		t.Fatal("expected error for missing property")
	}
}

func TestUpdate(t *testing.T) {
	repo, _ := testRepo(t)

	saved, err := repo.Insert(&Property{Name: "Before", Street: "1 St", TotalUnits: 2})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	saved.Name = "After"
	saved.Status = StatusSold
	updated, err := repo.Update(saved)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("name = %q, want %q", updated.Name, "After")
	}
	if updated.Status != StatusSold {
		t.Errorf("status = %q, want %q", updated.Status, StatusSold)
	}
}

func TestDelete(t *testing.T) {
	repo, _ := testRepo(t)

	saved, err := repo.Insert(&Property{Name: "Gone", Street: "1 St"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.Delete(saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(saved.ID); err == nil {
		t.Fatal("expected not found after delete")
	}
	if err := repo.Delete(saved.ID); err == nil {
		t.Fatal("expected error deleting twice")
	}
}

func TestList(t *testing.T) {
	repo, _ := testRepo(t)

	for i := 0; i < 3; i++ {
		if _, err := repo.Insert(&Property{
			Name:   fmt.Sprintf("P%d", i),
			Street: fmt.Sprintf("%d Main St", i),
		}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	props, err := repo.List(ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(props) != 3 {
		t.Errorf("got %d properties, want 3", len(props))
	}
}

func TestListFilterByStatus(t *testing.T) {
	repo, _ := testRepo(t)

	if _, err := repo.Insert(&Property{Name: "A", Street: "1 St", Status: StatusActive}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert(&Property{Name: "B", Street: "2 St", Status: StatusSold}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	sold, err := repo.List(ListOptions{Status: StatusSold})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sold) != 1 {
		t.Fatalf("got %d sold, want 1", len(sold))
	}
	if sold[0].Name != "B" {
		t.Errorf("name = %q, want %q", sold[0].Name, "B")
	}
}

func TestStatsOccupancy(t *testing.T) {
	repo, d := testRepo(t)

	// 10 units, half occupied, should land at 50% occupancy.
	saved, err := repo.Insert(&Property{Name: "Oak Apts", Street: "100 Oak St", TotalUnits: 10})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	for i := 0; i < 10; i++ {
		status := "vacant"
		if i%2 == 0 {
			status = "occupied"
		}
		if _, err := d.Exec(
			"INSERT INTO units (property_id, unit_number, status, rent_amount) VALUES (?, ?, ?, ?)",
			saved.ID, fmt.Sprintf("%d", i+1), status, "1000",
		); err != nil {
			t.Fatalf("insert unit %d: %v", i, err)
		}
	}

	stats, err := repo.GetStats(saved.ID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.OccupiedUnits != 5 {
		t.Errorf("occupied = %d, want 5", stats.OccupiedUnits)
	}
	if stats.OccupancyRate != 50.0 {
		t.Errorf("occupancy rate = %v, want 50.0", stats.OccupancyRate)
	}
	if stats.MonthlyRevenue != "5000.00" {
		t.Errorf("monthly revenue = %q, want %q", stats.MonthlyRevenue, "5000.00")
	}
}

func TestStatsZeroUnits(t *testing.T) {
	repo, _ := testRepo(t)

	saved, err := repo.Insert(&Property{Name: "Empty Lot", Street: "0 Nowhere", TotalUnits: 0})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	stats, err := repo.GetStats(saved.ID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.OccupancyRate != 0 {
		t.Errorf("occupancy rate = %v, want 0 for zero units", stats.OccupancyRate)
	}
}

func TestStatsIdempotent(t *testing.T) {
	repo, d := testRepo(t)

	saved, err := repo.Insert(&Property{Name: "Stable", Street: "1 St", TotalUnits: 2})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := d.Exec(
		"INSERT INTO units (property_id, unit_number, status, rent_amount) VALUES (?, ?, ?, ?)",
		saved.ID, "1A", "occupied", "900",
	); err != nil {
		t.Fatalf("insert unit: %v", err)
	}

	first, err := repo.GetStats(saved.ID)
	if err != nil {
		t.Fatalf("first stats: %v", err)
	}
	second, err := repo.GetStats(saved.ID)
	if err != nil {
		t.Fatalf("second stats: %v", err)
	}
	if *first != *second {
		t.Errorf("stats changed between identical reads: %+v vs %+v", first, second)
	}
}
