package mortgage

import (
	"path/filepath"
	"testing"

	"github.com/jcarver/rentroll/internal/db"
)

func testRepo(t *testing.T) (*Repository, int64) {
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

	res, err := d.Exec("INSERT INTO properties (name, street) VALUES (?, ?)", "P", "1 St")
	if err != nil {
		t.Fatalf("insert property: %v", err)
	}
	propID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("insert id: %v", err)
	}

	return NewRepository(d), propID
}

func TestInsertAndGet(t *testing.T) {
	repo, propID := testRepo(t)

	saved, err := repo.Insert(&Mortgage{
		PropertyID:     propID,
		Lender:         "First Bank",
		OriginalAmount: "250000.00",
		CurrentBalance: "238000.00",
		InterestRate:   "6.25",
		MonthlyPayment: "1850.00",
		Principal:      "520.00",
		Interest:       "1240.00",
		Escrow:         "90.00",
		StartDate:      "2024-03-01",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.TermYears != 30 {
		t.Errorf("term = %d, want 30", saved.TermYears)
	}

	got, err := repo.GetByID(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Lender != "First Bank" {
		t.Errorf("lender = %q, want %q", got.Lender, "First Bank")
	}
	if got.CurrentBalance != "238000.00" {
		t.Errorf("balance = %q, want %q", got.CurrentBalance, "238000.00")
	}
}

func TestInsertValidation(t *testing.T) {
	repo, propID := testRepo(t)

	tests := []struct {
		name     string
		mortgage *Mortgage
	}{
		{"missing property", &Mortgage{Lender: "Bank"}},
		{"missing lender", &Mortgage{PropertyID: propID}},
		{"bad start date", &Mortgage{PropertyID: propID, Lender: "Bank", StartDate: "03/01/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Insert(tt.mortgage); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUpdateBalance(t *testing.T) {
	repo, propID := testRepo(t)

	saved, err := repo.Insert(&Mortgage{PropertyID: propID, Lender: "First Bank", CurrentBalance: "100000"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	saved.CurrentBalance = "99480.00"
	updated, err := repo.Update(saved)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CurrentBalance != "99480.00" {
		t.Errorf("balance = %q, want %q", updated.CurrentBalance, "99480.00")
	}
}

func TestListByProperty(t *testing.T) {
	repo, propID := testRepo(t)

	if _, err := repo.Insert(&Mortgage{PropertyID: propID, Lender: "First Bank"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	list, err := repo.List(propID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d mortgages, want 1", len(list))
	}

	none, err := repo.List(propID + 1)
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d mortgages for other property, want 0", len(none))
	}
}

func TestDelete(t *testing.T) {
	repo, propID := testRepo(t)

	saved, err := repo.Insert(&Mortgage{PropertyID: propID, Lender: "First Bank"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.Delete(saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(saved.ID); err == nil {
		t.Error("expected not found on second delete")
	}
}
