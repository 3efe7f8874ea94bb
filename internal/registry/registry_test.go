package registry

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/wargadata-dev/warga-store/pkg/schema"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestAddInsertsNewestFirst(t *testing.T) {
	reg := NewRegistry(nil, nil)

	first, err := reg.Add("Budi Santoso", "3201012345678901", "Jl. Merdeka No. 1", "5000000")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, err := reg.Add("Ani Lestari", "3201012345678902", "Jl. Sudirman No. 2", "750000")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	records, _ := reg.Search("")
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != second.ID || records[1].ID != first.ID {
		t.Errorf("Expected newest-first order, got ids %d, %d", records[0].ID, records[1].ID)
	}
	if second.ID <= first.ID {
		t.Errorf("Expected strictly increasing ids, got %d then %d", first.ID, second.ID)
	}
}

func TestAddCanonicalizesFields(t *testing.T) {
	reg := NewRegistry(nil, nil)

	rec, err := reg.Add("  Budi Santoso  ", "3201012345678901", "  Jl. Merdeka No. 1  ", "5000.75")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if rec.Name != "Budi Santoso" {
		t.Errorf("Expected trimmed name, got %q", rec.Name)
	}
	if rec.Address != "Jl. Merdeka No. 1" {
		t.Errorf("Expected trimmed address, got %q", rec.Address)
	}
	if rec.Amount != 5000 {
		t.Errorf("Expected truncated amount 5000, got %d", rec.Amount)
	}
	if rec.CreatedAt == "" {
		t.Error("Expected a creation timestamp")
	}
}

func TestAddKeepsNaNAmount(t *testing.T) {
	reg := NewRegistry(nil, nil)

	rec, err := reg.Add("Budi Santoso", "3201012345678901", "", "not a number")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if rec.Amount != schema.AmountNaN {
		t.Errorf("Expected AmountNaN sentinel, got %d", rec.Amount)
	}
}

func TestSearchSemantics(t *testing.T) {
	reg := NewRegistry(nil, nil)
	reg.Add("Ali Baba", "3201012345678901", "Jl. Merdeka No. 1", "100")
	reg.Add("Budi Santoso", "3201019999999999", "Gang Mawar 3", "200")

	// Case-insensitive on name
	records, _ := reg.Search("ali")
	if len(records) != 1 || records[0].Name != "Ali Baba" {
		t.Errorf("Search(ali): expected [Ali Baba], got %v", records)
	}

	// Case-insensitive on address
	records, _ = reg.Search("MAWAR")
	if len(records) != 1 || records[0].Name != "Budi Santoso" {
		t.Errorf("Search(MAWAR): expected [Budi Santoso], got %v", records)
	}

	// Full national id as query
	records, _ = reg.Search("3201012345678901")
	if len(records) != 1 || records[0].NationalID != "3201012345678901" {
		t.Errorf("Search(full NIK): expected the matching record, got %v", records)
	}

	// National id substring
	records, _ = reg.Search("9999")
	if len(records) != 1 || records[0].Name != "Budi Santoso" {
		t.Errorf("Search(9999): expected [Budi Santoso], got %v", records)
	}

	// Blank query returns everything, newest-first
	records, _ = reg.Search("   ")
	if len(records) != 2 || records[0].Name != "Budi Santoso" {
		t.Errorf("Blank search: expected full registry newest-first, got %v", records)
	}

	// The query is not trimmed before matching
	records, _ = reg.Search("Baba ")
	if len(records) != 0 {
		t.Errorf("Search with trailing space: expected no match, got %v", records)
	}

	// No match at all
	records, _ = reg.Search("zzz")
	if len(records) != 0 {
		t.Errorf("Search(zzz): expected empty result, got %v", records)
	}
}

func TestSearchPreservesRegistryOrder(t *testing.T) {
	reg := NewRegistry(nil, nil)
	reg.Add("Ali Satu", "3201010000000001", "", "1")
	reg.Add("Ali Dua", "3201010000000002", "", "2")

	records, _ := reg.Search("ali")
	if len(records) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(records))
	}
	if records[0].Name != "Ali Dua" || records[1].Name != "Ali Satu" {
		t.Errorf("Expected registry order (newest-first), got %v, %v", records[0].Name, records[1].Name)
	}
}

func TestDeleteMissingIDIsNoOp(t *testing.T) {
	reg := NewRegistry(nil, nil)
	reg.Add("Budi Santoso", "3201012345678901", "", "100")

	if err := reg.Delete(12345); err != nil {
		t.Fatalf("Delete of missing id failed: %v", err)
	}
	if reg.Count() != 1 {
		t.Errorf("Expected registry unchanged, got %d records", reg.Count())
	}
}

func TestDeleteRemovesMatch(t *testing.T) {
	reg := NewRegistry(nil, nil)
	rec, _ := reg.Add("Budi Santoso", "3201012345678901", "", "100")
	reg.Add("Ani Lestari", "3201012345678902", "", "200")

	if err := reg.Delete(rec.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	records, _ := reg.List()
	if len(records) != 1 || records[0].Name != "Ani Lestari" {
		t.Errorf("Expected only Ani Lestari to remain, got %v", records)
	}
}

func TestDeleteAll(t *testing.T) {
	tmpDir := t.TempDir()
	p, err := NewPersistence(tmpDir, testLogger())
	if err != nil {
		t.Fatalf("NewPersistence failed: %v", err)
	}

	reg := NewRegistry(nil, p)
	reg.Add("Budi Santoso", "3201012345678901", "", "100")
	reg.Add("Ani Lestari", "3201012345678902", "", "200")

	if err := reg.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if records, _ := reg.Search(""); len(records) != 0 {
		t.Errorf("Expected empty registry, got %v", records)
	}

	// Persisted state is empty too
	if loaded := p.Load(); len(loaded) != 0 {
		t.Errorf("Expected empty persisted state, got %v", loaded)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	p, err := NewPersistence(tmpDir, testLogger())
	if err != nil {
		t.Fatalf("NewPersistence failed: %v", err)
	}

	reg := NewRegistry(nil, p)
	reg.Add("Budi Santoso", "3201012345678901", "Jl. Merdeka No. 1", "5000000")
	reg.Add("Ani Lestari", "3201012345678902", "Jl. Sudirman No. 2", "750000")
	want, _ := reg.List()

	// A fresh persister + registry over the same directory sees the
	// identical ordered sequence, field for field.
	p2, err := NewPersistence(tmpDir, testLogger())
	if err != nil {
		t.Fatalf("NewPersistence failed: %v", err)
	}
	reloaded := NewRegistry(p2.Load(), p2)
	got, _ := reloaded.List()

	if !reflect.DeepEqual(want, got) {
		t.Errorf("Round trip mismatch:\nsaved:  %+v\nloaded: %+v", want, got)
	}
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	p, err := NewPersistence(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("NewPersistence failed: %v", err)
	}
	if records := p.Load(); records != nil {
		t.Errorf("Expected nil for absent file, got %v", records)
	}
}

func TestLoadMalformedFileStartsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	p, err := NewPersistence(tmpDir, testLogger())
	if err != nil {
		t.Fatalf("NewPersistence failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "dataRegistry.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if records := p.Load(); records != nil {
		t.Errorf("Expected nil for malformed file, got %v", records)
	}
}

func TestIDsStayUniqueUnderFastInserts(t *testing.T) {
	reg := NewRegistry(nil, nil)

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		nik := "32010123456789" + string(rune('0'+i/10)) + string(rune('0'+i%10))
		rec, err := reg.Add("Budi Santoso", nik, "", "1")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if seen[rec.ID] {
			t.Fatalf("Duplicate id assigned: %d", rec.ID)
		}
		seen[rec.ID] = true
	}
}
