package data

import (
	"testing"
	"unicode/utf8"

	"github.com/willfong/bank-ledger/internal/config"
)

func TestLoadReferenceData(t *testing.T) {
	data, err := Load()
	if err != nil {
		t.Fatalf("Failed to load reference data: %v", err)
	}

	t.Run("GetFirstNames", func(t *testing.T) {
		if len(data.GetFirstNames(true)) == 0 {
			t.Error("Expected male names, got none")
		}
		if len(data.GetFirstNames(false)) == 0 {
			t.Error("Expected female names, got none")
		}
	})

	t.Run("GetLastNames", func(t *testing.T) {
		if len(data.GetLastNames()) == 0 {
			t.Error("Expected last names, got none")
		}
	})

	t.Run("GetPlace", func(t *testing.T) {
		p, ok := data.GetPlace("34")
		if !ok {
			t.Fatal("Failed to find plate 34")
		}
		if p.City != "İstanbul" {
			t.Errorf("Expected 'İstanbul', got '%s'", p.City)
		}
		if _, ok := data.GetPlace("99"); ok {
			t.Error("Expected no place for plate 99")
		}
	})

	t.Run("PlaceByWeight", func(t *testing.T) {
		totalWeight := data.TotalWeight()
		if totalWeight == 0 {
			t.Fatal("Expected non-zero total weight")
		}

		if p := data.PlaceByWeight(1); p == nil || p.City != "İstanbul" {
			t.Errorf("Expected İstanbul for weight 1, got %v", p)
		}
		if p := data.PlaceByWeight(totalWeight); p == nil {
			t.Error("Expected place for max weight")
		}
		if p := data.PlaceByWeight(totalWeight + 1); p == nil {
			t.Error("Expected fallback place past max weight")
		}
	})
}

func TestDataConsistency(t *testing.T) {
	data, err := Load()
	if err != nil {
		t.Fatalf("Failed to load reference data: %v", err)
	}

	fits := func(kind string, values []string, max int) {
		for _, v := range values {
			if v == "" || utf8.RuneCountInString(v) > max {
				t.Errorf("%s %q does not fit in %d characters", kind, v, max)
			}
		}
	}
	fits("first name", data.GetFirstNames(true), config.NameLength)
	fits("first name", data.GetFirstNames(false), config.NameLength)
	fits("last name", data.GetLastNames(), config.LastNameLength)

	plates := make(map[string]bool)
	for _, p := range data.BirthPlaces.Places {
		if p.Weight <= 0 {
			t.Errorf("Place %s has weight %d", p.City, p.Weight)
		}
		if plates[p.Plate] {
			t.Errorf("Plate %s is listed twice", p.Plate)
		}
		plates[p.Plate] = true
		fits("birth place", []string{p.City}, config.BirthPlaceLength)
	}
}
