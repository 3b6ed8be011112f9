package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed names/*.json places/*.json
var dataFiles embed.FS

// ReferenceData holds the reference data the seeder draws customers from
type ReferenceData struct {
	FirstNames  FirstNamesData
	LastNames   LastNamesData
	BirthPlaces BirthPlacesData

	// Lookup structures for weighted selection
	placesByWeight []weightedPlace
	placeByPlate   map[string]*BirthPlace
	totalWeight    int
}

// weightedPlace for weighted random selection
type weightedPlace struct {
	Place            *BirthPlace
	CumulativeWeight int
}

// FirstNamesData represents the structure of first_names.json
type FirstNamesData struct {
	Male   []string `json:"male"`
	Female []string `json:"female"`
}

// LastNamesData represents the structure of last_names.json
type LastNamesData struct {
	Names []string `json:"names"`
}

// BirthPlacesData represents the structure of birth_places.json
type BirthPlacesData struct {
	Places []BirthPlace `json:"places"`
}

// BirthPlace is a city customers can be born in. Weight is relative to
// the other places.
type BirthPlace struct {
	City   string `json:"city"`
	Plate  string `json:"plate"`
	Weight int    `json:"weight"`
}

var (
	instance *ReferenceData
	once     sync.Once
	loadErr  error
)

// Load loads all reference data from embedded files
// This is thread-safe and will only load data once
func Load() (*ReferenceData, error) {
	once.Do(func() {
		instance = &ReferenceData{}
		loadErr = instance.loadAll()
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

func (r *ReferenceData) loadAll() error {
	files := []struct {
		path   string
		target any
	}{
		{"names/first_names.json", &r.FirstNames},
		{"names/last_names.json", &r.LastNames},
		{"places/birth_places.json", &r.BirthPlaces},
	}

	for _, f := range files {
		raw, err := dataFiles.ReadFile(f.path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.path, err)
		}
		if err := json.Unmarshal(raw, f.target); err != nil {
			return fmt.Errorf("failed to parse %s: %w", f.path, err)
		}
	}

	if len(r.FirstNames.Male) == 0 || len(r.FirstNames.Female) == 0 || len(r.LastNames.Names) == 0 {
		return fmt.Errorf("reference names are empty")
	}

	r.buildLookups()
	if r.totalWeight == 0 {
		return fmt.Errorf("birth places carry no weight")
	}

	return nil
}

// buildLookups creates efficient lookup structures
func (r *ReferenceData) buildLookups() {
	r.placeByPlate = make(map[string]*BirthPlace, len(r.BirthPlaces.Places))
	r.placesByWeight = make([]weightedPlace, 0, len(r.BirthPlaces.Places))
	r.totalWeight = 0

	for i := range r.BirthPlaces.Places {
		p := &r.BirthPlaces.Places[i]
		r.placeByPlate[p.Plate] = p
		r.totalWeight += p.Weight
		r.placesByWeight = append(r.placesByWeight, weightedPlace{
			Place:            p,
			CumulativeWeight: r.totalWeight,
		})
	}
}

// GetFirstNames returns first names for a gender
func (r *ReferenceData) GetFirstNames(isMale bool) []string {
	if isMale {
		return r.FirstNames.Male
	}
	return r.FirstNames.Female
}

// GetLastNames returns all last names
func (r *ReferenceData) GetLastNames() []string {
	return r.LastNames.Names
}

// GetPlace returns a birth place by licence plate code
func (r *ReferenceData) GetPlace(plate string) (*BirthPlace, bool) {
	p, ok := r.placeByPlate[plate]
	return p, ok
}

// TotalWeight returns the sum of all place weights for weighted selection
func (r *ReferenceData) TotalWeight() int {
	return r.totalWeight
}

// PlaceByWeight returns the place for a weight value in [1, TotalWeight()]
func (r *ReferenceData) PlaceByWeight(weightValue int) *BirthPlace {
	for _, wp := range r.placesByWeight {
		if weightValue <= wp.CumulativeWeight {
			return wp.Place
		}
	}
	if len(r.placesByWeight) > 0 {
		return r.placesByWeight[len(r.placesByWeight)-1].Place
	}
	return nil
}
