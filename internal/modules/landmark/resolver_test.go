// README: Landmark resolver tests (top-candidate choice, table lookup, geocode fallback, label stub).
package landmark

import (
	"context"
	"errors"
	"testing"

	"lambdatrip/internal/types"
)

type fakeGeocoder struct {
	hit     *GeocodeHit
	err     error
	queries []string
}

func (f *fakeGeocoder) Search(ctx context.Context, query string) (*GeocodeHit, error) {
	f.queries = append(f.queries, query)
	return f.hit, f.err
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestResolve_TableHitSkipsGeocoding(t *testing.T) {
	geo := &fakeGeocoder{hit: &GeocodeHit{City: "Elsewhere", Country: "Nowhere"}}
	r := NewResolver(geo, nil)

	res, err := r.Resolve(context.Background(), &Detection{Candidates: []Candidate{
		{Name: "The EIFFEL Tower at night", Confidence: 0.91},
	}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if deref(res.Location.City) != "Paris" || deref(res.Location.Country) != "France" {
		t.Fatalf("expected Paris/France, got %s/%s", deref(res.Location.City), deref(res.Location.Country))
	}
	if res.Source != SourceTable {
		t.Fatalf("expected table source, got %s", res.Source)
	}
	if len(geo.queries) != 0 {
		t.Fatalf("expected no geocoding calls, got %v", geo.queries)
	}
}

func TestResolve_UsesTopCandidateOnly(t *testing.T) {
	geo := &fakeGeocoder{}
	r := NewResolver(geo, nil)

	res, err := r.Resolve(context.Background(), &Detection{Candidates: []Candidate{
		{Name: "Obscure Fountain", Confidence: 0.8},
		{Name: "Colosseum", Confidence: 0.6, Coordinates: &types.Point{Lat: 41.89, Lng: 12.49}},
	}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Candidate.Name != "Obscure Fountain" {
		t.Fatalf("expected top candidate, got %s", res.Candidate.Name)
	}
	if res.Location.City != nil || res.Location.Country != nil {
		t.Fatalf("expected unresolved location, got %+v", res.Location)
	}
	if len(geo.queries) != 1 || geo.queries[0] != "Obscure Fountain" {
		t.Fatalf("expected geocode of top name, got %v", geo.queries)
	}
}

func TestResolve_TableOrderWins(t *testing.T) {
	// "tower bridge" precedes "big ben" in the table.
	r := NewResolver(nil, nil)
	res, err := r.Resolve(context.Background(), &Detection{Candidates: []Candidate{{Name: "Big Ben and Tower Bridge"}}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if deref(res.Location.City) != "London" {
		t.Fatalf("expected London, got %s", deref(res.Location.City))
	}
}

func TestResolve_GeocodeStructuredAddress(t *testing.T) {
	geo := &fakeGeocoder{hit: &GeocodeHit{Town: "Hallstatt", Country: "Austria", CountryCode: "at"}}
	r := NewResolver(geo, nil)

	res, err := r.Resolve(context.Background(), &Detection{Candidates: []Candidate{{Name: "Hallstatt Skywalk"}}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if deref(res.Location.City) != "Hallstatt" || deref(res.Location.Country) != "Austria" || deref(res.Location.CountryCode) != "AT" {
		t.Fatalf("unexpected location %s/%s/%s", deref(res.Location.City), deref(res.Location.Country), deref(res.Location.CountryCode))
	}
	if res.Source != SourceGeocode {
		t.Fatalf("expected geocode source, got %s", res.Source)
	}
}

func TestResolve_GeocodeErrorLeavesNil(t *testing.T) {
	geo := &fakeGeocoder{err: errors.New("timeout")}
	r := NewResolver(geo, nil)

	res, err := r.Resolve(context.Background(), &Detection{Candidates: []Candidate{{Name: "Somewhere"}}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Location.City != nil || res.Location.Country != nil || res.Location.CountryCode != nil {
		t.Fatalf("expected nil fields, got %+v", res.Location)
	}
	if res.Source != SourceNone {
		t.Fatalf("expected none source, got %s", res.Source)
	}
}

func TestLocationFromHit_DisplayNameFallback(t *testing.T) {
	cases := []struct {
		name        string
		hit         GeocodeHit
		wantCity    string
		wantCountry string
	}{
		{
			name:        "four or more parts takes fourth from end",
			hit:         GeocodeHit{DisplayName: "Neuschwanstein, Schwangau, Ostallgäu, Bavaria, 87645, Germany"},
			wantCity:    "Ostallgäu",
			wantCountry: "Germany",
		},
		{
			name:        "three parts takes third from end",
			hit:         GeocodeHit{DisplayName: "Old Town, Region, Croatia"},
			wantCity:    "Old Town",
			wantCountry: "Croatia",
		},
		{
			name:        "two parts leaves city unknown",
			hit:         GeocodeHit{DisplayName: "Something ,  Peru"},
			wantCity:    "<nil>",
			wantCountry: "Peru",
		},
		{
			name:        "structured country kept",
			hit:         GeocodeHit{Country: "Chile", DisplayName: "A, B, C, D, Wrong"},
			wantCity:    "B",
			wantCountry: "Chile",
		},
		{
			name:        "empty parts dropped",
			hit:         GeocodeHit{DisplayName: "X,, Y, ,Z"},
			wantCity:    "X",
			wantCountry: "Z",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loc := LocationFromHit(&tc.hit)
			if deref(loc.City) != tc.wantCity || deref(loc.Country) != tc.wantCountry {
				t.Fatalf("got %s/%s, want %s/%s", deref(loc.City), deref(loc.Country), tc.wantCity, tc.wantCountry)
			}
		})
	}
}

func TestResolve_LabelStub(t *testing.T) {
	geo := &fakeGeocoder{}
	r := NewResolver(geo, nil)

	res, err := r.Resolve(context.Background(), &Detection{Labels: []Label{
		{Description: "Sky", Score: 0.9},
		{Description: "Gothic Cathedral Tower", Score: 0.8},
	}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Candidate.Name != "Unknown Landmark" || res.Candidate.Confidence != 0.5 {
		t.Fatalf("unexpected stub candidate %+v", res.Candidate)
	}
	if res.Location.City != nil || res.Location.Country != nil {
		t.Fatal("label stub must not carry city or country")
	}
	if deref(res.Location.Description) != "gothic cathedral tower" {
		t.Fatalf("unexpected description %s", deref(res.Location.Description))
	}
	if len(geo.queries) != 0 {
		t.Fatal("label stub must not be geocoded")
	}
}

func TestResolve_NoLandmark(t *testing.T) {
	r := NewResolver(nil, nil)
	for _, det := range []*Detection{nil, {}, {Labels: []Label{{Description: "Cat"}}}} {
		if _, err := r.Resolve(context.Background(), det); !errors.Is(err, ErrNoLandmark) {
			t.Fatalf("expected ErrNoLandmark, got %v", err)
		}
	}
}
