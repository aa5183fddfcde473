// README: End-to-end test across both stages with simulated providers.
package analysis

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/modules/landmark"
	"lambdatrip/internal/types"
)

type stubVision struct{}

func (stubVision) DetectLandmarks(ctx context.Context, imageURL string) (*landmark.Detection, error) {
	return &landmark.Detection{Candidates: []landmark.Candidate{{
		Name:        "Eiffel Tower",
		Confidence:  0.95,
		Description: "Eiffel Tower",
		Coordinates: &types.Point{Lat: 48.8584, Lng: 2.2945},
	}}}, nil
}

type failingWeather struct{}

func (failingWeather) Current(ctx context.Context, p types.Point) (*enrichment.WeatherSnapshot, error) {
	return nil, errors.New("weather upstream 500")
}

type franceCountry struct{}

func (franceCountry) ByName(ctx context.Context, name string) (*enrichment.CountryProfile, error) {
	return &enrichment.CountryProfile{
		Name:       enrichment.CountryName{Common: "France", Official: "French Republic"},
		Capital:    []string{"Paris"},
		Currencies: []enrichment.Currency{{Code: "EUR", Name: "Euro", Symbol: "€"}},
		Languages:  enrichment.LanguageList{{Code: "fra", Name: "French"}},
	}, nil
}

type normalAdvisory struct{}

func (normalAdvisory) ByCode(ctx context.Context, code string) (*enrichment.TravelAdvisory, error) {
	return &enrichment.TravelAdvisory{Level: ptr("Exercise normal precautions"), Summary: "Normal"}, nil
}

type unresolvedGeocoder struct{}

func (unresolvedGeocoder) Search(ctx context.Context, query string) (*landmark.GeocodeHit, error) {
	return nil, errors.New("geocoding must not be called for table landmarks")
}

func TestPipeline_EiffelTowerWithWeatherOutageAndMalformedReply(t *testing.T) {
	ctx := context.Background()

	enrich := enrichment.NewService(
		stubVision{},
		landmark.NewResolver(unresolvedGeocoder{}, nil),
		enrichment.NewAggregator(enrichment.Providers{
			Weather:  failingWeather{},
			Country:  franceCountry{},
			Advisory: normalAdvisory{},
		}, time.Second, nil),
		nil,
	)

	rec, err := enrich.Enrich(ctx, "https://example.com/eiffel.jpg")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if *rec.Location.City != "Paris" || *rec.Location.Country != "France" {
		t.Fatalf("unexpected location %+v", rec.Location)
	}
	if rec.Weather != nil {
		t.Fatalf("expected nil weather, got %+v", rec.Weather)
	}
	if rec.CountryInfo == nil || rec.CountryInfo.Name.Common != "France" {
		t.Fatalf("expected country info, got %+v", rec.CountryInfo)
	}
	if rec.TravelAdvisory == nil || *rec.TravelAdvisory.Level != "Exercise normal precautions" {
		t.Fatalf("expected advisory, got %+v", rec.TravelAdvisory)
	}

	malformed := "Sure! {summary: 'The tower', insights: [oops"
	res, err := NewService(&fakeGenerator{reply: malformed}, nil).Analyze(ctx, rec)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !reflect.DeepEqual(res.Analysis, Fallback(malformed)) {
		t.Fatalf("expected fallback analysis, got %+v", res.Analysis)
	}
	if len(res.Recommendations.PackingTips) != 0 {
		t.Fatalf("expected no packing tips without weather, got %v", res.Recommendations.PackingTips)
	}
	if len(res.Recommendations.CulturalNotes) != 2 {
		t.Fatalf("expected currency and language notes, got %v", res.Recommendations.CulturalNotes)
	}

	report := NewReport(rec, res, time.Unix(0, 0).UTC())
	if report.Weather != nil || report.CountryInfo == nil || report.TravelAdvisory == nil || report.Analysis.TravelAdvisory == nil {
		t.Fatalf("report must keep both advisories and null weather: %+v", report)
	}
}
