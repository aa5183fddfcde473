package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/modules/landmark"
)

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func eiffelRecord() *enrichment.Record {
	return &enrichment.Record{
		Landmark: landmark.Candidate{Name: "Eiffel Tower", Confidence: 0.93, Description: "Eiffel Tower"},
		Location: landmark.Location{City: ptr("Paris"), Country: ptr("France")},
		ImageURL: "https://example.com/eiffel.jpg",
	}
}

func TestAnalyze_NoData(t *testing.T) {
	svc := NewService(&fakeGenerator{}, nil)
	for _, rec := range []*enrichment.Record{nil, {}} {
		if _, err := svc.Analyze(context.Background(), rec); !errors.Is(err, ErrNoAnalysisData) {
			t.Fatalf("expected ErrNoAnalysisData, got %v", err)
		}
	}
}

func TestAnalyze_ParsedReply(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n" + cleanAnalysisJSON + "\n```"}
	res, err := NewService(gen, nil).Analyze(context.Background(), eiffelRecord())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Degraded {
		t.Fatal("expected parsed analysis")
	}
	if !strings.HasPrefix(string(res.Analysis.Summary), "The Eiffel Tower") {
		t.Fatalf("unexpected summary %q", res.Analysis.Summary)
	}
	if len(res.Recommendations.TimingRecommendations) != 1 || res.Recommendations.SafetyAdvice[0] != "Watch for pickpockets" {
		t.Fatalf("unexpected recommendations %+v", res.Recommendations)
	}
	if !strings.Contains(gen.prompt, "Eiffel Tower") || !strings.Contains(gen.prompt, "Paris, France") {
		t.Fatal("prompt must carry landmark and location")
	}
	if !strings.Contains(gen.prompt, "No weather data available") {
		t.Fatal("prompt must mark missing weather")
	}
}

func TestAnalyze_TransportErrorDegrades(t *testing.T) {
	res, err := NewService(&fakeGenerator{err: errors.New("quota exceeded")}, nil).Analyze(context.Background(), eiffelRecord())
	if err != nil {
		t.Fatalf("Analyze must not fail on generator error: %v", err)
	}
	if !res.Degraded || res.Analysis.Summary != technicalIssuesSummary {
		t.Fatalf("expected technical-issues fallback, got %+v", res.Analysis)
	}
	if res.Recommendations.TimingRecommendations[0] != "Check weather data for optimal timing" {
		t.Fatalf("expected fallback timing, got %v", res.Recommendations.TimingRecommendations)
	}
}

func TestAnalyze_NoGenerator(t *testing.T) {
	res, err := NewService(nil, nil).Analyze(context.Background(), eiffelRecord())
	if err != nil || !res.Degraded {
		t.Fatalf("expected degraded result, got %+v, %v", res, err)
	}
}
