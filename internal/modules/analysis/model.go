// README: Analysis module models (model-generated travel analysis, recommendations, final report).
package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/modules/landmark"
)

var ErrNoAnalysisData = errors.New("no analysis data provided")

// FlexText decodes any JSON scalar as text. Models sometimes answer
// "safety_rating": 4 instead of "4 - Safe".
type FlexText string

func (f *FlexText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexText(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*f = FlexText(buf.String())
	default:
		*f = FlexText(data)
	}
	return nil
}

// TextList decodes a list of scalars, or a single string, as a list of text.
type TextList []string

func (l *TextList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] != '[' {
		var one FlexText
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*l = TextList{string(one)}
		return nil
	}
	var items []FlexText
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("text list: %w", err)
	}
	out := make(TextList, 0, len(items))
	for _, it := range items {
		out = append(out, string(it))
	}
	*l = out
	return nil
}

// ModelAdvisory is the advisory written by the text model. It is kept apart
// from the fetched enrichment.TravelAdvisory.
type ModelAdvisory struct {
	Level           FlexText `json:"level"`
	Summary         FlexText `json:"summary"`
	Recommendations TextList `json:"recommendations"`
}

// UnmarshalJSON keeps a bare scalar as the level and a list as
// recommendations, so an oddly shaped advisory never rejects the reply.
func (m *ModelAdvisory) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) > 0 && data[0] == '{':
		type plain ModelAdvisory
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*m = ModelAdvisory(p)
	case len(data) > 0 && data[0] == '[':
		var recs TextList
		if err := json.Unmarshal(data, &recs); err != nil {
			return err
		}
		*m = ModelAdvisory{Recommendations: recs}
	default:
		var level FlexText
		if err := json.Unmarshal(data, &level); err != nil {
			return err
		}
		*m = ModelAdvisory{Level: level}
	}
	return nil
}

type TravelAnalysis struct {
	Summary            FlexText       `json:"summary"`
	Insights           TextList       `json:"insights"`
	TravelTips         TextList       `json:"travel_tips"`
	BestVisitTime      FlexText       `json:"best_visit_time"`
	SafetyRating       FlexText       `json:"safety_rating"`
	CulturalHighlights FlexText       `json:"cultural_highlights"`
	TravelAdvisory     *ModelAdvisory `json:"travel_advisory,omitempty"`
}

// RecommendationSet lists always encode as arrays, never null.
type RecommendationSet struct {
	PackingTips           []string `json:"packing_tips"`
	TimingRecommendations []string `json:"timing_recommendations"`
	CulturalNotes         []string `json:"cultural_notes"`
	SafetyAdvice          []string `json:"safety_advice"`
}

func newRecommendationSet() RecommendationSet {
	return RecommendationSet{
		PackingTips:           []string{},
		TimingRecommendations: []string{},
		CulturalNotes:         []string{},
		SafetyAdvice:          []string{},
	}
}

// Result is the output of the narrative stage.
type Result struct {
	Analysis        TravelAnalysis    `json:"analysis"`
	Recommendations RecommendationSet `json:"recommendations"`
	// Degraded is true when Analysis is the fixed fallback.
	Degraded bool `json:"degraded"`
}

// Report is the final persisted document: the enriched record plus the narrative result.
type Report struct {
	Landmark        landmark.Candidate          `json:"landmark"`
	Location        landmark.Location           `json:"location"`
	Weather         *enrichment.WeatherSnapshot `json:"weather"`
	CountryInfo     *enrichment.CountryProfile  `json:"country_info"`
	TravelAdvisory  *enrichment.TravelAdvisory  `json:"travel_advisory"`
	Analysis        TravelAnalysis              `json:"analysis"`
	Recommendations RecommendationSet           `json:"recommendations"`
	ImageURL        string                      `json:"image_url"`
	Timestamp       time.Time                   `json:"timestamp"`
}

func NewReport(rec *enrichment.Record, res *Result, at time.Time) Report {
	return Report{
		Landmark:        rec.Landmark,
		Location:        rec.Location,
		Weather:         rec.Weather,
		CountryInfo:     rec.CountryInfo,
		TravelAdvisory:  rec.TravelAdvisory,
		Analysis:        res.Analysis,
		Recommendations: res.Recommendations,
		ImageURL:        rec.ImageURL,
		Timestamp:       at,
	}
}

func isEmptyRecord(rec *enrichment.Record) bool {
	return rec == nil ||
		(strings.TrimSpace(rec.Landmark.Name) == "" && rec.ImageURL == "" &&
			rec.Weather == nil && rec.CountryInfo == nil && rec.TravelAdvisory == nil)
}
