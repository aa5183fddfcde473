// README: Landmark module models (vision candidates, labels, resolved location).
package landmark

import (
	"context"
	"errors"

	"lambdatrip/internal/types"
)

var ErrNoLandmark = errors.New("no landmarks detected in the image")

// Resolution sources.
const (
	SourceTable   = "table"
	SourceGeocode = "geocode"
	SourceLabels  = "labels"
)

// Candidate is one point-of-interest guess returned by vision.
type Candidate struct {
	Name        string       `json:"name"`
	Confidence  float64      `json:"confidence"`
	Description string       `json:"description"`
	Coordinates *types.Point `json:"coordinates,omitempty"`
}

// Label is a generic image label returned alongside (or instead of) landmarks.
type Label struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// Detection is the normalized vision output. Candidates keep provider order.
type Detection struct {
	Candidates []Candidate `json:"candidates"`
	Labels     []Label     `json:"labels,omitempty"`
}

// Location is the resolved city/country for a candidate. Nil fields are unknown.
type Location struct {
	City        *string `json:"city"`
	Country     *string `json:"country"`
	CountryCode *string `json:"country_code,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Resolution pairs the chosen candidate with its location.
type Resolution struct {
	Candidate Candidate `json:"candidate"`
	Location  Location  `json:"location"`
	Source    string    `json:"source"`
}

// GeocodeHit carries the structured address of the top geocoding match.
// Empty strings mean the provider omitted the field.
type GeocodeHit struct {
	City         string
	Town         string
	Village      string
	Hamlet       string
	Municipality string
	Suburb       string
	County       string
	Country      string
	CountryCode  string
	DisplayName  string
	Lat          *float64
	Lng          *float64
}

// VisionProvider detects landmarks and labels in an image reference.
type VisionProvider interface {
	DetectLandmarks(ctx context.Context, imageURL string) (*Detection, error)
}

// GeocodingProvider returns the best free-text match, or nil when there is none.
type GeocodingProvider interface {
	Search(ctx context.Context, query string) (*GeocodeHit, error)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
