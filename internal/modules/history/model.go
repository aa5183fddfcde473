// README: Run history models (indexed stage outputs and landmark sightings).
package history

import (
	"errors"
	"time"

	"lambdatrip/internal/types"
)

const (
	StageEnrich  = "enrich"
	StageAnalyze = "analyze"

	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
	MaxRadiusKm        = 500.0
)

var (
	ErrUnavailable   = errors.New("history store not configured")
	ErrInvalidRadius = errors.New("radius must be between 0 and 500 km")
	ErrInvalidPoint  = errors.New("invalid coordinates")
)

// Run is one indexed stage output. The full document lives under BlobKey.
type Run struct {
	ID        int64        `json:"id"`
	Stage     string       `json:"stage"`
	Landmark  string       `json:"landmark"`
	City      *string      `json:"city"`
	Country   *string      `json:"country"`
	Point     *types.Point `json:"coordinates,omitempty"`
	ImageURL  string       `json:"image_url"`
	BlobKey   string       `json:"s3_key"`
	Degraded  bool         `json:"degraded"`
	CreatedAt time.Time    `json:"created_at"`
}

// Sighting is a landmark position returned by a radius search.
type Sighting struct {
	Landmark   string      `json:"landmark"`
	Point      types.Point `json:"coordinates"`
	DistanceKm float64     `json:"distance_km"`
}
