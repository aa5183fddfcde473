package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/types"
)

// GeocodeService resolves "city,country" pairs to coordinates with the Google Geocoding API.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a GeocodeService with the given API key.
// Extra client options (e.g. maps.WithBaseURL) are appended.
func NewGeocodeService(apiKey string, opts ...maps.ClientOption) (*GeocodeService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// Locate returns the coordinates of the first geocoding result for city,country.
func (s *GeocodeService) Locate(ctx context.Context, city, country string) (types.Point, error) {
	address := strings.TrimSpace(city) + "," + strings.TrimSpace(country)
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return types.Point{}, fmt.Errorf("%s: %w", address, enrichment.ErrLocationNotFound)
		}
		return types.Point{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("%s: %w", address, enrichment.ErrLocationNotFound)
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
