// README: Landmark resolver; picks the top vision candidate and resolves it to a city/country.
package landmark

import (
	"context"
	"strings"
	"time"

	"lambdatrip/internal/logger"
)

const (
	SourceNone = "none"

	labelStubName        = "Unknown Landmark"
	labelStubConfidence  = 0.5
	labelStubDescription = "Location detected from image labels"

	defaultGeocodeTimeout = 15 * time.Second
)

type Resolver struct {
	geocoder GeocodingProvider
	log      *logger.Logger
	timeout  time.Duration
}

// NewResolver builds a Resolver. geocoder may be nil, in which case table misses stay unresolved.
func NewResolver(geocoder GeocodingProvider, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{geocoder: geocoder, log: log.With("component", "landmark.Resolver"), timeout: defaultGeocodeTimeout}
}

// WithTimeout overrides the per-call geocoding timeout.
func (r *Resolver) WithTimeout(d time.Duration) *Resolver {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// Resolve picks the first candidate and resolves its location. Lower-ranked
// candidates are never consulted. With no candidates, a place-like label yields
// a description-only stub; otherwise ErrNoLandmark.
func (r *Resolver) Resolve(ctx context.Context, det *Detection) (*Resolution, error) {
	if det == nil {
		return nil, ErrNoLandmark
	}
	if len(det.Candidates) == 0 {
		desc, ok := placeLikeLabel(det.Labels)
		if !ok {
			return nil, ErrNoLandmark
		}
		return &Resolution{
			Candidate: Candidate{
				Name:        labelStubName,
				Confidence:  labelStubConfidence,
				Description: labelStubDescription,
			},
			Location: Location{Description: strPtr(desc)},
			Source:   SourceLabels,
		}, nil
	}

	top := det.Candidates[0]
	if k, ok := lookupKnown(top.Name); ok {
		return &Resolution{
			Candidate: top,
			Location:  Location{City: strPtr(k.city), Country: strPtr(k.country)},
			Source:    SourceTable,
		}, nil
	}

	loc, ok := r.geocode(ctx, top.Name)
	source := SourceGeocode
	if !ok {
		source = SourceNone
	}
	return &Resolution{Candidate: top, Location: loc, Source: source}, nil
}

// geocode never fails: provider errors and empty results leave every field nil.
func (r *Resolver) geocode(ctx context.Context, name string) (Location, bool) {
	if r.geocoder == nil || strings.TrimSpace(name) == "" {
		return Location{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	hit, err := r.geocoder.Search(ctx, name)
	if err != nil {
		r.log.Warn("geocoding failed", "query", name, "error", err)
		return Location{}, false
	}
	if hit == nil {
		r.log.Info("geocoding returned no results", "query", name)
		return Location{}, false
	}
	return LocationFromHit(hit), true
}

// LocationFromHit reads city/country from the structured address, then fills
// gaps from the comma-separated display name counted from the end.
func LocationFromHit(hit *GeocodeHit) Location {
	city := firstNonEmpty(hit.City, hit.Town, hit.Village, hit.Hamlet, hit.Municipality, hit.Suburb, hit.County)
	country := strings.TrimSpace(hit.Country)
	code := strings.ToUpper(strings.TrimSpace(hit.CountryCode))

	if (city == "" || country == "") && hit.DisplayName != "" {
		var parts []string
		for _, p := range strings.Split(hit.DisplayName, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			if country == "" {
				country = parts[len(parts)-1]
			}
			if city == "" && len(parts) >= 3 {
				if len(parts) >= 4 {
					city = parts[len(parts)-4]
				} else {
					city = parts[len(parts)-3]
				}
			}
		}
	}
	return Location{City: strPtr(city), Country: strPtr(country), CountryCode: strPtr(code)}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
