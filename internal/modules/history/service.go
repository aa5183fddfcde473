package history

import (
	"context"
	"errors"
	"strings"

	"lambdatrip/internal/logger"
	"lambdatrip/internal/modules/analysis"
	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/types"
)

// Service indexes stage outputs. Recording is best-effort and never fails a stage.
type Service struct {
	store *Store
	log   *logger.Logger
}

func NewService(store *Store, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: store, log: log.With("component", "history.Service")}
}

// RecordEnrichment indexes a stage-1 record stored under key.
func (s *Service) RecordEnrichment(ctx context.Context, rec *enrichment.Record, key string) {
	if rec == nil {
		return
	}
	s.record(ctx, &Run{
		Stage:     StageEnrich,
		Landmark:  rec.Landmark.Name,
		City:      rec.Location.City,
		Country:   rec.Location.Country,
		Point:     rec.Landmark.Coordinates,
		ImageURL:  rec.ImageURL,
		BlobKey:   key,
		CreatedAt: rec.CreatedAt,
	})
}

// RecordReport indexes a stage-2 report stored under key.
func (s *Service) RecordReport(ctx context.Context, rep *analysis.Report, key string, degraded bool) {
	if rep == nil {
		return
	}
	s.record(ctx, &Run{
		Stage:     StageAnalyze,
		Landmark:  rep.Landmark.Name,
		City:      rep.Location.City,
		Country:   rep.Location.Country,
		Point:     rep.Landmark.Coordinates,
		ImageURL:  rep.ImageURL,
		BlobKey:   key,
		Degraded:  degraded,
		CreatedAt: rep.Timestamp,
	})
}

func (s *Service) record(ctx context.Context, r *Run) {
	if err := s.store.InsertRun(ctx, r); reportable(err) {
		s.log.Warn("failed to index run", "stage", r.Stage, "landmark", r.Landmark, "error", err)
	}
	if !sightable(r) {
		return
	}
	if err := s.store.AddSighting(ctx, r.Landmark, *r.Point); reportable(err) {
		s.log.Warn("failed to index sighting", "landmark", r.Landmark, "error", err)
	}
}

// reportable is true for failures other than a missing backend.
func reportable(err error) bool {
	return err != nil && !errors.Is(err, ErrUnavailable)
}

// sightable excludes label-only stubs and points outside the GEO range.
func sightable(r *Run) bool {
	if r.Point == nil || !r.Point.Valid() || strings.TrimSpace(r.Landmark) == "" {
		return false
	}
	// Redis GEO rejects latitudes beyond +-85.05112878.
	if r.Point.Lat > 85.05112878 || r.Point.Lat < -85.05112878 {
		return false
	}
	return r.Landmark != "Unknown Landmark"
}

// Recent returns the newest runs first. limit is clamped to [1, MaxRecentLimit].
func (s *Service) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return s.store.RecentRuns(ctx, limit)
}

// Nearby returns landmarks seen within radiusKm of p, closest first.
func (s *Service) Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]Sighting, error) {
	if !p.Valid() {
		return nil, ErrInvalidPoint
	}
	if radiusKm <= 0 || radiusKm > MaxRadiusKm {
		return nil, ErrInvalidRadius
	}
	return s.store.NearbySightings(ctx, p, radiusKm)
}
