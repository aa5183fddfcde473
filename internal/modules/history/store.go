// README: History store backed by PostgreSQL (runs) and Redis GEO (sightings).
package history

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"lambdatrip/internal/types"
)

const sightingGeoKey = "history:landmarks"

// Store persists runs and sightings. Either backend may be nil.
type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

func (s *Store) InsertRun(ctx context.Context, r *Run) error {
	if s.db == nil {
		return ErrUnavailable
	}
	var lat, lng *float64
	if r.Point != nil {
		lat, lng = &r.Point.Lat, &r.Point.Lng
	}
	return s.db.QueryRow(ctx, `
		INSERT INTO landmark_runs (
			stage, landmark, city, country, lat, lng,
			image_url, blob_key, degraded, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		r.Stage, r.Landmark, r.City, r.Country, lat, lng,
		r.ImageURL, r.BlobKey, r.Degraded, r.CreatedAt,
	).Scan(&r.ID)
}

func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, stage, landmark, city, country, lat, lng,
		       image_url, blob_key, degraded, created_at
		FROM landmark_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		var city, country sql.NullString
		var lat, lng sql.NullFloat64
		if err := rows.Scan(
			&r.ID, &r.Stage, &r.Landmark, &city, &country, &lat, &lng,
			&r.ImageURL, &r.BlobKey, &r.Degraded, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		if city.Valid {
			r.City = &city.String
		}
		if country.Valid {
			r.Country = &country.String
		}
		if lat.Valid && lng.Valid {
			r.Point = &types.Point{Lat: lat.Float64, Lng: lng.Float64}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// AddSighting stores the landmark position; repeat sightings move the same member.
func (s *Store) AddSighting(ctx context.Context, name string, p types.Point) error {
	if s.redis == nil {
		return ErrUnavailable
	}
	return s.redis.GeoAdd(ctx, sightingGeoKey, &redis.GeoLocation{
		Name:      name,
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
}

func (s *Store) NearbySightings(ctx context.Context, p types.Point, radiusKm float64) ([]Sighting, error) {
	if s.redis == nil {
		return nil, ErrUnavailable
	}
	results, err := s.redis.GeoSearchLocation(ctx, sightingGeoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  p.Lng,
			Latitude:   p.Lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithCoord: true,
	}).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Sighting, len(results))
	for i, r := range results {
		at := types.Point{Lat: r.Latitude, Lng: r.Longitude}
		out[i] = Sighting{
			Landmark:   r.Name,
			Point:      at,
			DistanceKm: types.DistanceKm(p, at),
		}
	}
	return out, nil
}
