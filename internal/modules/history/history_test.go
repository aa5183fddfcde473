// README: History module tests (validation without backends, Postgres and Redis GEO when configured).
package history

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"lambdatrip/internal/modules/analysis"
	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/modules/landmark"
	"lambdatrip/internal/types"
)

func strptr(s string) *string { return &s }

func TestNearbyValidation(t *testing.T) {
	svc := NewService(NewStore(nil, nil), nil)
	ctx := context.Background()

	if _, err := svc.Nearby(ctx, types.Point{Lat: 91, Lng: 0}, 5); !errors.Is(err, ErrInvalidPoint) {
		t.Fatalf("expected ErrInvalidPoint, got %v", err)
	}
	for _, r := range []float64{0, -1, MaxRadiusKm + 1} {
		if _, err := svc.Nearby(ctx, types.Point{Lat: 48.85, Lng: 2.29}, r); !errors.Is(err, ErrInvalidRadius) {
			t.Fatalf("radius %v: expected ErrInvalidRadius, got %v", r, err)
		}
	}
	if _, err := svc.Nearby(ctx, types.Point{Lat: 48.85, Lng: 2.29}, 5); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestRecordWithoutBackendsIsSilent(t *testing.T) {
	svc := NewService(NewStore(nil, nil), nil)
	svc.RecordEnrichment(context.Background(), &enrichment.Record{Landmark: landmark.Candidate{Name: "Big Ben"}}, "k")
	svc.RecordReport(context.Background(), nil, "k", false)
	if _, err := svc.Recent(context.Background(), 5); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestSightable(t *testing.T) {
	paris := &types.Point{Lat: 48.8584, Lng: 2.2945}
	cases := []struct {
		name string
		run  Run
		want bool
	}{
		{"located landmark", Run{Landmark: "Eiffel Tower", Point: paris}, true},
		{"no coordinates", Run{Landmark: "Eiffel Tower"}, false},
		{"label stub", Run{Landmark: "Unknown Landmark", Point: paris}, false},
		{"polar", Run{Landmark: "Pole", Point: &types.Point{Lat: 89, Lng: 0}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sightable(&tc.run); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRecordAndRecent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewStore(db, nil), nil)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	rec := &enrichment.Record{
		Landmark:  landmark.Candidate{Name: "Colosseum", Coordinates: &types.Point{Lat: 41.89, Lng: 12.49}},
		Location:  landmark.Location{City: strptr("Rome"), Country: strptr("Italy")},
		ImageURL:  "https://example.com/colosseum.jpg",
		CreatedAt: base,
	}
	svc.RecordEnrichment(ctx, rec, "landmark_analysis/a_analysis.json")
	rep := analysis.Report{Landmark: rec.Landmark, Location: rec.Location, Timestamp: base.Add(time.Second)}
	svc.RecordReport(ctx, &rep, "landmark_analysis/a_final.json", true)

	runs, err := svc.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Stage != StageAnalyze || !runs[0].Degraded || runs[0].BlobKey != "landmark_analysis/a_final.json" {
		t.Fatalf("unexpected newest run %+v", runs[0])
	}
	if runs[1].City == nil || *runs[1].City != "Rome" || runs[1].Point == nil {
		t.Fatalf("unexpected enrich run %+v", runs[1])
	}
}

func TestNearbySightings(t *testing.T) {
	addr := os.Getenv("LAMBDATRIP_REDIS_ADDR")
	if addr == "" {
		t.Skip("LAMBDATRIP_REDIS_ADDR not set; skipping Redis-backed tests")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { rdb.Close() })
	ctx := context.Background()
	if err := rdb.Del(ctx, sightingGeoKey).Err(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	svc := NewService(NewStore(nil, rdb), nil)
	for name, p := range map[string]types.Point{
		"Eiffel Tower":  {Lat: 48.8584, Lng: 2.2945},
		"Louvre Museum": {Lat: 48.8606, Lng: 2.3376},
		"Big Ben":       {Lat: 51.5007, Lng: -0.1246},
	} {
		p := p
		svc.RecordEnrichment(ctx, &enrichment.Record{Landmark: landmark.Candidate{Name: name, Coordinates: &p}}, "")
	}

	got, err := svc.Nearby(ctx, types.Point{Lat: 48.8584, Lng: 2.2945}, 10)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 2 || got[0].Landmark != "Eiffel Tower" || got[1].Landmark != "Louvre Museum" {
		t.Fatalf("unexpected sightings %+v", got)
	}
	if got[1].DistanceKm < 2 || got[1].DistanceKm > 5 {
		t.Fatalf("unexpected distance %v", got[1].DistanceKm)
	}
}

// setupTestDB skips the test when LAMBDATRIP_TEST_DSN is not set.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("LAMBDATRIP_TEST_DSN")
	if dsn == "" {
		t.Skip("LAMBDATRIP_TEST_DSN not set; skipping DB-backed tests")
	}
	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE landmark_runs"); err != nil {
		t.Fatalf("truncate landmark_runs: %v", err)
	}
	return db
}

func applyMigrations(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(root, "migrations", "0001_landmark_runs.sql"))
	if err != nil {
		return err
	}
	for _, stmt := range splitSQL(stripSQLComments(string(content))) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	var out []string
	for _, p := range strings.Split(input, ";") {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func TestReportable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unavailable", ErrUnavailable, false},
		{"wrapped unavailable", fmt.Errorf("insert run: %w", ErrUnavailable), false},
		{"other", errors.New("connection reset"), true},
	}
	for _, tc := range cases {
		if got := reportable(tc.err); got != tc.want {
			t.Errorf("%s: reportable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
