// README: Landmark and history handler tests over in-memory storage and fake providers.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lambdatrip/internal/http/handlers"
	"lambdatrip/internal/modules/analysis"
	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/modules/landmark"
	"lambdatrip/internal/storage"
	"lambdatrip/internal/types"
)

type stubVision struct {
	det *landmark.Detection
	err error
}

func (s stubVision) DetectLandmarks(context.Context, string) (*landmark.Detection, error) {
	return s.det, s.err
}

type stubCountry struct{}

func (stubCountry) ByName(_ context.Context, name string) (*enrichment.CountryProfile, error) {
	return &enrichment.CountryProfile{Name: enrichment.CountryName{Common: name}}, nil
}

type stubGenerator struct{ reply string }

func (g stubGenerator) Complete(context.Context, string) (string, error) { return g.reply, nil }

func bigBen() *landmark.Detection {
	return &landmark.Detection{Candidates: []landmark.Candidate{{
		Name:        "Big Ben",
		Confidence:  0.97,
		Description: "Big Ben",
		Coordinates: &types.Point{Lat: 51.5007, Lng: -0.1246},
	}}}
}

type testEnv struct {
	router *gin.Engine
	store  *storage.MemoryStore
}

func newTestEnv(t *testing.T, vision landmark.VisionProvider, mutate func(*handlers.LandmarkDeps)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	deps := handlers.LandmarkDeps{
		Enrichment: enrichment.NewService(
			vision,
			landmark.NewResolver(nil, nil),
			enrichment.NewAggregator(enrichment.Providers{Country: stubCountry{}}, time.Second, nil),
			nil,
		),
		Analysis: analysis.NewService(stubGenerator{reply: `{"summary": "Clock tower", "best_visit_time": "Evening"}`}, nil),
		Store:    store,
		Validate: func(context.Context, string) bool { return true },
	}
	if mutate != nil {
		mutate(&deps)
	}

	h := handlers.NewLandmarkHandler(deps)
	hist := handlers.NewHistoryHandler(nil)
	r := gin.New()
	r.POST("/api/landmarks/enrich", h.Enrich)
	r.POST("/api/landmarks/analyze", h.Analyze)
	r.GET("/api/landmarks/history", hist.Recent)
	r.GET("/api/landmarks/nearby", hist.Nearby)
	return &testEnv{router: r, store: store}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, w.Body.String())
	}
	if body.Error == "" || body.Timestamp.IsZero() {
		t.Fatalf("error envelope must carry error and timestamp: %s", w.Body.String())
	}
	return body
}

func TestEnrich_StoresRecord(t *testing.T) {
	env := newTestEnv(t, stubVision{det: bigBen()}, nil)

	w := env.do(http.MethodPost, "/api/landmarks/enrich", `{"image_url": " https://example.com/bigben.jpg "}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		LandmarkDetected string             `json:"landmark_detected"`
		AnalysisData     *enrichment.Record `json:"analysis_data"`
		S3Key            string             `json:"s3_key"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.LandmarkDetected != "Big Ben" || resp.AnalysisData == nil {
		t.Fatalf("unexpected response %+v", resp)
	}
	if !strings.HasPrefix(resp.S3Key, "landmark_analysis/") || !strings.HasSuffix(resp.S3Key, "_analysis.json") {
		t.Fatalf("unexpected key %q", resp.S3Key)
	}
	if resp.AnalysisData.CountryInfo == nil || resp.AnalysisData.CountryInfo.Name.Common != "United Kingdom" {
		t.Fatalf("expected country info, got %+v", resp.AnalysisData.CountryInfo)
	}

	var stored enrichment.Record
	if err := env.store.GetJSON(context.Background(), resp.S3Key, &stored); err != nil {
		t.Fatalf("record not stored: %v", err)
	}
	if stored.ImageURL != "https://example.com/bigben.jpg" {
		t.Fatalf("unexpected stored image url %q", stored.ImageURL)
	}
}

func TestEnrich_SkipRecordWrites(t *testing.T) {
	env := newTestEnv(t, stubVision{det: bigBen()}, func(d *handlers.LandmarkDeps) { d.SkipRecordWrites = true })
	w := env.do(http.MethodPost, "/api/landmarks/enrich", `{"image_url": "https://example.com/bigben.jpg"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if keys := env.store.Keys(); len(keys) != 0 {
		t.Fatalf("expected no writes, got %v", keys)
	}
}

func TestEnrich_Errors(t *testing.T) {
	cases := []struct {
		name   string
		vision landmark.VisionProvider
		mutate func(*handlers.LandmarkDeps)
		path   string
		body   string
		status int
	}{
		{"invalid json", stubVision{det: bigBen()}, nil, "/api/landmarks/enrich", `{`, http.StatusBadRequest},
		{"missing image", stubVision{det: bigBen()}, nil, "/api/landmarks/enrich", `{"image_url": "  "}`, http.StatusBadRequest},
		{"no landmark", stubVision{det: &landmark.Detection{}}, nil, "/api/landmarks/enrich", `{"image_url": "https://x/y.jpg"}`, http.StatusBadRequest},
		{"vision down", stubVision{err: errors.New("rpc unavailable")}, nil, "/api/landmarks/enrich", `{"image_url": "https://x/y.jpg"}`, http.StatusInternalServerError},
		{"vision unconfigured", nil, nil, "/api/landmarks/enrich", `{"image_url": "https://x/y.jpg"}`, http.StatusServiceUnavailable},
		{
			"unreachable image",
			stubVision{det: bigBen()},
			func(d *handlers.LandmarkDeps) { d.Validate = func(context.Context, string) bool { return false } },
			"/api/landmarks/enrich?validate=true",
			`{"image_url": "https://x/y.jpg"}`,
			http.StatusBadRequest,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, tc.vision, tc.mutate)
			w := env.do(http.MethodPost, tc.path, tc.body)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			decodeError(t, w)
		})
	}
}

func TestAnalyze_InlineRecord(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	body := `{"analysis_data": {"landmark": {"name": "Big Ben", "confidence": 0.9}, "location": {"city": "London", "country": "United Kingdom"}, "image_url": "https://x/bigben.jpg"}}`

	w := env.do(http.MethodPost, "/api/landmarks/analyze", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		LandmarkName    string                     `json:"landmark_name"`
		Analysis        analysis.TravelAnalysis    `json:"analysis"`
		Recommendations analysis.RecommendationSet `json:"recommendations"`
		S3Key           string                     `json:"s3_key"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.LandmarkName != "Big Ben" || resp.Analysis.Summary != "Clock tower" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(resp.Recommendations.TimingRecommendations) != 1 || resp.Recommendations.PackingTips == nil {
		t.Fatalf("unexpected recommendations %+v", resp.Recommendations)
	}

	var report analysis.Report
	if err := env.store.GetJSON(context.Background(), resp.S3Key, &report); err != nil {
		t.Fatalf("final report not stored: %v", err)
	}
	if report.ImageURL != "https://x/bigben.jpg" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestAnalyze_ByKey(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	key := storage.AnalysisKey(time.Now())
	rec := &enrichment.Record{Landmark: landmark.Candidate{Name: "Louvre Museum"}}
	if err := env.store.PutJSON(context.Background(), key, rec); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(map[string]string{"s3_key": key})
	w := env.do(http.MethodPost, "/api/landmarks/analyze", buf.String())
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"landmark_name":"Louvre Museum"`) {
		t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyze_Errors(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.do(http.MethodPost, "/api/landmarks/analyze", `{"s3_key": "landmark_analysis/missing_analysis.json"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := decodeError(t, w); !strings.HasPrefix(body.Error, "Failed to retrieve analysis data: ") {
		t.Fatalf("unexpected error %q", body.Error)
	}

	for _, b := range []string{`{}`, `{"analysis_data": {}}`, `{"analysis_data": null, "s3_key": ""}`} {
		w := env.do(http.MethodPost, "/api/landmarks/analyze", b)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", b, w.Code)
		}
		if body := decodeError(t, w); body.Error != "No analysis data provided" {
			t.Fatalf("%s: unexpected error %q", b, body.Error)
		}
	}

	w = env.do(http.MethodPost, "/api/landmarks/analyze", `{"analysis_data": {"landmark": "Big Ben"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed record, got %d", w.Code)
	}
}

func TestHistory_Unavailable(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	if w := env.do(http.MethodGet, "/api/landmarks/history", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/landmarks/history?limit=abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/landmarks/nearby?lat=abc&lng=2", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/landmarks/nearby?lat=48.8&lng=2.3", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
