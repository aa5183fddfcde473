// README: Landmark handlers (enrich and analyze stages, blob persistence).
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lambdatrip/internal/logger"
	"lambdatrip/internal/modules/analysis"
	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/modules/history"
	"lambdatrip/internal/storage"
)

// ImageValidator reports whether an image URL is reachable.
type ImageValidator func(ctx context.Context, imageURL string) bool

type LandmarkDeps struct {
	Enrichment *enrichment.Service
	Analysis   *analysis.Service
	// Store and History are optional.
	Store   storage.Store
	History *history.Service
	// SkipRecordWrites disables stage-1 blob writes (local environment).
	SkipRecordWrites bool
	Validate         ImageValidator
	Log              *logger.Logger
}

type LandmarkHandler struct {
	deps LandmarkDeps
	log  *logger.Logger
	now  func() time.Time
}

func NewLandmarkHandler(deps LandmarkDeps) *LandmarkHandler {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	if deps.Validate == nil {
		client := &http.Client{}
		deps.Validate = func(ctx context.Context, u string) bool {
			return enrichment.ValidateImageURL(ctx, client, u)
		}
	}
	return &LandmarkHandler{
		deps: deps,
		log:  log.With("component", "handlers.Landmark"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type enrichReq struct {
	ImageURL string `json:"image_url"`
}

type enrichResp struct {
	LandmarkDetected string             `json:"landmark_detected"`
	AnalysisData     *enrichment.Record `json:"analysis_data"`
	S3Key            string             `json:"s3_key"`
	Timestamp        time.Time          `json:"timestamp"`
}

// Enrich handles POST /api/landmarks/enrich.
func (h *LandmarkHandler) Enrich(c *gin.Context) {
	var req enrichReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.ImageURL = strings.TrimSpace(req.ImageURL)

	if req.ImageURL != "" && c.Query("validate") == "true" && !h.deps.Validate(c.Request.Context(), req.ImageURL) {
		writeError(c, http.StatusBadRequest, "image URL is not reachable")
		return
	}

	rec, err := h.deps.Enrichment.Enrich(c.Request.Context(), req.ImageURL)
	if err != nil {
		h.log.Warn("enrichment failed", "image_url", req.ImageURL, "error", err)
		writeStageError(c, err)
		return
	}

	now := h.now()
	key := storage.AnalysisKey(now)
	switch {
	case h.deps.SkipRecordWrites:
		h.log.Info("local environment, skipping record upload", "key", key)
	case h.deps.Store != nil:
		if err := h.deps.Store.PutJSON(c.Request.Context(), key, rec); err != nil {
			h.log.Error("store record failed", "key", key, "error", err)
			writeError(c, http.StatusInternalServerError, "internal error")
			return
		}
	}
	if h.deps.History != nil {
		h.deps.History.RecordEnrichment(c.Request.Context(), rec, key)
	}

	writeJSON(c, http.StatusOK, enrichResp{
		LandmarkDetected: rec.Landmark.Name,
		AnalysisData:     rec,
		S3Key:            key,
		Timestamp:        now,
	})
}

type analyzeReq struct {
	AnalysisData json.RawMessage `json:"analysis_data"`
	S3Key        string          `json:"s3_key"`
}

type analyzeResp struct {
	LandmarkName    string                     `json:"landmark_name"`
	Analysis        analysis.TravelAnalysis    `json:"analysis"`
	Recommendations analysis.RecommendationSet `json:"recommendations"`
	S3Key           string                     `json:"s3_key"`
	Timestamp       time.Time                  `json:"timestamp"`
}

// Analyze handles POST /api/landmarks/analyze. The record comes inline or by blob key.
func (h *LandmarkHandler) Analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	var (
		rec *enrichment.Record
		err error
	)
	if !isEmptyJSON(req.AnalysisData) {
		rec = &enrichment.Record{}
		if err := json.Unmarshal(req.AnalysisData, rec); err != nil {
			writeError(c, http.StatusBadRequest, "invalid analysis_data")
			return
		}
	} else if rec, err = h.fetchRecord(c.Request.Context(), req.S3Key); err != nil {
		h.log.Error("load record failed", "s3_key", req.S3Key, "error", err)
		writeError(c, http.StatusInternalServerError, "Failed to retrieve analysis data: "+err.Error())
		return
	}
	if rec == nil {
		writeError(c, http.StatusBadRequest, "No analysis data provided")
		return
	}

	res, err := h.deps.Analysis.Analyze(c.Request.Context(), rec)
	if err != nil {
		if errors.Is(err, analysis.ErrNoAnalysisData) {
			writeError(c, http.StatusBadRequest, "No analysis data provided")
			return
		}
		writeStageError(c, err)
		return
	}

	now := h.now()
	report := analysis.NewReport(rec, res, now)
	key := storage.FinalKey(now)
	if h.deps.Store != nil {
		if err := h.deps.Store.PutJSON(c.Request.Context(), key, report); err != nil {
			h.log.Error("store report failed", "key", key, "error", err)
			writeError(c, http.StatusInternalServerError, "internal error")
			return
		}
	}
	if h.deps.History != nil {
		h.deps.History.RecordReport(c.Request.Context(), &report, key, res.Degraded)
	}

	name := rec.Landmark.Name
	if name == "" {
		name = "Unknown"
	}
	writeJSON(c, http.StatusOK, analyzeResp{
		LandmarkName:    name,
		Analysis:        res.Analysis,
		Recommendations: res.Recommendations,
		S3Key:           key,
		Timestamp:       now,
	})
}

// fetchRecord returns nil, nil when no key is given.
func (h *LandmarkHandler) fetchRecord(ctx context.Context, key string) (*enrichment.Record, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	if h.deps.Store == nil {
		return nil, storage.ErrMissingConfig
	}
	var rec enrichment.Record
	if err := h.deps.Store.GetJSON(ctx, key, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null")) || bytes.Equal(t, []byte("{}"))
}
