// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lambdatrip/internal/modules/analysis"
	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/modules/history"
)

type errorResponse struct {
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg, Timestamp: time.Now().UTC()})
}

func writeStageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, enrichment.ErrNoImage),
		errors.Is(err, enrichment.ErrNoLandmark),
		errors.Is(err, analysis.ErrNoAnalysisData):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, enrichment.ErrVisionUnavailable):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeHistoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, history.ErrInvalidPoint), errors.Is(err, history.ErrInvalidRadius):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, history.ErrUnavailable):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
