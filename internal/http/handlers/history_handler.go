// README: History handlers (recent runs and nearby sightings).
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lambdatrip/internal/modules/history"
	"lambdatrip/internal/types"
)

const defaultNearbyRadiusKm = 5.0

type HistoryHandler struct {
	history *history.Service
}

func NewHistoryHandler(svc *history.Service) *HistoryHandler {
	return &HistoryHandler{history: svc}
}

// Recent handles GET /api/landmarks/history.
func (h *HistoryHandler) Recent(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	if h.history == nil {
		writeHistoryError(c, history.ErrUnavailable)
		return
	}
	runs, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		writeHistoryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"runs": runs})
}

// Nearby handles GET /api/landmarks/nearby?lat=..&lng=..&radius_km=..
func (h *HistoryHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radius := defaultNearbyRadiusKm
	if v := c.Query("radius_km"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid radius_km")
			return
		}
		radius = r
	}
	if h.history == nil {
		writeHistoryError(c, history.ErrUnavailable)
		return
	}
	found, err := h.history.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radius)
	if err != nil {
		writeHistoryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"landmarks": found})
}
