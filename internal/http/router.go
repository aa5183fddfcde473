// README: HTTP route registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func registerRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api/landmarks")
	api.POST("/enrich", s.landmark.Enrich)
	api.POST("/analyze", s.landmark.Analyze)
	api.GET("/history", s.history.Recent)
	api.GET("/nearby", s.history.Nearby)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}
