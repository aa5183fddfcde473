// README: API gateway; holds stage services and builds the gin engine.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lambdatrip/internal/http/handlers"
	"lambdatrip/internal/http/middleware"
	"lambdatrip/internal/logger"
	"lambdatrip/internal/modules/analysis"
	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/modules/history"
	"lambdatrip/internal/storage"
)

type ServerDeps struct {
	Enrichment *enrichment.Service
	Analysis   *analysis.Service
	// Store and History are optional.
	Store            storage.Store
	History          *history.Service
	SkipRecordWrites bool
	Validate         handlers.ImageValidator
	Log              *logger.Logger
}

type Server struct {
	landmark *handlers.LandmarkHandler
	history  *handlers.HistoryHandler
	log      *logger.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		landmark: handlers.NewLandmarkHandler(handlers.LandmarkDeps{
			Enrichment:       deps.Enrichment,
			Analysis:         deps.Analysis,
			Store:            deps.Store,
			History:          deps.History,
			SkipRecordWrites: deps.SkipRecordWrites,
			Validate:         deps.Validate,
			Log:              log,
		}),
		history: handlers.NewHistoryHandler(deps.History),
		log:     log,
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(s.log), middleware.Logging(s.log), middleware.CORS())
	registerRoutes(r, s)
	return r
}
