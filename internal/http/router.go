// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"

	"farerail/internal/http/handlers"
	"farerail/internal/http/middleware"
)

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(s.log), middleware.Recovery(s.log), middleware.CORS(s.corsOrigins))

	stationHandler := handlers.NewStationHandler(s.catalog)
	r.GET("/stations", stationHandler.List)
	r.GET("/lines", stationHandler.Lines)

	fareHandler := handlers.NewFareHandler(s.catalog, s.pricing)
	r.GET("/fare_matrix", fareHandler.Matrix)
	r.POST("/calculate_fare", fareHandler.Calculate)

	healthHandler := handlers.NewHealthHandler(s.catalog)
	r.GET("/health", healthHandler.Live)
	r.GET("/ready", healthHandler.Ready)

	return r
}
