// README: Station handlers for listing stations and lines.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farerail/internal/modules/station"
)

type StationHandler struct {
	catalog CatalogReader
}

func NewStationHandler(cat CatalogReader) *StationHandler {
	return &StationHandler{catalog: cat}
}

type stationResp struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	TransportType string `json:"transport_type"`
	StationOrder  int    `json:"station_order"`
}

type lineResp struct {
	TransportType string `json:"transport_type"`
	StationCount  int    `json:"station_count"`
}

// List serves GET /stations?transport=LINE. No filter lists every station;
// an unrecognised line is an empty list, not an error.
func (h *StationHandler) List(c *gin.Context) {
	snap := snapshot(c, h.catalog)
	if snap == nil {
		return
	}
	var stations []station.Station
	if raw := c.Query("transport"); raw == "" {
		stations = snap.Stations.All()
	} else if line, ok := station.ParseLine(raw); ok {
		stations = snap.Stations.List(line)
	}

	out := make([]stationResp, 0, len(stations))
	for _, s := range stations {
		out = append(out, stationResp{ID: s.ID, Name: s.Name, TransportType: string(s.Line), StationOrder: s.Order})
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *StationHandler) Lines(c *gin.Context) {
	snap := snapshot(c, h.catalog)
	if snap == nil {
		return
	}
	out := make([]lineResp, 0, len(station.KnownLines))
	for _, l := range station.KnownLines {
		if n := snap.Stations.Count(l); n > 0 {
			out = append(out, lineResp{TransportType: string(l), StationCount: n})
		}
	}
	writeJSON(c, http.StatusOK, out)
}
