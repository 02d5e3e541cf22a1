// README: Liveness and readiness probes.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	catalog CatalogReader
}

func NewHealthHandler(cat CatalogReader) *HealthHandler {
	return &HealthHandler{catalog: cat}
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready reports the published catalog, or 503 until the first load completes.
func (h *HealthHandler) Ready(c *gin.Context) {
	snap := snapshot(c, h.catalog)
	if snap == nil {
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"version":   snap.Version,
		"source":    snap.Source,
		"loaded_at": snap.LoadedAt.Format(time.RFC3339),
		"stations":  snap.Stations.Len(),
		"fares":     snap.Fares.Len(),
	})
}
