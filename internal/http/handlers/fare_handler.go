// README: Fare handlers for the fare matrix listing and fare calculation.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farerail/internal/modules/fare"
	"farerail/internal/modules/pricing"
	"farerail/internal/modules/station"
	"farerail/internal/types"
)

type FareHandler struct {
	catalog CatalogReader
	pricing *pricing.Service
}

func NewFareHandler(cat CatalogReader, svc *pricing.Service) *FareHandler {
	return &FareHandler{catalog: cat, pricing: svc}
}

type fareMatrixResp struct {
	ID                   int         `json:"id"`
	OriginStationID      int         `json:"origin_station_id"`
	DestinationStationID int         `json:"destination_station_id"`
	OriginName           string      `json:"origin_name"`
	DestinationName      string      `json:"destination_name"`
	SJTFare              types.Money `json:"sjt_fare"`
	SVCFare              types.Money `json:"svc_fare"`
}

type calculateFareReq struct {
	OriginStationID      *int   `json:"origin_station_id"`
	DestinationStationID *int   `json:"destination_station_id"`
	PassengerType        string `json:"passenger_type"`
	TicketType           string `json:"ticket_type"`
}

type calculateFareResp struct {
	Fare         types.Money `json:"fare"`
	OriginalFare types.Money `json:"original_fare"`
	DiscountRate types.Rate  `json:"discount_rate"`
	TicketType   string      `json:"ticket_type"`
}

// Matrix serves GET /fare_matrix?transport=LINE with the same filter policy as /stations.
func (h *FareHandler) Matrix(c *gin.Context) {
	snap := snapshot(c, h.catalog)
	if snap == nil {
		return
	}
	var entries []fare.Entry
	if raw := c.Query("transport"); raw == "" {
		entries = snap.Fares.All()
	} else if line, ok := station.ParseLine(raw); ok {
		entries = snap.Fares.List(line)
	}

	out := make([]fareMatrixResp, 0, len(entries))
	for _, e := range entries {
		origin, _ := snap.Stations.Lookup(e.OriginID)
		dest, _ := snap.Stations.Lookup(e.DestinationID)
		out = append(out, fareMatrixResp{
			ID:                   e.ID,
			OriginStationID:      e.OriginID,
			DestinationStationID: e.DestinationID,
			OriginName:           origin.Name,
			DestinationName:      dest.Name,
			SJTFare:              e.SingleJourney,
			SVCFare:              e.StoredValue,
		})
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *FareHandler) Calculate(c *gin.Context) {
	var req calculateFareReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writePricingError(c, bindError(err))
		return
	}
	if req.OriginStationID == nil {
		writePricingError(c, &pricing.ValidationError{Field: "origin_station_id", Reason: "is required"})
		return
	}
	if req.DestinationStationID == nil {
		writePricingError(c, &pricing.ValidationError{Field: "destination_station_id", Reason: "is required"})
		return
	}
	preq, err := pricing.NewPricingRequest(*req.OriginStationID, *req.DestinationStationID, req.PassengerType, req.TicketType)
	if err != nil {
		writePricingError(c, err)
		return
	}
	res, err := h.pricing.Calculate(c.Request.Context(), preq)
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, calculateFareResp{
		Fare:         res.Fare,
		OriginalFare: res.OriginalFare,
		DiscountRate: res.DiscountRate,
		TicketType:   string(res.Ticket),
	})
}
