// README: Fare computation request/result and ticket type definitions.
package pricing

import (
	"strings"

	"farerail/internal/modules/discount"
	"farerail/internal/types"
)

type TicketType string

const (
	TicketStoredValue   TicketType = "svc"
	TicketSingleJourney TicketType = "sjt"
)

// ParseTicketType accepts "svc" or "sjt"; an empty value means stored value.
func ParseTicketType(v string) (TicketType, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "svc":
		return TicketStoredValue, true
	case "sjt":
		return TicketSingleJourney, true
	}
	return "", false
}

type PricingRequest struct {
	OriginID      int
	DestinationID int
	Passenger     discount.Category
	Ticket        TicketType
}

type PricingResult struct {
	Fare         types.Money
	OriginalFare types.Money
	DiscountRate types.Rate
	Ticket       TicketType
}
