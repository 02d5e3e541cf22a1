// README: Fare computation; a pure function of the request and the two read-only tables.
package pricing

import (
	"farerail/internal/modules/discount"
	"farerail/internal/modules/fare"
	"farerail/internal/types"
)

type FareLookup interface {
	Lookup(originID, destinationID int) (fare.Entry, bool)
}

type DiscountPolicy interface {
	DiscountRate(c discount.Category) (types.Rate, error)
}

// NewPricingRequest validates raw field values into a request.
func NewPricingRequest(originID, destinationID int, passengerType, ticketType string) (PricingRequest, error) {
	if originID <= 0 {
		return PricingRequest{}, invalid("origin_station_id", "must be a positive integer")
	}
	if destinationID <= 0 {
		return PricingRequest{}, invalid("destination_station_id", "must be a positive integer")
	}
	c, ok := discount.ParseCategory(passengerType)
	if !ok {
		return PricingRequest{}, invalid("passenger_type", "must be one of regular, student, senior, pwd")
	}
	t, ok := ParseTicketType(ticketType)
	if !ok {
		return PricingRequest{}, invalid("ticket_type", "must be svc or sjt")
	}
	return PricingRequest{OriginID: originID, DestinationID: destinationID, Passenger: c, Ticket: t}, nil
}

// Compute resolves the base fare for the ticket type and applies the passenger discount,
// rounding half-up to the centavo.
func Compute(fares FareLookup, discounts DiscountPolicy, req PricingRequest) (PricingResult, error) {
	if req.OriginID == req.DestinationID {
		return PricingResult{}, ErrSameStation
	}
	entry, ok := fares.Lookup(req.OriginID, req.DestinationID)
	if !ok {
		return PricingResult{}, ErrNoFareRoute
	}

	var base types.Money
	switch req.Ticket {
	case TicketSingleJourney:
		base = entry.SingleJourney
	case TicketStoredValue:
		base = entry.StoredValue
	default:
		return PricingResult{}, invalid("ticket_type", "must be svc or sjt")
	}

	rate, err := discounts.DiscountRate(req.Passenger)
	if err != nil {
		return PricingResult{}, invalid("passenger_type", err.Error())
	}

	return PricingResult{
		Fare:         base.Discounted(rate),
		OriginalFare: base,
		DiscountRate: rate,
		Ticket:       req.Ticket,
	}, nil
}
