package pricing

import (
	"context"
	"errors"
	"testing"

	"farerail/internal/catalog"
	"farerail/internal/modules/discount"
	"farerail/internal/modules/fare"
	"farerail/internal/modules/station"
	"farerail/internal/types"
)

// testCatalog: Baclaran(1) and EDSA(2) on LRT1, North Avenue(3) on MRT3.
func testCatalog(t *testing.T, studentRate float64) *catalog.Holder {
	t.Helper()
	stations := []station.Station{
		{ID: 1, Name: "Baclaran", Line: station.LineLRT1, Order: 0},
		{ID: 2, Name: "EDSA", Line: station.LineLRT1, Order: 1},
		{ID: 3, Name: "North Avenue", Line: station.LineMRT3, Order: 0},
	}
	fares := []fare.Entry{
		{ID: 1, OriginID: 1, DestinationID: 2, SingleJourney: types.Peso(15), StoredValue: types.Peso(13)},
		{ID: 2, OriginID: 2, DestinationID: 1, SingleJourney: types.Peso(15), StoredValue: types.Peso(13)},
	}
	rules := []discount.Rule{
		{Category: discount.CategoryStudent, Rate: types.RateFromFraction(studentRate)},
		{Category: discount.CategorySeniorOrPWD, Rate: types.RateFromFraction(0.5)},
	}
	snap, err := catalog.Build("test", stations, fares, rules)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	h := catalog.NewHolder()
	h.Swap(snap)
	return h
}

func TestService_Calculate(t *testing.T) {
	tests := []struct {
		name         string
		req          PricingRequest
		wantFare     int64
		wantOriginal int64
		wantRate     types.Rate
	}{
		{
			name:         "Student stored value (13.00 x 0.8)",
			req:          PricingRequest{OriginID: 1, DestinationID: 2, Passenger: discount.CategoryStudent, Ticket: TicketStoredValue},
			wantFare:     1040,
			wantOriginal: 1300,
			wantRate:     2000,
		},
		{
			name:         "Regular single journey",
			req:          PricingRequest{OriginID: 1, DestinationID: 2, Passenger: discount.CategoryRegular, Ticket: TicketSingleJourney},
			wantFare:     1500,
			wantOriginal: 1500,
			wantRate:     0,
		},
		{
			name:         "Regular stored value reads the svc column",
			req:          PricingRequest{OriginID: 1, DestinationID: 2, Passenger: discount.CategoryRegular, Ticket: TicketStoredValue},
			wantFare:     1300,
			wantOriginal: 1300,
			wantRate:     0,
		},
		{
			name:         "Senior single journey, reverse direction",
			req:          PricingRequest{OriginID: 2, DestinationID: 1, Passenger: discount.CategorySeniorOrPWD, Ticket: TicketSingleJourney},
			wantFare:     750,
			wantOriginal: 1500,
			wantRate:     5000,
		},
	}

	s := NewService(testCatalog(t, 0.20), NewStore(16))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Calculate(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if got.Fare.Amount != tt.wantFare {
				t.Errorf("Fare = %v, want %d", got.Fare, tt.wantFare)
			}
			if got.OriginalFare.Amount != tt.wantOriginal {
				t.Errorf("OriginalFare = %v, want %d", got.OriginalFare, tt.wantOriginal)
			}
			if got.DiscountRate != tt.wantRate {
				t.Errorf("DiscountRate = %d, want %d", got.DiscountRate, tt.wantRate)
			}
			if got.Ticket != tt.req.Ticket {
				t.Errorf("Ticket = %s, want %s", got.Ticket, tt.req.Ticket)
			}
		})
	}
}

func TestService_CalculateErrors(t *testing.T) {
	s := NewService(testCatalog(t, 0.20), nil)
	ctx := context.Background()

	for _, c := range discount.Categories {
		for _, tk := range []TicketType{TicketStoredValue, TicketSingleJourney} {
			_, err := s.Calculate(ctx, PricingRequest{OriginID: 1, DestinationID: 1, Passenger: c, Ticket: tk})
			if !errors.Is(err, ErrSameStation) {
				t.Errorf("same station (%s,%s): expected ErrSameStation, got %v", c, tk, err)
			}
		}
	}

	cases := []struct {
		name string
		req  PricingRequest
	}{
		{"cross line", PricingRequest{OriginID: 1, DestinationID: 3, Passenger: discount.CategoryRegular, Ticket: TicketStoredValue}},
		{"unknown origin", PricingRequest{OriginID: 99, DestinationID: 2, Passenger: discount.CategoryRegular, Ticket: TicketStoredValue}},
		{"unknown destination", PricingRequest{OriginID: 1, DestinationID: 99, Passenger: discount.CategoryRegular, Ticket: TicketStoredValue}},
	}
	for _, tc := range cases {
		if _, err := s.Calculate(ctx, tc.req); !errors.Is(err, ErrNoFareRoute) {
			t.Errorf("%s: expected ErrNoFareRoute, got %v", tc.name, err)
		}
	}

	_, err := s.Calculate(ctx, PricingRequest{OriginID: 1, DestinationID: 2, Passenger: "vip", Ticket: TicketStoredValue})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "passenger_type" {
		t.Errorf("unknown category: expected passenger_type ValidationError, got %v", err)
	}

	_, err = s.Calculate(ctx, PricingRequest{OriginID: 1, DestinationID: 2, Passenger: discount.CategoryRegular, Ticket: "monthly"})
	if !errors.As(err, &verr) || verr.Field != "ticket_type" {
		t.Errorf("unknown ticket: expected ticket_type ValidationError, got %v", err)
	}
}

func TestService_CatalogUnavailable(t *testing.T) {
	s := NewService(catalog.NewHolder(), nil)
	_, err := s.Calculate(context.Background(), PricingRequest{OriginID: 1, DestinationID: 2, Passenger: discount.CategoryRegular, Ticket: TicketStoredValue})
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestService_Idempotent(t *testing.T) {
	s := NewService(testCatalog(t, 0.20), NewStore(4))
	req := PricingRequest{OriginID: 1, DestinationID: 2, Passenger: discount.CategoryStudent, Ticket: TicketStoredValue}
	first, err := s.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := s.Calculate(context.Background(), req)
		if err != nil {
			t.Fatalf("repeat %d: %v", i, err)
		}
		if got != first {
			t.Fatalf("repeat %d: got %+v, want %+v", i, got, first)
		}
	}
	if s.store.Len() != 1 {
		t.Errorf("expected one cached quote, got %d", s.store.Len())
	}
}

func TestService_SwapInvalidatesQuotes(t *testing.T) {
	h := testCatalog(t, 0.20)
	s := NewService(h, NewStore(16))
	req := PricingRequest{OriginID: 1, DestinationID: 2, Passenger: discount.CategoryStudent, Ticket: TicketStoredValue}

	before, err := s.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("before swap: %v", err)
	}

	h.Swap(testCatalog(t, 0.50).Current())
	after, err := s.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("after swap: %v", err)
	}
	if before.Fare.Amount != 1040 || after.Fare.Amount != 650 {
		t.Fatalf("expected 1040 then 650, got %d then %d", before.Fare.Amount, after.Fare.Amount)
	}
}

// Every tabulated pair of the embedded network obeys the discount bounds.
func TestCompute_Properties(t *testing.T) {
	snap, err := catalog.FileLoader{}.Load(context.Background())
	if err != nil {
		t.Fatalf("load embedded network: %v", err)
	}
	for _, e := range snap.Fares.All() {
		for _, c := range discount.Categories {
			for _, tk := range []TicketType{TicketStoredValue, TicketSingleJourney} {
				req := PricingRequest{OriginID: e.OriginID, DestinationID: e.DestinationID, Passenger: c, Ticket: tk}
				got, err := Compute(snap.Fares, snap.Discounts, req)
				if err != nil {
					t.Fatalf("%+v: %v", req, err)
				}
				if !got.DiscountRate.Valid() {
					t.Fatalf("%+v: rate %d out of range", req, got.DiscountRate)
				}
				if got.Fare.IsNegative() || got.Fare.Amount > got.OriginalFare.Amount {
					t.Fatalf("%+v: fare %v vs original %v", req, got.Fare, got.OriginalFare)
				}
				if c == discount.CategoryRegular && got.Fare != got.OriginalFare {
					t.Fatalf("%+v: regular fare %v != original %v", req, got.Fare, got.OriginalFare)
				}
				want := e.StoredValue
				if tk == TicketSingleJourney {
					want = e.SingleJourney
				}
				if got.OriginalFare != want {
					t.Fatalf("%+v: read %v, want %v", req, got.OriginalFare, want)
				}
			}
		}
	}
}

func TestNewPricingRequest(t *testing.T) {
	req, err := NewPricingRequest(1, 2, "PWD", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Passenger != discount.CategorySeniorOrPWD || req.Ticket != TicketStoredValue {
		t.Errorf("got %+v", req)
	}

	cases := []struct {
		origin, dest    int
		passenger, tick string
		field           string
	}{
		{0, 2, "regular", "svc", "origin_station_id"},
		{1, -4, "regular", "svc", "destination_station_id"},
		{1, 2, "child", "svc", "passenger_type"},
		{1, 2, "", "svc", "passenger_type"},
		{1, 2, "regular", "weekly", "ticket_type"},
	}
	for _, tc := range cases {
		_, err := NewPricingRequest(tc.origin, tc.dest, tc.passenger, tc.tick)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%+v: expected ValidationError, got %v", tc, err)
			continue
		}
		if verr.Field != tc.field {
			t.Errorf("%+v: field = %s, want %s", tc, verr.Field, tc.field)
		}
	}
}
