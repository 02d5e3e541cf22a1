// README: Compact network file format (per-line square fare matrices) and the embedded default network.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"farerail/internal/modules/discount"
	"farerail/internal/modules/fare"
	"farerail/internal/modules/station"
	"farerail/internal/types"
)

//go:embed network.json
var defaultNetwork []byte

// raw structures matching the JSON file
type rawNetwork struct {
	Effective string        `json:"effective"`
	Discounts []rawDiscount `json:"discounts"`
	Lines     []rawLine     `json:"lines"`
}

type rawDiscount struct {
	PassengerType string  `json:"passenger_type"`
	DiscountRate  float64 `json:"discount_rate"`
}

type rawLine struct {
	TransportType string      `json:"transport_type"`
	Stations      []string    `json:"stations"`
	SJTFares      [][]float64 `json:"sjt_fares"`
	SVCFares      [][]float64 `json:"svc_fares"`
}

// Network is the expanded, row-oriented form of a network file.
type Network struct {
	Effective string
	Stations  []station.Station
	Fares     []fare.Entry
	Discounts []discount.Rule
}

var ErrMalformed = errors.New("malformed network file")

// Default returns the bundled LRT1/LRT2/MRT3 network.
func Default() (*Network, error) {
	return Decode(bytes.NewReader(defaultNetwork))
}

// Decode parses a network file. Station ids are assigned sequentially across lines in
// file order, starting at 1; fare ids likewise. Diagonal cells and pairs where either
// fare is zero are skipped.
func Decode(r io.Reader) (*Network, error) {
	var raw rawNetwork
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode network: %w", err)
	}

	n := &Network{Effective: raw.Effective}
	for _, d := range raw.Discounts {
		c, ok := discount.ParseCategory(d.PassengerType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown passenger_type %q", ErrMalformed, d.PassengerType)
		}
		n.Discounts = append(n.Discounts, discount.Rule{Category: c, Rate: types.RateFromFraction(d.DiscountRate)})
	}

	nextStation, nextFare := 1, 1
	for _, l := range raw.Lines {
		line, ok := station.ParseLine(l.TransportType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown transport_type %q", ErrMalformed, l.TransportType)
		}
		size := len(l.Stations)
		if err := checkSquare(l.SJTFares, size); err != nil {
			return nil, fmt.Errorf("%w: %s sjt_fares: %v", ErrMalformed, line, err)
		}
		if err := checkSquare(l.SVCFares, size); err != nil {
			return nil, fmt.Errorf("%w: %s svc_fares: %v", ErrMalformed, line, err)
		}

		ids := make([]int, size)
		for i, name := range l.Stations {
			ids[i] = nextStation
			n.Stations = append(n.Stations, station.Station{ID: nextStation, Name: name, Line: line, Order: i})
			nextStation++
		}
		for i := 0; i < size; i++ {
			for j := 0; j < size; j++ {
				if i == j {
					continue
				}
				sjt, svc := l.SJTFares[i][j], l.SVCFares[i][j]
				if sjt <= 0 || svc <= 0 {
					continue
				}
				n.Fares = append(n.Fares, fare.Entry{
					ID:            nextFare,
					OriginID:      ids[i],
					DestinationID: ids[j],
					SingleJourney: types.Peso(sjt),
					StoredValue:   types.Peso(svc),
				})
				nextFare++
			}
		}
	}
	return n, nil
}

func checkSquare(m [][]float64, size int) error {
	if len(m) != size {
		return fmt.Errorf("%d rows for %d stations", len(m), size)
	}
	for i, row := range m {
		if len(row) != size {
			return fmt.Errorf("row %d has %d columns, want %d", i, len(row), size)
		}
	}
	return nil
}
