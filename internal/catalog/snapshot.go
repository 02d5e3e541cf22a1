// README: Immutable snapshot of the three reference tables.
package catalog

import (
	"fmt"
	"time"

	"farerail/internal/modules/discount"
	"farerail/internal/modules/fare"
	"farerail/internal/modules/station"
)

// Snapshot is never mutated once published through a Holder.
type Snapshot struct {
	Version  uint64
	Source   string
	LoadedAt time.Time

	Stations  *station.Registry
	Fares     *fare.Matrix
	Discounts *discount.Policy
}

// Build validates and indexes raw rows into a snapshot.
func Build(source string, stations []station.Station, fares []fare.Entry, rules []discount.Rule) (*Snapshot, error) {
	reg, err := station.NewRegistry(stations)
	if err != nil {
		return nil, fmt.Errorf("stations: %w", err)
	}
	matrix, err := fare.NewMatrix(reg, fares)
	if err != nil {
		return nil, fmt.Errorf("fares: %w", err)
	}
	policy, err := discount.NewPolicy(rules)
	if err != nil {
		return nil, fmt.Errorf("discounts: %w", err)
	}
	return &Snapshot{
		Source:    source,
		LoadedAt:  time.Now().UTC(),
		Stations:  reg,
		Fares:     matrix,
		Discounts: policy,
	}, nil
}
