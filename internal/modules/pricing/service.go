// README: Pricing service computes fares against the current catalog snapshot.
package pricing

import (
	"context"

	"farerail/internal/catalog"
)

type Catalog interface {
	Current() *catalog.Snapshot
}

type Service struct {
	catalog Catalog
	store   *Store
}

func NewService(cat Catalog, store *Store) *Service {
	return &Service{catalog: cat, store: store}
}

func (s *Service) Calculate(ctx context.Context, req PricingRequest) (PricingResult, error) {
	snap := s.catalog.Current()
	if snap == nil {
		return PricingResult{}, ErrCatalogUnavailable
	}
	if res, ok := s.store.Get(snap.Version, req); ok {
		return res, nil
	}
	res, err := Compute(snap.Fares, snap.Discounts, req)
	if err != nil {
		return PricingResult{}, err
	}
	s.store.Put(snap.Version, req, res)
	return res, nil
}
