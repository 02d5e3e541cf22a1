// README: Quote store; bounded in-process LRU of computed fares.
package pricing

import (
	"fmt"

	"github.com/bluele/gcache"
)

// Store memoizes results per catalog version, so a swapped catalog never serves
// quotes computed from the previous tables.
type Store struct {
	cache gcache.Cache
}

// NewStore returns nil when size <= 0; a nil *Store is a valid, always-missing store.
func NewStore(size int) *Store {
	if size <= 0 {
		return nil
	}
	return &Store{cache: gcache.New(size).LRU().Build()}
}

func quoteKey(version uint64, req PricingRequest) string {
	return fmt.Sprintf("%d:%d:%d:%s:%s", version, req.OriginID, req.DestinationID, req.Passenger, req.Ticket)
}

func (s *Store) Get(version uint64, req PricingRequest) (PricingResult, bool) {
	if s == nil {
		return PricingResult{}, false
	}
	v, err := s.cache.Get(quoteKey(version, req))
	if err != nil {
		return PricingResult{}, false
	}
	res, ok := v.(PricingResult)
	return res, ok
}

func (s *Store) Put(version uint64, req PricingRequest, res PricingResult) {
	if s == nil {
		return
	}
	_ = s.cache.Set(quoteKey(version, req), res)
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.cache.Len(false)
}
