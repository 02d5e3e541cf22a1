// README: Fare matrix; O(1) pair lookup plus per-line flat listings.
package fare

import (
	"errors"
	"fmt"
	"slices"

	"farerail/internal/modules/station"
)

var (
	ErrSelfPair       = errors.New("self pair has no fare")
	ErrUnknownStation = errors.New("fare references unknown station")
	ErrCrossLine      = errors.New("fare spans two lines")
	ErrDuplicatePair  = errors.New("duplicate fare pair")
	ErrNegativeFare   = errors.New("negative fare")
)

// Matrix is read-only after NewMatrix returns and safe for concurrent use.
type Matrix struct {
	byKey  map[Key]Entry
	byLine map[station.Line][]Entry
	all    []Entry

	// stored-value fares above the single-journey fare; tolerated, reported by the loader
	inverted int
}

// NewMatrix indexes entries against the registry. Every entry must join two distinct
// stations of the same line, and each ordered pair may appear once.
func NewMatrix(stations *station.Registry, entries []Entry) (*Matrix, error) {
	m := &Matrix{
		byKey:  make(map[Key]Entry, len(entries)),
		byLine: make(map[station.Line][]Entry),
		all:    make([]Entry, 0, len(entries)),
	}
	for _, e := range entries {
		if e.OriginID == e.DestinationID {
			return nil, fmt.Errorf("%w: station %d", ErrSelfPair, e.OriginID)
		}
		origin, ok := stations.Lookup(e.OriginID)
		if !ok {
			return nil, fmt.Errorf("%w: origin %d", ErrUnknownStation, e.OriginID)
		}
		dest, ok := stations.Lookup(e.DestinationID)
		if !ok {
			return nil, fmt.Errorf("%w: destination %d", ErrUnknownStation, e.DestinationID)
		}
		if origin.Line != dest.Line {
			return nil, fmt.Errorf("%w: %d (%s) -> %d (%s)", ErrCrossLine, origin.ID, origin.Line, dest.ID, dest.Line)
		}
		if e.SingleJourney.IsNegative() || e.StoredValue.IsNegative() {
			return nil, fmt.Errorf("%w: %d -> %d", ErrNegativeFare, e.OriginID, e.DestinationID)
		}
		if _, dup := m.byKey[e.Key()]; dup {
			return nil, fmt.Errorf("%w: %d -> %d", ErrDuplicatePair, e.OriginID, e.DestinationID)
		}
		if e.StoredValue.Amount > e.SingleJourney.Amount {
			m.inverted++
		}
		m.byKey[e.Key()] = e
		m.byLine[origin.Line] = append(m.byLine[origin.Line], e)
	}

	order := func(id int) (int, int) {
		s, _ := stations.Lookup(id)
		return s.Order, s.ID
	}
	cmp := func(a, b Entry) int {
		ao, aid := order(a.OriginID)
		bo, bid := order(b.OriginID)
		if ao != bo {
			return ao - bo
		}
		if aid != bid {
			return aid - bid
		}
		ao, aid = order(a.DestinationID)
		bo, bid = order(b.DestinationID)
		if ao != bo {
			return ao - bo
		}
		return aid - bid
	}
	for _, l := range station.KnownLines {
		list := m.byLine[l]
		slices.SortFunc(list, cmp)
		m.all = append(m.all, list...)
	}
	return m, nil
}

// Lookup returns the fare for the directed pair. A self pair is never found.
func (m *Matrix) Lookup(originID, destinationID int) (Entry, bool) {
	if originID == destinationID {
		return Entry{}, false
	}
	e, ok := m.byKey[Key{OriginID: originID, DestinationID: destinationID}]
	return e, ok
}

// List returns the entries whose origin is on line. Unknown lines yield an empty slice.
func (m *Matrix) List(line station.Line) []Entry {
	out := slices.Clone(m.byLine[line])
	if out == nil {
		out = []Entry{}
	}
	return out
}

func (m *Matrix) All() []Entry {
	return slices.Clone(m.all)
}

func (m *Matrix) Len() int {
	return len(m.byKey)
}

// Inverted counts entries whose stored-value fare exceeds the single-journey fare.
func (m *Matrix) Inverted() int {
	return m.inverted
}
