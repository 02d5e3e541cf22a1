// README: Station registry; immutable index of stations by id and by line.
package station

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrDuplicateID    = errors.New("duplicate station id")
	ErrInvalidStation = errors.New("invalid station")
)

// Registry is read-only after NewRegistry returns and safe for concurrent use.
type Registry struct {
	byID   map[int]Station
	byLine map[Line][]Station
	all    []Station
}

func NewRegistry(stations []Station) (*Registry, error) {
	r := &Registry{
		byID:   make(map[int]Station, len(stations)),
		byLine: make(map[Line][]Station),
		all:    make([]Station, 0, len(stations)),
	}
	for _, s := range stations {
		if s.ID <= 0 {
			return nil, fmt.Errorf("%w: id %d must be positive", ErrInvalidStation, s.ID)
		}
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("%w: id %d has no name", ErrInvalidStation, s.ID)
		}
		if !s.Line.Known() {
			return nil, fmt.Errorf("%w: id %d has unknown line %q", ErrInvalidStation, s.ID, s.Line)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, s.ID)
		}
		r.byID[s.ID] = s
		r.byLine[s.Line] = append(r.byLine[s.Line], s)
	}
	for _, l := range KnownLines {
		list := r.byLine[l]
		slices.SortFunc(list, compareStations)
		r.all = append(r.all, list...)
	}
	return r, nil
}

func compareStations(a, b Station) int {
	if a.Order != b.Order {
		return a.Order - b.Order
	}
	return a.ID - b.ID
}

// List returns the stations of line ordered by position then id.
// An unknown line yields an empty, non-nil slice.
func (r *Registry) List(line Line) []Station {
	out := slices.Clone(r.byLine[line])
	if out == nil {
		out = []Station{}
	}
	return out
}

// All returns every station grouped by line in KnownLines order.
func (r *Registry) All() []Station {
	return slices.Clone(r.all)
}

func (r *Registry) Lookup(id int) (Station, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Count returns the number of stations on line.
func (r *Registry) Count(line Line) int {
	return len(r.byLine[line])
}

func (r *Registry) Len() int {
	return len(r.byID)
}
