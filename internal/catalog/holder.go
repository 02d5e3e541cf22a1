// README: Atomic-swap holder; readers always see one whole snapshot.
package catalog

import "sync/atomic"

type Holder struct {
	current atomic.Pointer[Snapshot]
	version atomic.Uint64
}

func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the published snapshot, or nil before the first Swap.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Swap stamps s with the next version and publishes it. s must not be shared
// with another holder or modified afterwards.
func (h *Holder) Swap(s *Snapshot) uint64 {
	s.Version = h.version.Add(1)
	h.current.Store(s)
	return s.Version
}
