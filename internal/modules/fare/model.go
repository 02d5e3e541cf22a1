// README: Fare table rows keyed by ordered station pair.
package fare

import "farerail/internal/types"

// Key identifies a directed trip. Origin->destination and destination->origin are distinct rows.
type Key struct {
	OriginID      int
	DestinationID int
}

type Entry struct {
	ID            int
	OriginID      int
	DestinationID int
	SingleJourney types.Money // SJT column
	StoredValue   types.Money // SVC (beep card) column
}

func (e Entry) Key() Key {
	return Key{OriginID: e.OriginID, DestinationID: e.DestinationID}
}
