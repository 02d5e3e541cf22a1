// README: Fare store backed by PostgreSQL.
package fare

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"farerail/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// List reads every fare row. Amounts are converted to centavos in SQL so no float
// rounding happens on this side.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, origin_station_id, destination_station_id,
		       ROUND(sjt_fare * 100)::bigint, ROUND(svc_fare * 100)::bigint
		FROM fares
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var sjt, svc int64
		if err := rows.Scan(&e.ID, &e.OriginID, &e.DestinationID, &sjt, &svc); err != nil {
			return nil, err
		}
		e.SingleJourney = types.Money{Amount: sjt, Currency: types.DefaultCurrency}
		e.StoredValue = types.Money{Amount: svc, Currency: types.DefaultCurrency}
		out = append(out, e)
	}
	return out, rows.Err()
}
