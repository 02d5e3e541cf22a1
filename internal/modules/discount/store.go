// README: Discount store backed by PostgreSQL.
package discount

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"farerail/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// List reads the discounts table. Rates come back as basis points.
func (s *Store) List(ctx context.Context) ([]Rule, error) {
	rows, err := s.db.Query(ctx, `
		SELECT passenger_type, ROUND(discount_rate * 10000)::bigint
		FROM discounts
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		var name string
		var bp int64
		if err := rows.Scan(&name, &bp); err != nil {
			return nil, err
		}
		c, ok := ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
		out = append(out, Rule{Category: c, Rate: types.Rate(bp)})
	}
	return out, rows.Err()
}
