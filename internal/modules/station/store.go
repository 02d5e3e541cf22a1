// README: Station store backed by PostgreSQL.
package station

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context) ([]Station, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, transport_type, station_order
		FROM stations
		ORDER BY transport_type, station_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Station
	for rows.Next() {
		var st Station
		var line string
		if err := rows.Scan(&st.ID, &st.Name, &line, &st.Order); err != nil {
			return nil, err
		}
		st.Line = Line(line)
		if l, ok := ParseLine(line); ok {
			st.Line = l
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
