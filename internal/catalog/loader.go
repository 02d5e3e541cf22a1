// README: Snapshot loaders for PostgreSQL and network JSON files.
package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"farerail/internal/dataset"
	"farerail/internal/modules/discount"
	"farerail/internal/modules/fare"
	"farerail/internal/modules/station"
)

type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

type PostgresLoader struct {
	stations  *station.Store
	fares     *fare.Store
	discounts *discount.Store
}

func NewPostgresLoader(db *pgxpool.Pool) *PostgresLoader {
	return &PostgresLoader{
		stations:  station.NewStore(db),
		fares:     fare.NewStore(db),
		discounts: discount.NewStore(db),
	}
}

func (l *PostgresLoader) Load(ctx context.Context) (*Snapshot, error) {
	stations, err := l.stations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stations: %w", err)
	}
	fares, err := l.fares.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fares: %w", err)
	}
	rules, err := l.discounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load discounts: %w", err)
	}
	return Build("postgres", stations, fares, rules)
}

// FileLoader reads a network JSON file; an empty path means the embedded network.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(ctx context.Context) (*Snapshot, error) {
	net, source, err := l.read()
	if err != nil {
		return nil, err
	}
	return Build(source, net.Stations, net.Fares, net.Discounts)
}

func (l FileLoader) read() (*dataset.Network, string, error) {
	if l.Path == "" {
		net, err := dataset.Default()
		return net, "embedded", err
	}
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, "", fmt.Errorf("open network file: %w", err)
	}
	defer f.Close()
	net, err := dataset.Decode(f)
	return net, "file:" + l.Path, err
}
