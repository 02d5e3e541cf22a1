// README: Seeds PostgreSQL from a network file, then asks running API processes to reload.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"farerail/internal/catalog"
	"farerail/internal/dataset"
)

type Config struct {
	DSN           string
	DataFile      string
	MigrationPath string
	RedisAddr     string
	Channel       string
	Timeout       time.Duration
}

func main() {
	cfg := loadConfig()
	if cfg.DSN == "" {
		log.Fatal("-dsn or FARERAIL_DB_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	net, err := readNetwork(cfg.DataFile)
	if err != nil {
		log.Fatal(err)
	}
	// Validate before touching the database so a bad file never half-replaces the tables.
	snap, err := catalog.Build("seed", net.Stations, net.Fares, net.Discounts)
	if err != nil {
		log.Fatalf("network rejected: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping db: %v", err)
	}

	if cfg.MigrationPath != "" {
		if err := applyMigration(ctx, db, cfg.MigrationPath); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}
	if err := seed(ctx, db, net); err != nil {
		log.Fatalf("seed: %v", err)
	}
	fmt.Printf("seeded %d stations, %d fares, %d discounts (effective %s)\n",
		snap.Stations.Len(), snap.Fares.Len(), len(net.Discounts), net.Effective)

	if cfg.RedisAddr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer client.Close()
	if err := catalog.Publish(ctx, client, cfg.Channel, "seed"); err != nil {
		log.Fatalf("publish reload: %v", err)
	}
	fmt.Printf("reload published on %s\n", cfg.Channel)
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("FARERAIL_DB_DSN"), "Postgres DSN")
	flag.StringVar(&cfg.DataFile, "file", os.Getenv("FARERAIL_DATA_FILE"), "Network JSON file (default: embedded network)")
	flag.StringVar(&cfg.MigrationPath, "migration", envOrDefault("FARERAIL_SEED_MIGRATION", "migrations/0001_init.sql"), "Migration SQL path, empty to skip")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("FARERAIL_REDIS_ADDR"), "Redis address for the reload notice (optional)")
	flag.StringVar(&cfg.Channel, "channel", envOrDefault("FARERAIL_RELOAD_CHANNEL", catalog.DefaultReloadChannel), "Reload channel")
	flag.DurationVar(&cfg.Timeout, "timeout", 60*time.Second, "Total timeout")
	flag.Parse()
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func readNetwork(path string) (*dataset.Network, error) {
	if path == "" {
		return dataset.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.Decode(f)
}

func applyMigration(ctx context.Context, db *sql.DB, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for _, stmt := range splitSQL(string(b)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w\n%s", err, stmt)
		}
	}
	return nil
}

// seed replaces all three tables in one transaction. Readers see either the old
// rows or the new ones.
func seed(ctx context.Context, db *sql.DB, net *dataset.Network) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE fares, discounts, stations RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("stations", "id", "name", "transport_type", "station_order"))
	if err != nil {
		return err
	}
	for _, s := range net.Stations {
		if _, err := stmt.ExecContext(ctx, s.ID, s.Name, string(s.Line), s.Order); err != nil {
			return fmt.Errorf("copy station %d: %w", s.ID, err)
		}
	}
	if err := flushCopy(ctx, stmt); err != nil {
		return fmt.Errorf("copy stations: %w", err)
	}

	stmt, err = tx.PrepareContext(ctx, pq.CopyIn("fares", "id", "origin_station_id", "destination_station_id", "sjt_fare", "svc_fare"))
	if err != nil {
		return err
	}
	for _, e := range net.Fares {
		if _, err := stmt.ExecContext(ctx, e.ID, e.OriginID, e.DestinationID, e.SingleJourney.String(), e.StoredValue.String()); err != nil {
			return fmt.Errorf("copy fare %d: %w", e.ID, err)
		}
	}
	if err := flushCopy(ctx, stmt); err != nil {
		return fmt.Errorf("copy fares: %w", err)
	}

	for _, r := range net.Discounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO discounts (passenger_type, discount_rate) VALUES ($1, $2)`,
			r.Category.WireName(), strconv.FormatFloat(r.Rate.Fraction(), 'f', 4, 64),
		); err != nil {
			return fmt.Errorf("insert discount %s: %w", r.Category, err)
		}
	}

	// Explicit ids were copied in; move the sequences past them.
	for _, table := range []string{"stations", "fares"} {
		q := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s`, table, table)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}
	return tx.Commit()
}

func flushCopy(ctx context.Context, stmt *sql.Stmt) error {
	defer stmt.Close()
	_, err := stmt.ExecContext(ctx)
	return err
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
