// README: Bench cases for the fare API; includes HTTP, DB, Redis reload and throughput checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

// bodyCheck inspects a decoded 2xx/4xx body; an empty return means it passed.
type bodyCheck func(body []byte) string

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table: " + t}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},

		httpCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK, nil),
		httpCase("API: ready", http.MethodGet, base+"/ready", nil, http.StatusOK, nil),

		// Stations
		httpCase("Stations: LRT1", http.MethodGet, base+"/stations?transport=LRT1", nil, http.StatusOK, nonEmptyArray),
		httpCase("Stations: lowercase filter", http.MethodGet, base+"/stations?transport=mrt3", nil, http.StatusOK, nonEmptyArray),
		httpCase("Stations: unknown line -> []", http.MethodGet, base+"/stations?transport=LRT9", nil, http.StatusOK, emptyArray),
		httpCase("Lines: list", http.MethodGet, base+"/lines", nil, http.StatusOK, nonEmptyArray),

		// Fare matrix
		httpCase("Matrix: LRT2", http.MethodGet, base+"/fare_matrix?transport=LRT2", nil, http.StatusOK, nonEmptyArray),
		httpCase("Matrix: unknown line -> []", http.MethodGet, base+"/fare_matrix?transport=LRT9", nil, http.StatusOK, emptyArray),

		// Calculation
		httpCase("Fare: regular sjt", http.MethodPost, base+"/calculate_fare", map[string]any{
			"origin_station_id":      1,
			"destination_station_id": 2,
			"passenger_type":         "regular",
			"ticket_type":            "sjt",
		}, http.StatusOK, fareNotAboveOriginal),
		httpCase("Fare: student svc", http.MethodPost, base+"/calculate_fare", map[string]any{
			"origin_station_id":      1,
			"destination_station_id": 10,
			"passenger_type":         "student",
			"ticket_type":            "svc",
		}, http.StatusOK, fareNotAboveOriginal),
		httpCase("Fare: same station -> 400", http.MethodPost, base+"/calculate_fare", map[string]any{
			"origin_station_id":      2,
			"destination_station_id": 2,
			"passenger_type":         "regular",
			"ticket_type":            "sjt",
		}, http.StatusBadRequest, hasDetail),
		httpCase("Fare: unknown station -> 404", http.MethodPost, base+"/calculate_fare", map[string]any{
			"origin_station_id":      1,
			"destination_station_id": 99999,
			"passenger_type":         "regular",
			"ticket_type":            "sjt",
		}, http.StatusNotFound, hasDetail),
		httpCase("Fare: unknown passenger type -> 400", http.MethodPost, base+"/calculate_fare", map[string]any{
			"origin_station_id":      1,
			"destination_station_id": 2,
			"passenger_type":         "vip",
		}, http.StatusBadRequest, hasDetail),
		httpCase("Fare: missing fields -> 400", http.MethodPost, base+"/calculate_fare", map[string]any{}, http.StatusBadRequest, hasDetail),

		{
			Name: "Reload: publish bumps catalog version",
			Run: func(ctx context.Context, r *Runner) Result {
				return reloadBump(ctx, r, base+"/ready")
			},
		},

		// Performance
		{
			Name: "Perf: calculate_fare throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/calculate_fare", map[string]any{
					"origin_station_id":      1,
					"destination_station_id": 5,
					"passenger_type":         "senior",
					"ticket_type":            "svc",
				})
			},
		},
	}
}

func httpCase(name, method, url string, body any, want int, check bodyCheck) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = bytes.NewReader(b)
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			b, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			if resp.StatusCode != want {
				return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d want=%d", resp.StatusCode, want)}
			}
			if check != nil {
				if msg := check(b); msg != "" {
					return Result{Status: "FAIL", Latency: latency, Note: msg}
				}
			}
			return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
		},
	}
}

func nonEmptyArray(body []byte) string {
	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err != nil {
		return "not a JSON array: " + err.Error()
	}
	if len(arr) == 0 {
		return "array is empty"
	}
	return ""
}

func emptyArray(body []byte) string {
	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err != nil || arr == nil {
		return "expected []"
	}
	if len(arr) != 0 {
		return fmt.Sprintf("expected [], got %d items", len(arr))
	}
	return ""
}

func hasDetail(body []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Detail == "" {
		return "missing detail"
	}
	return ""
}

func fareNotAboveOriginal(body []byte) string {
	var q struct {
		Fare         float64 `json:"fare"`
		OriginalFare float64 `json:"original_fare"`
		DiscountRate float64 `json:"discount_rate"`
	}
	if err := json.Unmarshal(body, &q); err != nil {
		return err.Error()
	}
	if q.Fare > q.OriginalFare || q.Fare < 0 {
		return fmt.Sprintf("fare %.2f outside [0, %.2f]", q.Fare, q.OriginalFare)
	}
	if q.DiscountRate < 0 || q.DiscountRate >= 1 {
		return fmt.Sprintf("discount_rate %v outside [0, 1)", q.DiscountRate)
	}
	return ""
}

func readyVersion(ctx context.Context, r *Runner, url string) (uint64, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	var body struct {
		Version uint64 `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Version, nil
}

func reloadBump(ctx context.Context, r *Runner, url string) Result {
	if r.redis == nil {
		return Result{Status: "SKIP", Note: "redis not configured"}
	}
	before, err := readyVersion(ctx, r, url)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	start := time.Now()
	if err := r.redis.Publish(ctx, r.cfg.Channel, "bench").Err(); err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		v, err := readyVersion(ctx, r, url)
		if err == nil && v > before {
			return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("version %d -> %d", before, v)}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return Result{Status: "FAIL", Note: fmt.Sprintf("version stayed at %d", before)}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount, badStatus atomic.Int64
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					badStatus.Add(1)
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	note := fmt.Sprintf("rps=%.1f errors=%d non200=%d", rps, errCount.Load(), badStatus.Load())
	if badStatus.Load() > 0 {
		return Result{Status: "FAIL", Note: note}
	}
	return Result{Status: "PASS", Note: note}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		if !slices.Contains(tables, m[1]) {
			tables = append(tables, m[1])
		}
	}
	return tables, nil
}
