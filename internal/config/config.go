// README: Config loader with env defaults for HTTP, data source, Redis, cache and logging settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	HTTP struct {
		Addr              string
		ReadHeaderTimeout time.Duration
		WriteTimeout      time.Duration
		CORSOrigins       []string
	}
	Source struct {
		Kind     string
		DataFile string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr          string
		ReloadChannel string
	}
	Pricing struct {
		QuoteCacheSize int
	}
	Log struct {
		Level string
		File  string
	}
}

// Load reads a .env file if present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("FARERAIL_HTTP_ADDR", ":8000")
	cfg.HTTP.ReadHeaderTimeout = envOrDefaultDuration("FARERAIL_HTTP_READ_HEADER_TIMEOUT", 5*time.Second)
	cfg.HTTP.WriteTimeout = envOrDefaultDuration("FARERAIL_HTTP_WRITE_TIMEOUT", 10*time.Second)
	cfg.HTTP.CORSOrigins = envOrDefaultList("FARERAIL_CORS_ORIGINS", []string{"*"})
	cfg.Source.Kind = strings.ToLower(envOrDefault("FARERAIL_SOURCE", SourceFile))
	cfg.Source.DataFile = os.Getenv("FARERAIL_DATA_FILE")
	cfg.DB.DSN = os.Getenv("FARERAIL_DB_DSN")
	cfg.Redis.Addr = os.Getenv("FARERAIL_REDIS_ADDR")
	cfg.Redis.ReloadChannel = envOrDefault("FARERAIL_RELOAD_CHANNEL", "farerail:reload")
	cfg.Pricing.QuoteCacheSize = envOrDefaultInt("FARERAIL_QUOTE_CACHE_SIZE", 1024)
	cfg.Log.Level = envOrDefault("FARERAIL_LOG_LEVEL", "info")
	cfg.Log.File = os.Getenv("FARERAIL_LOG_FILE")
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Source.Kind {
	case SourceFile:
	case SourcePostgres:
		if c.DB.DSN == "" {
			return errors.New("FARERAIL_DB_DSN is required when FARERAIL_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("FARERAIL_SOURCE must be %q or %q, got %q", SourceFile, SourcePostgres, c.Source.Kind)
	}
	if c.Pricing.QuoteCacheSize < 0 {
		return errors.New("FARERAIL_QUOTE_CACHE_SIZE must not be negative")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// envOrDefaultList splits a comma-separated value, dropping blanks.
func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
