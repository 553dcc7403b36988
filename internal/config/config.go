// Package config loads engine settings from BF_* environment variables,
// with optional command-line flag overrides.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/bishopforge/internal/backend"
)

// Environment variable names.
const (
	EnvBackend        = "BF_BACKEND"
	EnvWorkers        = "BF_WORKERS"
	EnvBatchThreshold = "BF_BATCH_THRESHOLD"
	EnvLogLevel       = "BF_LOG_LEVEL"
	EnvLogFormat      = "BF_LOG_FORMAT"
	EnvCacheEnabled   = "BF_CACHE_ENABLED"
	EnvCacheTTL       = "BF_CACHE_TTL"
	EnvCacheMaxCost   = "BF_CACHE_MAX_COST"
	EnvCacheDir       = "BF_CACHE_DIR"
	EnvDebug          = "BF_DEBUG"
)

// CacheDirDefault as CacheDir selects the platform cache directory.
const CacheDirDefault = "default"

// Config holds every runtime setting.
type Config struct {
	Backend        backend.Kind
	Workers        int
	BatchThreshold int

	LogLevel  string
	LogFormat string

	CacheEnabled bool
	CacheTTL     time.Duration
	CacheMaxCost int64
	CacheDir     string

	Debug bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend:        backend.KindAuto,
		BatchThreshold: 1,
		LogLevel:       "info",
		LogFormat:      "json",
		CacheTTL:       5 * time.Minute,
		CacheMaxCost:   64 << 20,
	}
}

// Load reads the process environment on top of Default.
func Load() (Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads settings through lookup, which has the signature of
// os.LookupEnv.
func LoadFrom(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var err error

	if v, ok := lookup(EnvBackend); ok {
		if cfg.Backend, err = backend.ParseKind(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvBackend, err)
		}
	}
	if v, ok := lookup(EnvWorkers); ok {
		if cfg.Workers, err = parseNonNegative(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
	}
	if v, ok := lookup(EnvBatchThreshold); ok {
		if cfg.BatchThreshold, err = parseNonNegative(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvBatchThreshold, err)
		}
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvCacheEnabled); ok {
		if cfg.CacheEnabled, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCacheEnabled, err)
		}
	}
	if v, ok := lookup(EnvCacheTTL); ok {
		if cfg.CacheTTL, err = time.ParseDuration(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
	}
	if v, ok := lookup(EnvCacheMaxCost); ok {
		if cfg.CacheMaxCost, err = strconv.ParseInt(v, 10, 64); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCacheMaxCost, err)
		}
	}
	if v, ok := lookup(EnvCacheDir); ok {
		cfg.CacheDir = v
	}
	if v, ok := lookup(EnvDebug); ok {
		if cfg.Debug, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvDebug, err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q: want debug, info, warn or error", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log format %q: want json or console", c.LogFormat)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.CacheTTL)
	}
	if c.CacheMaxCost <= 0 {
		return fmt.Errorf("cache max cost must be positive, got %d", c.CacheMaxCost)
	}
	return nil
}

// BackendOptions returns the backend selection options.
func (c *Config) BackendOptions() backend.Options {
	return backend.Options{
		Kind:           c.Backend,
		Workers:        c.Workers,
		BatchThreshold: c.BatchThreshold,
	}
}

// RegisterFlags binds flags that override the loaded values. Call
// Validate after fs.Parse.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("backend", "execution backend: auto, scalar or parallel (env "+EnvBackend+")", func(s string) error {
		k, err := backend.ParseKind(s)
		if err != nil {
			return err
		}
		c.Backend = k
		return nil
	})
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel lanes, 0 = GOMAXPROCS (env "+EnvWorkers+")")
	fs.IntVar(&c.BatchThreshold, "batch-threshold", c.BatchThreshold, "smallest batch using parallel kernels (env "+EnvBatchThreshold+")")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error (env "+EnvLogLevel+")")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "json or console (env "+EnvLogFormat+")")
	fs.BoolVar(&c.CacheEnabled, "cache", c.CacheEnabled, "cache single-position results (env "+EnvCacheEnabled+")")
	fs.DurationVar(&c.CacheTTL, "cache-ttl", c.CacheTTL, "cache entry lifetime (env "+EnvCacheTTL+")")
	fs.StringVar(&c.CacheDir, "cache-dir", c.CacheDir, "persistent cache directory, \""+CacheDirDefault+"\" for the platform location (env "+EnvCacheDir+")")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "panic on invalid move records (env "+EnvDebug+")")
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must be >= 0, got %d", n)
	}
	return n, nil
}
