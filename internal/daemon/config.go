// Package daemon wires the loyalty backend together: config, store, services,
// HTTP server.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pumppoints/pumppoints/internal/domain"
)

// Config is the daemon configuration, loaded from TOML.
type Config struct {
	API     APIConfig     `toml:"api"`
	DB      DBConfig      `toml:"db"`
	Ledger  LedgerConfig  `toml:"ledger"`
	Metrics MetricsConfig `toml:"metrics"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DBConfig controls the SQLite store.
type DBConfig struct {
	Path        string `toml:"path"`
	BusyTimeout string `toml:"busy_timeout"`
}

// LedgerConfig controls ledger policy.
//
// AccrualPolicy is the single, documented choice among the source system's
// three divergent formulas: "per-ten" (floor(amount/10), the default),
// "per-unit" (floor(amount)), or "direct" (amount taken as points).
type LedgerConfig struct {
	AccrualPolicy string `toml:"accrual_policy"`
	IDMaxAttempts int    `toml:"id_max_attempts"`
	OpTimeout     string `toml:"op_timeout"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 3000,
		},
		DB: DBConfig{
			Path:        defaultDBPath(),
			BusyTimeout: "5s",
		},
		Ledger: LedgerConfig{
			AccrualPolicy: string(domain.AccrualPerTen),
			IDMaxAttempts: 5,
			OpTimeout:     "5s",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// LoadConfig reads TOML from path over the defaults. A missing file is not an
// error — defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = defaultConfigPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if !domain.AccrualPolicy(cfg.Ledger.AccrualPolicy).Valid() {
		return cfg, fmt.Errorf("unknown accrual_policy %q", cfg.Ledger.AccrualPolicy)
	}
	return cfg, nil
}

// Addr returns the host:port the API listens on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// BusyTimeout parses the store busy timeout, falling back to the default.
func (c Config) BusyTimeout() time.Duration {
	return parseDuration(c.DB.BusyTimeout, 5*time.Second)
}

// OpTimeout parses the ledger operation timeout, falling back to the default.
func (c Config) OpTimeout() time.Duration {
	return parseDuration(c.Ledger.OpTimeout, 5*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func defaultConfigPath() string {
	if env := os.Getenv("PUMPPOINTS_HOME"); env != "" {
		return filepath.Join(env, "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pumppoints", "config.toml")
}

func defaultDBPath() string {
	if env := os.Getenv("PUMPPOINTS_HOME"); env != "" {
		return filepath.Join(env, "pumppoints.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pumppoints", "pumppoints.db")
}
