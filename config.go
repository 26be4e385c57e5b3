package sqll

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sqll/sqlerr"
)

// Config controls how a Client opens and tunes its SQLite database.
//
// The zero value is not usable; start from DefaultConfig and override
// fields, or load a YAML file with LoadConfig.
type Config struct {
	// Path is the database file path. ":memory:" opens an in-memory
	// database.
	Path string `yaml:"path"`

	// BusyTimeoutMS is the lock-contention timeout in milliseconds.
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`

	// JournalMode is the journal mode pragma (WAL, DELETE, TRUNCATE,
	// PERSIST, MEMORY, OFF).
	JournalMode string `yaml:"journal_mode"`

	// Synchronous is the synchronous pragma (OFF, NORMAL, FULL, EXTRA).
	Synchronous string `yaml:"synchronous"`

	// CacheSizeKB is the page cache size in kibibytes.
	CacheSizeKB int `yaml:"cache_size_kb"`

	// TempStore is the temp_store pragma (DEFAULT, FILE, MEMORY).
	TempStore string `yaml:"temp_store"`

	// MmapSize is the memory-mapped I/O window in bytes. Zero disables
	// memory mapping.
	MmapSize int64 `yaml:"mmap_size"`

	// ForeignKeys enables foreign key enforcement.
	ForeignKeys bool `yaml:"foreign_keys"`

	// MaxOpenConns and MaxIdleConns bound the database/sql pool. SQLite
	// supports a single writer, so both default to 1.
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`

	// Logger receives structured diagnostics. Defaults to slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the recommended configuration for a database at
// path: WAL journaling, NORMAL synchronous, 2 MiB cache, in-memory temp
// store, 128 MiB mmap window, foreign keys on, 5 second busy timeout.
func DefaultConfig(path string) Config {
	return Config{
		Path:          path,
		BusyTimeoutMS: 5000,
		JournalMode:   "WAL",
		Synchronous:   "NORMAL",
		CacheSizeKB:   2048,
		TempStore:     "MEMORY",
		MmapSize:      134217728,
		ForeignKeys:   true,
		MaxOpenConns:  1,
		MaxIdleConns:  1,
	}
}

// LoadConfig reads a YAML configuration file. Fields absent from the file
// keep their DefaultConfig values; the file must set path.
func LoadConfig(file string) (Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, sqlerr.NewConfiguration("file", fmt.Sprintf("cannot read config file: %v", err))
	}

	cfg := DefaultConfig("")
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, sqlerr.NewConfiguration("file", fmt.Sprintf("cannot parse config file: %v", err))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	validJournalModes = []string{"DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF"}
	validSynchronous  = []string{"OFF", "NORMAL", "FULL", "EXTRA"}
	validTempStores   = []string{"DEFAULT", "FILE", "MEMORY"}
)

func (c *Config) validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return sqlerr.NewConfiguration("path", "database path is required")
	}
	if c.BusyTimeoutMS < 0 {
		return sqlerr.NewConfiguration("busy_timeout_ms", "busy timeout must be non-negative")
	}
	if c.CacheSizeKB < 0 {
		return sqlerr.NewConfiguration("cache_size_kb", "cache size must be non-negative")
	}
	if c.MmapSize < 0 {
		return sqlerr.NewConfiguration("mmap_size", "mmap size must be non-negative")
	}
	if c.MaxOpenConns < 1 || c.MaxIdleConns < 0 {
		return sqlerr.NewConfiguration("max_open_conns", "connection limits must be positive")
	}
	if !oneOf(c.JournalMode, validJournalModes) {
		return sqlerr.NewConfiguration("journal_mode", fmt.Sprintf("unsupported journal mode %q", c.JournalMode))
	}
	if !oneOf(c.Synchronous, validSynchronous) {
		return sqlerr.NewConfiguration("synchronous", fmt.Sprintf("unsupported synchronous mode %q", c.Synchronous))
	}
	if !oneOf(c.TempStore, validTempStores) {
		return sqlerr.NewConfiguration("temp_store", fmt.Sprintf("unsupported temp store %q", c.TempStore))
	}
	return nil
}

func oneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return true
		}
	}
	return false
}

// pragmas returns the PRAGMA statements applied to a fresh connection.
func (c *Config) pragmas() []string {
	fk := "OFF"
	if c.ForeignKeys {
		fk = "ON"
	}
	return []string{
		"PRAGMA journal_mode = " + strings.ToUpper(c.JournalMode),
		"PRAGMA synchronous = " + strings.ToUpper(c.Synchronous),
		fmt.Sprintf("PRAGMA busy_timeout = %d", c.BusyTimeoutMS),
		"PRAGMA foreign_keys = " + fk,
		// Negative cache_size is interpreted by SQLite as kibibytes.
		fmt.Sprintf("PRAGMA cache_size = -%d", c.CacheSizeKB),
		"PRAGMA temp_store = " + strings.ToUpper(c.TempStore),
		fmt.Sprintf("PRAGMA mmap_size = %d", c.MmapSize),
	}
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
