package config

// Default values.
const (
	DefaultDataDir         = "~/.taskdeck"
	DefaultStoreKey        = "tasks"
	DefaultMaxStorageBytes = 5 << 20
	DefaultFilter          = "all"
	DefaultLogLevel        = "info"
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// DataDir is where the file-backed key-value store lives.
	DataDir string `toml:"data_dir"`

	// StoreKey is the key the task blob is stored under.
	StoreKey string `toml:"store_key"`

	// MaxStorageBytes caps the aggregate size of the data directory.
	MaxStorageBytes int64 `toml:"max_storage_bytes"`

	// Filter is the view selector the CLI and TUI start with
	// (all, active, or completed). Session-local, never persisted
	// with the tasks.
	Filter string `toml:"default_filter"`

	// LogLevel controls console logging (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// setDefaults fills cfg with the built-in defaults.
func setDefaults(cfg *Config) {
	cfg.DataDir = DefaultDataDir
	cfg.StoreKey = DefaultStoreKey
	cfg.MaxStorageBytes = DefaultMaxStorageBytes
	cfg.Filter = DefaultFilter
	cfg.LogLevel = DefaultLogLevel
}
