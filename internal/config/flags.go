package config

import "flag"

// parseFlags registers the global flags on fs and applies any that
// were set. Flag defaults are the already-layered values, so an unset
// flag changes nothing.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	dataDir := fs.String("data-dir", cfg.DataDir, "Data directory for the task store")
	storeKey := fs.String("store-key", cfg.StoreKey, "Key the task blob is stored under")
	maxBytes := fs.Int64("max-storage-bytes", cfg.MaxStorageBytes, "Storage quota in bytes")
	filter := fs.String("filter", cfg.Filter, "Initial filter (all|active|completed)")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.DataDir = *dataDir
	cfg.StoreKey = *storeKey
	cfg.MaxStorageBytes = *maxBytes
	cfg.Filter = *filter
	cfg.LogLevel = *logLevel
	return nil
}
