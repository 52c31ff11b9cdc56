package config

// ExampleConfig returns an example configuration showing all available
// options. The init command writes it as a starting point.
func ExampleConfig() string {
	return `# taskdeck configuration file
# Values can be overridden by TASKDECK_* environment variables or CLI flags

# Data directory for the task store (supports ~ expansion)
data_dir = "~/.taskdeck"

# Key the task blob is stored under
store_key = "tasks"

# Storage quota in bytes (default 5 MiB)
max_storage_bytes = 5242880

# Filter the CLI and TUI start with: all, active, or completed
default_filter = "all"

# Console log level: debug, info, warn, or error
log_level = "info"
`
}
