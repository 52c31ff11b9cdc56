package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at temp dirs so tests
// never pick up a real config file.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	work := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
	return work
}

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	return Load(fs, args)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !strings.HasSuffix(cfg.DataDir, ".taskdeck") {
		t.Errorf("DataDir = %q, want expanded ~/.taskdeck", cfg.DataDir)
	}
	if strings.HasPrefix(cfg.DataDir, "~") {
		t.Errorf("DataDir = %q, ~ was not expanded", cfg.DataDir)
	}
	if cfg.StoreKey != "tasks" {
		t.Errorf("StoreKey = %q, want tasks", cfg.StoreKey)
	}
	if cfg.MaxStorageBytes != DefaultMaxStorageBytes {
		t.Errorf("MaxStorageBytes = %d, want %d", cfg.MaxStorageBytes, int64(DefaultMaxStorageBytes))
	}
	if cfg.Filter != "all" {
		t.Errorf("Filter = %q, want all", cfg.Filter)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadProjectConfigFile(t *testing.T) {
	work := isolate(t)
	content := `data_dir = "./data"
store_key = "mytasks"
max_storage_bytes = 1024
default_filter = "active"
log_level = "debug"
`
	if err := os.WriteFile(filepath.Join(work, "taskdeck.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("DataDir = %q, want ./data", cfg.DataDir)
	}
	if cfg.StoreKey != "mytasks" {
		t.Errorf("StoreKey = %q, want mytasks", cfg.StoreKey)
	}
	if cfg.MaxStorageBytes != 1024 {
		t.Errorf("MaxStorageBytes = %d, want 1024", cfg.MaxStorageBytes)
	}
	if cfg.Filter != "active" {
		t.Errorf("Filter = %q, want active", cfg.Filter)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadUserConfigFile(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".taskdeck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "taskdeck.toml"), []byte(`default_filter = "completed"`), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Filter != "completed" {
		t.Errorf("Filter = %q, want completed from user config", cfg.Filter)
	}
}

func TestLoadProjectOverridesUser(t *testing.T) {
	work := isolate(t)
	home := os.Getenv("HOME")
	userDir := filepath.Join(home, ".taskdeck")
	os.MkdirAll(userDir, 0755)
	os.WriteFile(filepath.Join(userDir, "taskdeck.toml"), []byte(`default_filter = "completed"`), 0644)
	os.WriteFile(filepath.Join(work, "taskdeck.toml"), []byte(`default_filter = "active"`), 0644)

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Filter != "active" {
		t.Errorf("Filter = %q, want project config to win", cfg.Filter)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	work := isolate(t)
	os.WriteFile(filepath.Join(work, "taskdeck.toml"), []byte(`default_filter = "active"`), 0644)
	t.Setenv("TASKDECK_FILTER", "completed")
	t.Setenv("TASKDECK_STORE_KEY", "envtasks")
	t.Setenv("TASKDECK_MAX_STORAGE_BYTES", "2048")

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Filter != "completed" {
		t.Errorf("Filter = %q, want env to override file", cfg.Filter)
	}
	if cfg.StoreKey != "envtasks" {
		t.Errorf("StoreKey = %q, want envtasks", cfg.StoreKey)
	}
	if cfg.MaxStorageBytes != 2048 {
		t.Errorf("MaxStorageBytes = %d, want 2048", cfg.MaxStorageBytes)
	}
}

func TestLoadFlagOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TASKDECK_FILTER", "completed")

	cfg, err := load(t, "-filter", "active", "-max-storage-bytes", "4096")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Filter != "active" {
		t.Errorf("Filter = %q, want flag to override env", cfg.Filter)
	}
	if cfg.MaxStorageBytes != 4096 {
		t.Errorf("MaxStorageBytes = %d, want 4096", cfg.MaxStorageBytes)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad filter", []string{"-filter", "urgent"}},
		{"zero quota", []string{"-max-storage-bytes", "0"}},
		{"negative quota", []string{"-max-storage-bytes", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if _, err := load(t, tt.args...); err == nil {
				t.Errorf("Load(%v) expected error", tt.args)
			}
		})
	}
}

func TestLoadNormalizesFilterCase(t *testing.T) {
	isolate(t)
	cfg, err := load(t, "-filter", "  Active ")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Filter != "active" {
		t.Errorf("Filter = %q, want normalized active", cfg.Filter)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/x", filepath.Join(home, "x")},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
