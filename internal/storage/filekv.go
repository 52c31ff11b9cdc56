package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultQuota is the default byte budget for a file store, matching
// the ~5 MB ceiling of the browser storage this format originated in.
const DefaultQuota = 5 << 20

// FileKV stores each key as a JSON file in a directory, with an
// aggregate byte quota across all keys. Writes go through a temp file
// and rename so a crash never leaves a half-written value behind.
type FileKV struct {
	dir   string
	quota int64
}

// NewFileKV creates the directory if needed. quota <= 0 selects
// DefaultQuota.
func NewFileKV(dir string, quota int64) (*FileKV, error) {
	if quota <= 0 {
		quota = DefaultQuota
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileKV{dir: dir, quota: quota}, nil
}

// Dir returns the backing directory.
func (f *FileKV) Dir() string {
	return f.dir
}

// Quota returns the byte budget.
func (f *FileKV) Quota() int64 {
	return f.quota
}

// Get reads the value for key.
func (f *FileKV) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %q: %w", key, err)
	}
	return data, true, nil
}

// Set writes value under key atomically, enforcing the quota over the
// store as a whole.
func (f *FileKV) Set(key string, value []byte) error {
	used, err := f.usedBytes(key)
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if used+int64(len(value)) > f.quota {
		return fmt.Errorf("write %q (%d bytes): %w", key, len(value), ErrQuotaExceeded)
	}

	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (f *FileKV) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// UsedBytes reports the bytes currently consumed by all keys.
func (f *FileKV) UsedBytes() (int64, error) {
	return f.usedBytes("")
}

// usedBytes sums value sizes, skipping excludeKey so Set can count a
// replacement against the quota instead of double-counting.
func (f *FileKV) usedBytes(excludeKey string) (int64, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0, err
	}
	excludeName := ""
	if excludeKey != "" {
		excludeName = sanitizeKey(excludeKey) + ".json"
	}
	var total int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if entry.Name() == excludeName {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, sanitizeKey(key)+".json")
}

// sanitizeKey maps a key to a safe filename.
func sanitizeKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return "value"
	}

	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			b.WriteByte('_')
			continue
		}
		b.WriteByte(c)
	}

	cleaned := strings.Trim(b.String(), "_")
	if cleaned == "" {
		return "value"
	}
	return cleaned
}
