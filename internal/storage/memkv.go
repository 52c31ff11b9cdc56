package storage

import "fmt"

// MemKV is an in-memory KV used in tests and for running without a
// data directory. It supports the same quota semantics as FileKV plus
// write-failure injection.
type MemKV struct {
	data     map[string][]byte
	quota    int64
	writeErr error
}

// NewMemKV creates an empty in-memory store. quota <= 0 selects
// DefaultQuota.
func NewMemKV(quota int64) *MemKV {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &MemKV{
		data:  make(map[string][]byte),
		quota: quota,
	}
}

// FailWrites makes every subsequent Set return err. Pass nil to heal.
func (m *MemKV) FailWrites(err error) {
	m.writeErr = err
}

// Get returns the value for key.
func (m *MemKV) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set writes value under key, subject to the quota.
func (m *MemKV) Set(key string, value []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	var used int64
	for k, v := range m.data {
		if k == key {
			continue
		}
		used += int64(len(v))
	}
	if used+int64(len(value)) > m.quota {
		return fmt.Errorf("write %q (%d bytes): %w", key, len(value), ErrQuotaExceeded)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Delete removes key.
func (m *MemKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}
