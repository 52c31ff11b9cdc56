// Package storage provides the quota-limited key-value stores the
// task blob persists to.
package storage

import "errors"

// ErrQuotaExceeded is returned by Set when a write would push the
// store past its byte quota. Callers treat it as non-fatal: the write
// is lost but in-memory state stays intact.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KV is a synchronous key-value store. Implementations are not
// required to be safe for concurrent use.
type KV interface {
	// Get returns the value for key. ok is false when the key is
	// absent; err reports read failures only.
	Get(key string) (value []byte, ok bool, err error)
	// Set writes value under key, subject to the store's quota.
	Set(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
