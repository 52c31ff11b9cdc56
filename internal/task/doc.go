// Package task implements the task store: validated CRUD over an
// ordered task collection, persisted as a single JSON blob in a
// key-value store.
//
// The persisted blob format:
//
//	{
//	  "tasks": [
//	    {
//	      "id": 1,
//	      "text": "Buy milk",
//	      "completed": false,
//	      "createdAt": "2026-01-01T00:00:00Z",
//	      "completedAt": null,
//	      "deadline": null
//	    }
//	  ],
//	  "taskIdCounter": 1,
//	  "lastSaved": "2026-01-01T00:00:00Z"
//	}
//
// # Invariants
//
//   - ids are positive, unique, and never reused, even after deletion
//     or a full clear
//   - trimmed task text is non-empty, at most 100 characters, and
//     unique case-insensitively
//   - completedAt is set exactly while completed is true
//
// # Error handling
//
// Validation (ErrEmptyText, ErrTooLong, ErrDuplicateText,
// ErrInvalidFilter) and lookup (ErrNotFound) errors leave state
// untouched and are meant to be shown inline. Persistence failures
// never fail the mutation that triggered them: the store keeps
// operating in memory and records a save warning.
//
// # Loading
//
// Loading is tolerant. A missing or unparseable blob yields
// an empty store; individual malformed entries are dropped without
// aborting the rest; the id counter is reconciled against the highest
// loaded id so restored ids can never be handed out again.
package task
