package task

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLen is the longest task text accepted, in runes, after
// surrounding whitespace is trimmed.
const MaxTextLen = 100

// Validation, lookup, and filter errors surfaced by the store. All of
// them are recoverable: the caller shows the message and state is left
// untouched.
var (
	ErrEmptyText     = errors.New("task text is empty")
	ErrTooLong       = errors.New("task text exceeds 100 characters")
	ErrDuplicateText = errors.New("a task with this text already exists")
	ErrNotFound      = errors.New("task not found")
	ErrInvalidFilter = errors.New("invalid filter")
)

// SaveFailedMessage is shown to the user when a persistence write
// fails. The task still exists in memory; it just may not survive a
// restart.
const SaveFailedMessage = "Failed to save tasks. Storage might be full."

// Filter selects a view over the task collection.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter normalizes a user-supplied filter name.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterAll:
		return FilterAll, nil
	case FilterActive:
		return FilterActive, nil
	case FilterCompleted:
		return FilterCompleted, nil
	default:
		return "", ErrInvalidFilter
	}
}

// Task is a single to-do item.
//
// The JSON tags are the persistence wire format: IDs are positive
// integers that are never reused, text is unique case-insensitively,
// and CompletedAt is set exactly while Completed is true.
type Task struct {
	ID          int        `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Deadline    *time.Time `json:"deadline"`
}

// Statistics is a derived summary of the collection. CompletionRate is
// a rounded percentage, 0 for an empty collection.
type Statistics struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Active         int `json:"active"`
	CompletionRate int `json:"completionRate"`
}

// normalizeText trims text and applies the empty/length rules.
func normalizeText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(trimmed) > MaxTextLen {
		return "", ErrTooLong
	}
	return trimmed, nil
}
