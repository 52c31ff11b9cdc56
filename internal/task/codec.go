package task

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"taskdeck/internal/storage"
)

// DefaultKey is the key the task blob is stored under.
const DefaultKey = "tasks"

// storeFile is the persisted blob: the full task collection plus the
// id counter. Filter and edit state are session-local and not written.
type storeFile struct {
	Tasks         []Task    `json:"tasks"`
	TaskIDCounter int       `json:"taskIdCounter"`
	LastSaved     time.Time `json:"lastSaved"`
}

// rawStoreFile decodes field-by-field so one malformed field or entry
// cannot abort loading the rest.
type rawStoreFile struct {
	Tasks         []json.RawMessage `json:"tasks"`
	TaskIDCounter json.RawMessage   `json:"taskIdCounter"`
}

// Repository persists store state as a single JSON blob under one key
// of a key-value store.
type Repository struct {
	kv  storage.KV
	key string
	log *log.Logger
}

// NewRepository wires a repository to kv under key. An empty key falls
// back to DefaultKey; a nil logger discards output.
func NewRepository(kv storage.KV, key string, logger *log.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Repository{kv: kv, key: key, log: logger}
}

// Save writes the collection and counter. Write errors (quota, IO) are
// returned for the store to record as a save warning.
func (r *Repository) Save(tasks []Task, nextID int) error {
	f := storeFile{
		Tasks:         tasks,
		TaskIDCounter: nextID,
		LastSaved:     time.Now().UTC(),
	}
	if f.Tasks == nil {
		f.Tasks = []Task{}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if err := r.kv.Set(r.key, data); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// Load reads and decodes the blob, tolerating corruption: a missing or
// unparseable blob yields an empty collection, and malformed entries
// are dropped individually. Load never fails; degradation is logged.
func (r *Repository) Load() ([]Task, int) {
	data, ok, err := r.kv.Get(r.key)
	if err != nil {
		r.log.Warn("failed to read tasks, starting empty", "err", err)
		return nil, 0
	}
	if !ok {
		return nil, 0
	}
	return decodeStore(data, r.log)
}

// decodeStore turns a persisted blob into a valid task collection and
// an effective id counter.
func decodeStore(data []byte, logger *log.Logger) ([]Task, int) {
	var raw rawStoreFile
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("task data is corrupted, starting empty", "err", err)
		return nil, 0
	}

	nextID := 0
	if len(raw.TaskIDCounter) > 0 {
		var n int
		if err := json.Unmarshal(raw.TaskIDCounter, &n); err != nil || n < 0 {
			logger.Warn("stored id counter is unusable, reconciling from task ids")
		} else {
			nextID = n
		}
	}

	var tasks []Task
	seenID := make(map[int]bool)
	seenText := make(map[string]bool)
	maxID := 0
	for i, msg := range raw.Tasks {
		var t Task
		if err := json.Unmarshal(msg, &t); err != nil {
			logger.Warn("dropping malformed task entry", "index", i, "err", err)
			continue
		}
		t.Text = strings.TrimSpace(t.Text)
		if t.ID <= 0 || t.Text == "" {
			logger.Warn("dropping task entry without usable id or text", "index", i)
			continue
		}
		if seenID[t.ID] {
			logger.Warn("dropping task entry with duplicate id", "id", t.ID)
			continue
		}
		lower := strings.ToLower(t.Text)
		if seenText[lower] {
			logger.Warn("dropping task entry with duplicate text", "id", t.ID)
			continue
		}

		// Restore the completedAt-iff-completed invariant.
		if !t.Completed {
			t.CompletedAt = nil
		} else if t.CompletedAt == nil {
			at := t.CreatedAt
			t.CompletedAt = &at
		}

		seenID[t.ID] = true
		seenText[lower] = true
		if t.ID > maxID {
			maxID = t.ID
		}
		tasks = append(tasks, t)
	}

	// A counter behind the highest loaded id would hand out ids that
	// collide with restored tasks.
	if nextID < maxID {
		nextID = maxID
	}
	return tasks, nextID
}
