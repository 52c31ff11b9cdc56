package task

import (
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Store is the in-memory authority for task state. It owns the ordered
// task collection, the monotonic id counter, the current filter, and
// the edit-in-progress marker.
//
// A Store is not safe for concurrent use; callers serialize access the
// way a UI event loop does.
type Store struct {
	tasks     []Task
	nextID    int
	filter    Filter
	editingID int // 0 means no edit in progress

	repo        *Repository
	log         *log.Logger
	lastSaveErr error
}

// NewStore creates a store and hydrates it from repo when one is
// given. A nil repo yields an in-memory-only store; a nil logger
// discards output.
func NewStore(repo *Repository, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{
		filter: FilterAll,
		repo:   repo,
		log:    logger,
	}
	if repo != nil {
		s.tasks, s.nextID = repo.Load()
	}
	return s
}

// Create validates text, allocates the next id, and appends a new
// incomplete task. The deadline is optional.
func (s *Store) Create(text string, deadline *time.Time) (Task, error) {
	trimmed, err := s.validateText(text, 0)
	if err != nil {
		return Task{}, err
	}

	s.nextID++
	t := Task{
		ID:        s.nextID,
		Text:      trimmed,
		CreatedAt: time.Now().UTC(),
	}
	if deadline != nil {
		d := deadline.UTC()
		t.Deadline = &d
	}
	s.tasks = append(s.tasks, t)
	s.persist()
	return t, nil
}

// Toggle flips completion, stamping CompletedAt on the way up and
// clearing it on the way down.
func (s *Store) Toggle(id int) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	t := &s.tasks[i]
	if t.Completed {
		t.Completed = false
		t.CompletedAt = nil
	} else {
		now := time.Now().UTC()
		t.Completed = true
		t.CompletedAt = &now
	}
	s.persist()
	return *t, nil
}

// Update replaces a task's text in place. The duplicate check excludes
// the task itself; id, completion, and timestamps are untouched.
func (s *Store) Update(id int, text string) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	trimmed, err := s.validateText(text, id)
	if err != nil {
		return Task{}, err
	}
	s.tasks[i].Text = trimmed
	s.persist()
	return s.tasks[i], nil
}

// Delete removes the task with id, preserving the order of the rest.
func (s *Store) Delete(id int) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if s.editingID == id {
		s.editingID = 0
	}
	s.persist()
	return nil
}

// SetFilter switches the current view selector. An unrecognized value
// is rejected and the current filter stays in effect.
func (s *Store) SetFilter(f Filter) error {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		s.filter = f
		return nil
	default:
		return ErrInvalidFilter
	}
}

// Filter returns the current view selector.
func (s *Store) Filter() Filter {
	return s.filter
}

// Filtered returns the tasks visible under the current filter, in
// insertion order.
func (s *Store) Filtered() []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		switch s.filter {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Tasks returns a copy of the full collection in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with id.
func (s *Store) Get(id int) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	return s.tasks[i], nil
}

// ClearCompleted removes every completed task, keeping the relative
// order of the rest. It persists even when nothing was removed.
func (s *Store) ClearCompleted() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		} else if s.editingID == t.ID {
			s.editingID = 0
		}
	}
	s.tasks = kept
	s.persist()
}

// ClearAll empties the collection and abandons any edit in progress.
// The id counter is deliberately kept so future ids never collide with
// anything a caller may have cached.
func (s *Store) ClearAll() {
	s.tasks = nil
	s.editingID = 0
	s.persist()
}

// BeginEdit marks a task as being edited. A previous edit in progress
// is abandoned without saving.
func (s *Store) BeginEdit(id int) error {
	if s.index(id) < 0 {
		return ErrNotFound
	}
	s.editingID = id
	return nil
}

// CancelEdit clears the edit marker. No-op when nothing is being
// edited.
func (s *Store) CancelEdit() {
	s.editingID = 0
}

// EditingID returns the id of the task being edited, or 0.
func (s *Store) EditingID() int {
	return s.editingID
}

// Statistics derives the summary counts for the current collection.
func (s *Store) Statistics() Statistics {
	st := Statistics{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Active = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// SaveWarning reports the error from the most recent persistence
// write, or nil. A failed write never fails the mutation that
// triggered it; the presentation layer checks this to warn that state
// may not survive a restart.
func (s *Store) SaveWarning() error {
	return s.lastSaveErr
}

func (s *Store) validateText(text string, excludeID int) (string, error) {
	trimmed, err := normalizeText(text)
	if err != nil {
		return "", err
	}
	for _, t := range s.tasks {
		if t.ID != excludeID && strings.EqualFold(t.Text, trimmed) {
			return "", ErrDuplicateText
		}
	}
	return trimmed, nil
}

func (s *Store) index(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist() {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(s.tasks, s.nextID); err != nil {
		s.lastSaveErr = err
		s.log.Warn("failed to save tasks", "err", err)
		return
	}
	s.lastSaveErr = nil
}
