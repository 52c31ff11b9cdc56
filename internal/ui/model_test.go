package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/storage"
	"taskdeck/internal/task"
)

func newTestModel(t *testing.T, texts ...string) (Model, *storage.MemKV) {
	t.Helper()
	kv := storage.NewMemKV(0)
	store := task.NewStore(task.NewRepository(kv, task.DefaultKey, nil), nil)
	for _, text := range texts {
		_, err := store.Create(text, nil)
		require.NoError(t, err)
	}
	return newModel(store), kv
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestAddFlow(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "a")
	m = typeText(m, "write tests")
	m = press(m, "enter")

	require.Len(t, m.visible, 1)
	assert.Equal(t, "write tests", m.visible[0].Text)
	assert.Equal(t, modeList, m.mode)
	assert.Contains(t, m.status, "Added")
}

func TestAddRejectedKeepsInput(t *testing.T) {
	m, _ := newTestModel(t, "dup")

	m = press(m, "a")
	m = typeText(m, "dup")
	m = press(m, "enter")

	// Store rejected the duplicate; input mode stays open for a fix.
	assert.Equal(t, modeAdd, m.mode)
	assert.Equal(t, task.ErrDuplicateText.Error(), m.status)
	require.Len(t, m.store.Tasks(), 1)
}

func TestEditFlow(t *testing.T) {
	m, _ := newTestModel(t, "old text")

	m = press(m, "e")
	assert.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "old text", m.input.Value())
	assert.Equal(t, m.visible[0].ID, m.store.EditingID())

	m = typeText(m, "!")
	m = press(m, "enter")

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, 0, m.store.EditingID())
	assert.Equal(t, "old text!", m.visible[0].Text)
}

func TestEditEscapeCancels(t *testing.T) {
	m, _ := newTestModel(t, "keep me")

	m = press(m, "e")
	m = typeText(m, " changed")
	m = press(m, "esc")

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, 0, m.store.EditingID())
	assert.Equal(t, "keep me", m.visible[0].Text)
}

func TestToggleKey(t *testing.T) {
	m, _ := newTestModel(t, "a")

	m = press(m, " ")
	assert.True(t, m.visible[0].Completed)

	m = press(m, "x")
	assert.False(t, m.visible[0].Completed)
}

func TestDeleteConfirm(t *testing.T) {
	t.Run("y deletes", func(t *testing.T) {
		m, _ := newTestModel(t, "doomed")
		m = press(m, "d", "y")
		assert.Empty(t, m.visible)
	})

	t.Run("n keeps", func(t *testing.T) {
		m, _ := newTestModel(t, "survivor")
		m = press(m, "d", "n")
		require.Len(t, m.visible, 1)
		assert.Equal(t, confirmNone, m.confirm)
	})
}

func TestClearCompletedConfirm(t *testing.T) {
	m, _ := newTestModel(t, "active", "done")
	m = press(m, "j", " ", "k") // complete the second task
	m = press(m, "c", "y")

	require.Len(t, m.visible, 1)
	assert.Equal(t, "active", m.visible[0].Text)
}

func TestFilterCycle(t *testing.T) {
	m, _ := newTestModel(t, "active", "done")
	m = press(m, "j", " ") // complete the second task

	assert.Equal(t, task.FilterAll, m.store.Filter())
	m = press(m, "f")
	assert.Equal(t, task.FilterActive, m.store.Filter())
	require.Len(t, m.visible, 1)

	m = press(m, "f")
	assert.Equal(t, task.FilterCompleted, m.store.Filter())

	m = press(m, "f")
	assert.Equal(t, task.FilterAll, m.store.Filter())
	assert.Len(t, m.visible, 2)
}

func TestCursorClamping(t *testing.T) {
	m, _ := newTestModel(t, "a", "b")

	m = press(m, "k")
	assert.Equal(t, 0, m.cursor)

	m = press(m, "j", "j", "j")
	assert.Equal(t, 1, m.cursor)

	// Deleting the last visible task pulls the cursor back in range.
	m = press(m, "d", "y")
	assert.Equal(t, 0, m.cursor)
}

func TestSaveWarningShown(t *testing.T) {
	m, kv := newTestModel(t, "a")
	kv.FailWrites(errors.New("quota"))

	m = press(m, " ")
	assert.Equal(t, task.SaveFailedMessage, m.status)
	assert.True(t, m.visible[0].Completed, "mutation must survive a failed save")
}

func TestViewRendersTasks(t *testing.T) {
	m, _ := newTestModel(t, "write tests")
	m = press(m, " ")

	view := m.View()
	assert.Contains(t, view, "taskdeck")
	assert.Contains(t, view, "write tests")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "1 total")
}

func TestViewEmptyState(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "No tasks here")
	assert.Contains(t, strings.ToLower(view), "0 total")
}
