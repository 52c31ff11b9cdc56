package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// confirmKind identifies which destructive action is awaiting a
// decision.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmClearCompleted
)

// Model is the Bubble Tea model for the task list. All mutations go
// through the store; the view is re-derived from store state after
// every update.
type Model struct {
	store   *task.Store
	visible []task.Task
	cursor  int
	mode    mode
	input   textinput.Model
	status  string

	confirm    confirmKind
	pendingDel *task.Task
	editingID  int
}

func newModel(store *task.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "Task text"
	ti.CharLimit = task.MaxTextLen
	ti.Width = 40

	m := Model{
		store:  store,
		input:  ti,
		status: "Press 'a' to add, space to toggle, 'd' to delete, 'f' to change filter.",
	}
	m.reload()
	return m
}

// reload re-derives the visible list from store state.
func (m *Model) reload() {
	m.visible = m.store.Filtered()
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirm != confirmNone {
			return m.updateConfirm(msg.String())
		}
		if m.mode == modeAdd || m.mode == modeEdit {
			return m.updateInputMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Add: type the task text and press Enter"
	case "e":
		if len(m.visible) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		t := m.visible[m.cursor]
		if err := m.store.BeginEdit(t.ID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.editingID = t.ID
		m.mode = modeEdit
		m.input.SetValue(t.Text)
		m.input.Focus()
		m.status = fmt.Sprintf("Edit #%d: press Enter to save, Esc to cancel", t.ID)
	case " ", "x":
		if len(m.visible) == 0 {
			return m, nil
		}
		t, err := m.store.Toggle(m.visible[m.cursor].ID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		if t.Completed {
			m.status = fmt.Sprintf("Completed #%d", t.ID)
		} else {
			m.status = fmt.Sprintf("Reopened #%d", t.ID)
		}
		m.noteSaveWarning()
		m.reload()
	case "d":
		if len(m.visible) == 0 {
			return m, nil
		}
		t := m.visible[m.cursor]
		m.confirm = confirmDelete
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Text)
	case "c":
		m.confirm = confirmClearCompleted
		m.status = "Clear all completed tasks? y/n"
	case "f":
		m.cycleFilter()
	}
	return m, nil
}

func (m Model) updateInputMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		if m.mode == modeEdit {
			m.store.CancelEdit()
		}
		m.closeInput("Cancelled")
		return m, nil
	case "enter":
		text := m.input.Value()
		if m.mode == modeAdd {
			t, err := m.store.Create(text, nil)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.noteSaveWarning()
			m.closeInput(fmt.Sprintf("Added #%d", t.ID))
			m.cursor = len(m.visible) - 1
			return m, nil
		}
		t, err := m.store.Update(m.editingID, text)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.store.CancelEdit()
		m.noteSaveWarning()
		m.closeInput(fmt.Sprintf("Updated #%d", t.ID))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		switch m.confirm {
		case confirmDelete:
			if m.pendingDel != nil {
				if err := m.store.Delete(m.pendingDel.ID); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("Deleted #%d", m.pendingDel.ID)
					m.noteSaveWarning()
				}
			}
		case confirmClearCompleted:
			m.store.ClearCompleted()
			m.status = "Cleared completed tasks"
			m.noteSaveWarning()
		}
		m.confirm = confirmNone
		m.pendingDel = nil
		m.reload()
		return m, nil
	case "n", "N", "esc":
		m.confirm = confirmNone
		m.pendingDel = nil
		m.status = "Cancelled"
		return m, nil
	default:
		return m, nil
	}
}

// closeInput leaves add/edit mode and resets the text input.
func (m *Model) closeInput(status string) {
	m.input.SetValue("")
	m.input.Blur()
	m.mode = modeList
	m.editingID = 0
	m.status = status
	m.reload()
}

func (m *Model) cycleFilter() {
	next := task.FilterAll
	switch m.store.Filter() {
	case task.FilterAll:
		next = task.FilterActive
	case task.FilterActive:
		next = task.FilterCompleted
	}
	if err := m.store.SetFilter(next); err != nil {
		m.status = err.Error()
		return
	}
	m.cursor = 0
	m.status = fmt.Sprintf("Filter: %s", next)
	m.reload()
}

// noteSaveWarning surfaces a failed persistence write after a
// successful mutation.
func (m *Model) noteSaveWarning() {
	if m.store.SaveWarning() != nil {
		m.status = task.SaveFailedMessage
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("taskdeck"))
	b.WriteString("  ")
	b.WriteString(filterStyle.Render(fmt.Sprintf("[%s]", m.store.Filter())))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(emptyStyle.Render("No tasks here. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		for i, t := range m.visible {
			b.WriteString(m.renderTask(i, t))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	st := m.store.Statistics()
	b.WriteString(statsStyle.Render(fmt.Sprintf("%d total • %d active • %d done • %d%%",
		st.Total, st.Active, st.Completed, st.CompletionRate)))
	b.WriteString("\n")

	if m.mode == modeAdd || m.mode == modeEdit {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status == task.SaveFailedMessage {
		b.WriteString(warnStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k move • a add • e edit • space toggle • d delete • c clear done • f filter • q quit"))

	return b.String()
}

func (m Model) renderTask(i int, t task.Task) string {
	cursor := "  "
	if m.cursor == i && m.mode == modeList && m.confirm == confirmNone {
		cursor = cursorStyle.Render("> ")
	}

	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}

	line := fmt.Sprintf("#%d %s", t.ID, t.Text)
	if t.Deadline != nil {
		line += deadlineStyle.Render(fmt.Sprintf(" (due %s)", t.Deadline.Format("2006-01-02")))
	}
	if t.Completed {
		line = doneStyle.Render(line)
	}

	return cursor + checkbox + " " + line
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
