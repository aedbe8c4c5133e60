package tasklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/estudai/estudai/internal/models"
)

type AddTaskMsg struct{}

type EditTaskMsg struct {
	ID int64
}

type DeleteTaskMsg struct {
	ID int64
}

type ToggleTaskMsg struct {
	ID int64
}

type ToggleSelectMsg struct {
	ID int64
}

type SelectAllMsg struct{}

type SelectionModeMsg struct {
	On bool
}

// BatchMsg asks for an action on the selected tasks.
type BatchMsg struct {
	Delete bool
}

type OpenFilterMsg struct{}

type OpenSearchMsg struct{}

type Item struct {
	Task          models.Task
	Selected      bool
	SelectionMode bool
}

func (i Item) Title() string {
	var b strings.Builder
	if i.SelectionMode {
		if i.Selected {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
	}
	if i.Task.Completed {
		b.WriteString("✓ ")
	} else {
		b.WriteString("○ ")
	}
	b.WriteString(i.Task.Title)
	return b.String()
}

func (i Item) Description() string {
	due := i.Task.DueAt
	if due == "" {
		due = "sem prazo"
	}
	desc := fmt.Sprintf("%s · %s · %s", i.Task.Type.Label(), due, i.Task.DifficultyLabel())
	if i.Task.SubjectName != "" {
		desc += " · " + i.Task.SubjectName
	}
	return desc
}

func (i Item) FilterValue() string { return i.Task.Title }

type KeyMap struct {
	Add           key.Binding
	Edit          key.Binding
	Delete        key.Binding
	Toggle        key.Binding
	Selection     key.Binding
	SelectAll     key.Binding
	BatchDone     key.Binding
	BatchDelete   key.Binding
	Filter        key.Binding
	Search        key.Binding
	ExitSelection key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Selection: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select mode"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "select all"),
		),
		BatchDone: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete selected"),
		),
		BatchDelete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete selected"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filters"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ExitSelection: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave select mode"),
		),
	}
}

type Model struct {
	list          list.Model
	keys          KeyMap
	selectionMode bool
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Tarefas"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// Search and filters are applied by the task store, not by the list.
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Filter, keys.Search, keys.Selection}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Toggle, keys.Filter, keys.Search,
			keys.Selection, keys.SelectAll, keys.BatchDone, keys.BatchDelete}
	}

	return Model{list: l, keys: keys}
}

// SetTasks replaces the visible tasks. selected reports the selection state
// of each id.
func (m *Model) SetTasks(tasks []models.Task, selectionMode bool, selected func(int64) bool) {
	m.selectionMode = selectionMode
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t, Selected: selected(t.ID), SelectionMode: selectionMode}
	}
	m.list.SetItems(items)
}

func (m *Model) SetStatus(s string) {
	m.list.Title = s
}

func (m Model) SelectedTask() (models.Task, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Task, true
	}
	return models.Task{}, false
}

func (m Model) SelectionMode() bool {
	return m.selectionMode
}

func (m Model) Init() tea.Cmd {
	return nil
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		current, hasCurrent := m.SelectedTask()
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, send(AddTaskMsg{})
		case key.Matches(msg, m.keys.Filter):
			return m, send(OpenFilterMsg{})
		case key.Matches(msg, m.keys.Search):
			return m, send(OpenSearchMsg{})
		case key.Matches(msg, m.keys.Selection):
			return m, send(SelectionModeMsg{On: !m.selectionMode})
		case m.selectionMode && key.Matches(msg, m.keys.ExitSelection):
			return m, send(SelectionModeMsg{On: false})
		case m.selectionMode && key.Matches(msg, m.keys.SelectAll):
			return m, send(SelectAllMsg{})
		case m.selectionMode && key.Matches(msg, m.keys.BatchDone):
			return m, send(BatchMsg{})
		case m.selectionMode && key.Matches(msg, m.keys.BatchDelete):
			return m, send(BatchMsg{Delete: true})
		case hasCurrent && key.Matches(msg, m.keys.Toggle):
			if m.selectionMode {
				return m, send(ToggleSelectMsg{ID: current.ID})
			}
			return m, send(ToggleTaskMsg{ID: current.ID})
		case hasCurrent && key.Matches(msg, m.keys.Edit):
			return m, send(EditTaskMsg{ID: current.ID})
		case hasCurrent && key.Matches(msg, m.keys.Delete):
			return m, send(DeleteTaskMsg{ID: current.ID})
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nenhuma tarefa encontrada.\n  Press 'a' to add one or 'f' to change the filters."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
