package tasklist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/estudai/estudai/internal/models"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: 1, Title: "Lista de cálculo", Type: models.TaskTypeActivity, DueAt: "20/11/2025 08:00"},
		{ID: 2, Title: "Prova de física", Type: models.TaskTypeExam, Completed: true, SubjectName: "Física"},
	}
}

func newModel(selectionMode bool, selected ...int64) Model {
	m := New(80, 20)
	m.SetTasks(sampleTasks(), selectionMode, func(id int64) bool {
		for _, s := range selected {
			if s == id {
				return true
			}
		}
		return false
	})
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestItemRendering(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name      string
		item      Item
		wantTitle string
		wantDesc  []string
	}{
		{
			name:      "pending",
			item:      Item{Task: tasks[0]},
			wantTitle: "○ Lista de cálculo",
			wantDesc:  []string{tasks[0].Type.Label(), "20/11/2025 08:00", "-"},
		},
		{
			name:      "completed with subject",
			item:      Item{Task: tasks[1]},
			wantTitle: "✓ Prova de física",
			wantDesc:  []string{"sem prazo", "Física"},
		},
		{
			name:      "selected in selection mode",
			item:      Item{Task: tasks[0], SelectionMode: true, Selected: true},
			wantTitle: "[x] ○ Lista de cálculo",
		},
		{
			name:      "unselected in selection mode",
			item:      Item{Task: tasks[1], SelectionMode: true},
			wantTitle: "[ ] ✓ Prova de física",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Title(); got != tt.wantTitle {
				t.Errorf("Title() = %q, want %q", got, tt.wantTitle)
			}
			desc := tt.item.Description()
			for _, want := range tt.wantDesc {
				if !strings.Contains(desc, want) {
					t.Errorf("Description() = %q, want it to contain %q", desc, want)
				}
			}
		})
	}
}

func TestUpdateEmitsMessages(t *testing.T) {
	tests := []struct {
		name          string
		selectionMode bool
		key           tea.KeyMsg
		want          tea.Msg
	}{
		{name: "add", key: runeKey("a"), want: AddTaskMsg{}},
		{name: "filter", key: runeKey("f"), want: OpenFilterMsg{}},
		{name: "search", key: runeKey("/"), want: OpenSearchMsg{}},
		{name: "enter selection mode", key: runeKey("v"), want: SelectionModeMsg{On: true}},
		{name: "toggle completion", key: tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, want: ToggleTaskMsg{ID: 1}},
		{name: "edit", key: runeKey("e"), want: EditTaskMsg{ID: 1}},
		{name: "delete", key: runeKey("d"), want: DeleteTaskMsg{ID: 1}},
		{name: "toggle selection", selectionMode: true, key: tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, want: ToggleSelectMsg{ID: 1}},
		{name: "select all", selectionMode: true, key: runeKey("A"), want: SelectAllMsg{}},
		{name: "batch complete", selectionMode: true, key: runeKey("c"), want: BatchMsg{}},
		{name: "batch delete", selectionMode: true, key: runeKey("D"), want: BatchMsg{Delete: true}},
		{name: "leave selection mode", selectionMode: true, key: tea.KeyMsg{Type: tea.KeyEsc}, want: SelectionModeMsg{On: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(tt.selectionMode)
			_, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("Update() returned no command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("Update() message = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBatchKeysIgnoredOutsideSelectionMode(t *testing.T) {
	m := newModel(false)
	for _, k := range []string{"A", "c", "D"} {
		_, cmd := m.Update(runeKey(k))
		if cmd == nil {
			continue
		}
		switch msg := cmd().(type) {
		case SelectAllMsg, BatchMsg:
			t.Errorf("key %q emitted %#v outside selection mode", k, msg)
		}
	}
}

func TestSelectedTaskAndEmptyView(t *testing.T) {
	m := newModel(true, 2)
	task, ok := m.SelectedTask()
	if !ok || task.ID != 1 {
		t.Errorf("SelectedTask() = %v, %v, want task 1", task.ID, ok)
	}
	if !m.SelectionMode() {
		t.Error("SelectionMode() = false, want true")
	}

	empty := New(80, 20)
	if _, ok := empty.SelectedTask(); ok {
		t.Error("SelectedTask() on an empty list should report false")
	}
	if !strings.Contains(empty.View(), "Nenhuma tarefa encontrada") {
		t.Errorf("View() = %q, want the empty-list hint", empty.View())
	}
}
