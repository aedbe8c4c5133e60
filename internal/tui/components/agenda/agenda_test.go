package agenda

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/estudai/estudai/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2025, 11, 14, 10, 0, 0, 0, time.UTC)
}

func TestRenderMonth(t *testing.T) {
	hard := models.DifficultyHard
	byDay := map[string][]models.Task{
		"2025-11-14": {
			{Title: "Prova de cálculo", Type: models.TaskTypeExam, Difficulty: &hard},
			{Title: "Lista 3", Type: models.TaskTypeActivity},
		},
	}

	out := RenderMonth(fixedNow(), time.Time{}, fixedNow(), byDay)

	if !strings.Contains(out, "novembro de 2025") {
		t.Errorf("expected month label in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Dom") || !strings.Contains(out, "Sáb") {
		t.Errorf("expected weekday headers in output, got:\n%s", out)
	}
	if !strings.Contains(out, "14pa") {
		t.Errorf("expected type markers on day 14, got:\n%s", out)
	}
}

func TestRenderDay(t *testing.T) {
	medium := models.DifficultyMedium
	tasks := []models.Task{
		{Title: "Relatório", Type: models.TaskTypeAssignment, Difficulty: &medium, DueAt: "14/11/2025 18:00"},
		{Title: "Lista 3", Type: models.TaskTypeActivity, DueAt: "14/11/2025 20:00", Completed: true},
	}
	classes := []models.ScheduleEntry{
		{SubjectName: "Cálculo I", Start: "08:00:00", End: "10:00:00", Location: "B-12"},
	}

	out := RenderDay(fixedNow(), tasks, classes)

	for _, want := range []string{"Sexta, 14 de novembro", "2.5h", "Relatório", "18:00", "1hr ~ 2hr", "08:00-10:00", "B-12"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestRenderDayEmpty(t *testing.T) {
	out := RenderDay(fixedNow(), nil, nil)
	if !strings.Contains(out, "Nenhuma tarefa") {
		t.Errorf("expected empty-day message, got:\n%s", out)
	}
	if strings.Contains(out, "Aulas") {
		t.Errorf("expected no classes section, got:\n%s", out)
	}
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"next day", []string{"l"}, "2025-11-15"},
		{"previous week", []string{"k"}, "2025-11-07"},
		{"next month", []string{"]"}, "2025-12-01"},
		{"previous month", []string{"["}, "2025-10-01"},
		{"back to today", []string{"]", "]", "t"}, "2025-11-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(time.UTC, fixedNow, 100, 40)
			for _, k := range tt.keys {
				m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
			}
			if got := m.Cursor().Format("2006-01-02"); got != tt.want {
				t.Errorf("cursor = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSetData(t *testing.T) {
	m := New(time.UTC, fixedNow, 100, 40)
	m.SetData(
		[]models.Task{{Title: "Lista 3", Type: models.TaskTypeActivity, DueAt: "14/11/2025 20:00"}},
		[]models.ScheduleEntry{{SubjectName: "Física", Weekday: time.Friday, Start: "14:00:00", End: "16:00:00"}},
	)

	view := m.View()
	if !strings.Contains(view, "Lista 3") || !strings.Contains(view, "Física") {
		t.Errorf("expected selected day details in view, got:\n%s", view)
	}
}
