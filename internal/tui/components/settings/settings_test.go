package settings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/estudai/estudai/internal/models"
)

func TestView(t *testing.T) {
	s := models.DefaultSettings()
	s.AlertLeadHours = 48
	profile := models.Profile{ID: "u1", Name: "Ana Souza", Email: "ana@usp.br", Course: "Física"}

	m := New(s, profile, 100, 40)
	view := m.View()
	for _, want := range []string{"Perfil", "Ana Souza", "Física", "Notificações", "48h", "Preferências"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if strings.Contains(view, "Institution:") {
		t.Error("View() should omit an empty institution")
	}
}

func TestViewWithoutProfileOrSize(t *testing.T) {
	m := New(models.DefaultSettings(), models.Profile{}, 0, 0)
	if got := m.View(); got != "" {
		t.Errorf("View() before sizing = %q, want empty", got)
	}

	m.SetSize(100, 40)
	if strings.Contains(m.View(), "Perfil") {
		t.Error("View() should skip the profile section without a profile")
	}
}

func TestEditKey(t *testing.T) {
	m := New(models.DefaultSettings(), models.Profile{}, 100, 40)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if cmd == nil {
		t.Fatal("expected a command for 'e'")
	}
	if _, ok := cmd().(EditSettingsMsg); !ok {
		t.Errorf("expected EditSettingsMsg, got %#v", cmd())
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		t.Error("unexpected command for 'x'")
	}
}

func TestSetSettings(t *testing.T) {
	m := New(models.DefaultSettings(), models.Profile{}, 100, 40)
	s := models.DefaultSettings()
	s.AutoSync = false
	m.SetSettings(s)
	if m.Settings().AutoSync {
		t.Error("Settings().AutoSync = true after SetSettings(false)")
	}
}
