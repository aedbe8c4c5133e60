package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/estudai/estudai/internal/constants"
)

var tabTitles = []string{"Tarefas", "Agenda", "Configurações"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateTasks:
		content = m.viewTasks()
	case constants.StateSearch:
		content = lipgloss.JoinVertical(lipgloss.Left, docStyle.Render(m.search.View()), m.viewTasks())
	case constants.StateAgenda:
		content = docStyle.Render(m.agendaModel.View())
	case constants.StateSettings:
		content = docStyle.Render(m.settingsModel.View())
	case constants.StateEditing, constants.StateFilter, constants.StateEditSettings, constants.StateBatchAction:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var banner string
	if len(m.validationConflicts) > 0 && m.state == constants.StateAgenda {
		banner = m.viewConflictBanner()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.activeTab()
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTasks() string {
	return docStyle.Render(m.taskList.View())
}

func (m Model) viewForm() string {
	if m.formError == "" {
		return docStyle.Render(m.form.View())
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render(m.formError),
		"",
		m.form.View(),
	))
}

func (m Model) viewStatus() string {
	status := m.status
	if m.tasks.Loading() {
		if status == "" {
			status = "Sincronizando..."
		} else {
			status = "Sincronizando... · " + status
		}
	}
	if status == "" {
		return ""
	}
	return warningStyle.Render(status)
}

func (m Model) viewConfirmDelete() string {
	title := "esta tarefa"
	if task, ok := m.tasks.Task(m.taskToDeleteID); ok {
		title = fmt.Sprintf("%q", task.Title)
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Excluir "+title+"?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConflictBanner() string {
	var bannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214")).
		Bold(true).
		Padding(0, 1)

	return bannerStyle.Render(fmt.Sprintf("⚠ %d CONFLITO(S) NA GRADE DE AULAS", len(m.validationConflicts)))
}
