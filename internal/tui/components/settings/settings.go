package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/estudai/estudai/internal/models"
)

type EditSettingsMsg struct{}

type Model struct {
	settings models.Settings
	profile  models.Profile
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(25)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

func New(settings models.Settings, profile models.Profile, width, height int) Model {
	return Model{
		settings: settings,
		profile:  profile,
		width:    width,
		height:   height,
	}
}

func (m *Model) SetSettings(settings models.Settings) {
	m.settings = settings
}

func (m *Model) SetProfile(profile models.Profile) {
	m.profile = profile
}

func (m Model) Settings() models.Settings {
	return m.settings
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "e" {
		return m, func() tea.Msg { return EditSettingsMsg{} }
	}
	return m, nil
}

func row(label string, value any) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label), valueStyle.Render(fmt.Sprint(value)))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var sections []string

	if m.profile.ID != "" {
		rows := []string{row("Name:", m.profile.Name), row("Email:", m.profile.Email)}
		if m.profile.Institution != "" {
			rows = append(rows, row("Institution:", m.profile.Institution))
		}
		if m.profile.Course != "" {
			rows = append(rows, row("Course:", m.profile.Course))
		}
		sections = append(sections, sectionStyle.Render(
			titleStyle.Render("Perfil")+"\n"+lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	notifContent := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Notifications:", onOff(m.settings.NotificationsEnabled)),
		row("Task Reminders:", onOff(m.settings.TaskReminders)),
		row("Due Alerts:", onOff(m.settings.DueAlerts)),
		row("Alert Lead Time:", fmt.Sprintf("%dh", m.settings.AlertLeadHours)),
	)
	sections = append(sections, sectionStyle.Render(titleStyle.Render("Notificações")+"\n"+notifContent))

	displayContent := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Dark Theme:", onOff(m.settings.DarkTheme)),
		row("Show Completed:", onOff(m.settings.ShowCompleted)),
		row("Auto Sync:", onOff(m.settings.AutoSync)),
	)
	sections = append(sections, sectionStyle.Render(titleStyle.Render("Preferências")+"\n"+displayContent))

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(2).
		Render("Press 'e' to edit settings")
	sections = append(sections, helpText)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 4).Render(content),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
