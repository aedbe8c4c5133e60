package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/schedule"
	"github.com/estudai/estudai/internal/utils"
)

const maxDayMarkers = 3

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(6).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Width(6).
			Align(lipgloss.Center)

	outsideStyle = cellStyle.
			Foreground(lipgloss.Color("238"))

	todayStyle = cellStyle.
			Foreground(lipgloss.Color("214")).
			Bold(true)

	cursorStyle = cellStyle.
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	detailStyle = lipgloss.NewStyle().
			MarginLeft(4)
)

var typeMarkers = map[models.TaskType]string{
	models.TaskTypeActivity:   "a",
	models.TaskTypeAssignment: "t",
	models.TaskTypeExam:       "p",
	models.TaskTypeOther:      "o",
}

// RenderMonth draws the month grid of anchor. Days with tasks carry one
// marker per distinct task type. cursor and today are highlighted when they
// fall in the grid; pass the zero time to skip the cursor.
func RenderMonth(anchor, cursor, today time.Time, byDay map[string][]models.Task) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(schedule.MonthLabel(anchor)))
	b.WriteString("\n")

	headers := make([]string, len(schedule.WeekdayLabels))
	for i, l := range schedule.WeekdayLabels {
		headers[i] = headerStyle.Render(l)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")

	for _, week := range schedule.Weeks(schedule.MonthCells(anchor)) {
		row := make([]string, len(week))
		for i, cell := range week {
			text := fmt.Sprintf("%2d%s", cell.Date.Day(), markers(byDay[cell.Key()]))
			style := cellStyle
			switch {
			case !cursor.IsZero() && schedule.DayKey(cursor) == cell.Key():
				style = cursorStyle
			case schedule.DayKey(today) == cell.Key():
				style = todayStyle
			case !cell.InCurrentMonth:
				style = outsideStyle
			}
			row[i] = style.Render(text)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}
	return b.String()
}

func markers(tasks []models.Task) string {
	var s string
	for _, t := range schedule.DayTypes(tasks, maxDayMarkers) {
		s += typeMarkers[t]
	}
	return s
}

// RenderDay lists the tasks due on day with their study estimate, followed by
// the classes held on that weekday.
func RenderDay(day time.Time, tasks []models.Task, classes []models.ScheduleEntry) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(schedule.WeekdayNames[day.Weekday()] + ", " + schedule.DayLabel(day)))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(labelStyle.Render("Nenhuma tarefa neste dia"))
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "%s %sh\n\n", labelStyle.Render("Estimativa:"), schedule.FormatHours(schedule.TotalHours(tasks)))
		for _, t := range tasks {
			line := fmt.Sprintf("%s %s", t.Type.Label(), t.Title)
			if t.Completed {
				line = doneStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
			due := t.DueAt
			if len(due) > 11 {
				due = due[11:]
			}
			fmt.Fprintf(&b, "  %s · %s · %s\n", due, t.DifficultyLabel(), schedule.TimeRange(t.Difficulty))
		}
	}

	if len(classes) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Aulas"))
		b.WriteString("\n")
		for _, c := range classes {
			name := c.SubjectName
			if c.SubjectColor != "" {
				name = lipgloss.NewStyle().Foreground(lipgloss.Color(c.SubjectColor)).Render(name)
			}
			fmt.Fprintf(&b, "%s-%s %s", c.ShortStart(), c.ShortEnd(), name)
			if c.Location != "" {
				fmt.Fprintf(&b, " (%s)", c.Location)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.PrevMonth, k.NextMonth, k.Today}
}

type Model struct {
	keys    KeyMap
	loc     *time.Location
	now     func() time.Time
	cursor  time.Time
	byDay   map[string][]models.Task
	classes map[time.Weekday][]models.ScheduleEntry
	width   int
	height  int
}

func New(loc *time.Location, now func() time.Time, width, height int) Model {
	return Model{
		keys:    DefaultKeyMap(),
		loc:     loc,
		now:     now,
		cursor:  utils.StartOfDay(now().In(loc)),
		byDay:   map[string][]models.Task{},
		classes: map[time.Weekday][]models.ScheduleEntry{},
		width:   width,
		height:  height,
	}
}

// SetData replaces the tasks and weekly classes shown by the agenda.
func (m *Model) SetData(tasks []models.Task, entries []models.ScheduleEntry) {
	m.byDay = schedule.ByDay(tasks, m.loc)
	m.classes = schedule.GroupByWeekday(entries)
}

func (m Model) Cursor() time.Time {
	return m.cursor
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cursor = m.cursor.AddDate(0, 0, -1)
		case key.Matches(msg, m.keys.Right):
			m.cursor = m.cursor.AddDate(0, 0, 1)
		case key.Matches(msg, m.keys.Up):
			m.cursor = m.cursor.AddDate(0, 0, -7)
		case key.Matches(msg, m.keys.Down):
			m.cursor = m.cursor.AddDate(0, 0, 7)
		case key.Matches(msg, m.keys.PrevMonth):
			m.cursor = utils.FirstOfMonth(m.cursor).AddDate(0, -1, 0)
		case key.Matches(msg, m.keys.NextMonth):
			m.cursor = utils.FirstOfMonth(m.cursor).AddDate(0, 1, 0)
		case key.Matches(msg, m.keys.Today):
			m.cursor = utils.StartOfDay(m.now().In(m.loc))
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	today := m.now().In(m.loc)
	grid := RenderMonth(m.cursor, m.cursor, today, m.byDay)
	detail := RenderDay(m.cursor, m.byDay[schedule.DayKey(m.cursor)], m.classes[m.cursor.Weekday()])
	if m.width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left, grid, detail)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, detailStyle.Render(detail))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
