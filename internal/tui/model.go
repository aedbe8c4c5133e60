package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/filter"
	"github.com/estudai/estudai/internal/logger"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/realtime"
	"github.com/estudai/estudai/internal/storage"
	"github.com/estudai/estudai/internal/taskstore"
	"github.com/estudai/estudai/internal/tui/components/agenda"
	"github.com/estudai/estudai/internal/tui/components/settings"
	"github.com/estudai/estudai/internal/tui/components/tasklist"
	"github.com/estudai/estudai/internal/validation"
)

// Options wires the TUI to a signed-in session.
type Options struct {
	Context  context.Context
	Provider storage.Provider
	Tasks    *taskstore.Store
	User     models.User
	Location *time.Location
	Now      func() time.Time
}

type Model struct {
	ctx      context.Context
	store    storage.Provider
	tasks    *taskstore.Store
	user     models.User
	loc      *time.Location
	now      func() time.Time
	subjects []models.Subject
	entries  []models.ScheduleEntry
	settings models.Settings

	// changes receives a signal per remote task change while auto sync is on.
	changes     chan struct{}
	unsubscribe func()

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	taskKeys      tasklist.KeyMap
	help          help.Model
	taskList      tasklist.Model
	agendaModel   agenda.Model
	settingsModel settings.Model
	search        textinput.Model

	form         *huh.Form
	taskForm     *TaskFormModel
	filterForm   *FilterFormModel
	settingsForm *SettingsFormModel
	editingID    int64

	taskToDeleteID int64
	batchDelete    bool
	batchConfirm   bool

	status              string
	formError           string
	validationConflicts []validation.Conflict
	quitting            bool
	width               int
	height              int
}

func NewModel(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Buscar por título ou descrição"

	m := Model{
		ctx:         opts.Context,
		store:       opts.Provider,
		tasks:       opts.Tasks,
		user:        opts.User,
		loc:         opts.Location,
		now:         opts.Now,
		changes:     make(chan struct{}, 1),
		state:       constants.StateTasks,
		keys:        DefaultKeyMap(),
		taskKeys:    tasklist.DefaultKeyMap(),
		help:        help.New(),
		taskList:    tasklist.New(0, 0),
		agendaModel: agenda.New(opts.Location, opts.Now, 0, 0),
		search:      search,
	}

	currentSettings, err := m.store.GetSettings(m.ctx, m.user.ID)
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", "user", m.user.ID, "error", err)
		currentSettings = models.DefaultSettings()
		m.status = "Failed to load settings: " + err.Error()
	}
	m.settings = currentSettings

	profile, err := m.store.GetProfile(m.ctx, m.user.ID)
	if err != nil {
		logger.Warn("Failed to load profile", "user", m.user.ID, "error", err)
	}
	m.settingsModel = settings.New(currentSettings, profile, 0, 0)

	m.loadReferenceData()
	m.syncSubscription()
	m.refresh()
	return m
}

// loadReferenceData reads the subjects and the weekly schedule.
func (m *Model) loadReferenceData() {
	subjects, err := m.store.ListSubjects(m.ctx, m.user.ID)
	if err != nil {
		logger.Warn("Failed to load subjects", "user", m.user.ID, "error", err)
	} else {
		m.subjects = subjects
	}

	entries, err := m.store.ListSchedule(m.ctx, m.user.ID)
	if err != nil {
		logger.Warn("Failed to load schedule", "user", m.user.ID, "error", err)
	} else {
		m.entries = entries
	}

	result := validation.New().ValidateSchedule(m.entries, m.subjects)
	m.validationConflicts = result.Conflicts
}

// syncSubscription subscribes to task changes when auto sync is on and
// drops the subscription when it is off.
func (m *Model) syncSubscription() {
	if m.settings.AutoSync && m.unsubscribe == nil {
		changes := m.changes
		cancel, err := m.store.Subscribe(constants.TableTasks, m.user.ID, func(realtime.Event) {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
		if err != nil {
			logger.Warn("Realtime subscription failed", "user", m.user.ID, "error", err)
			m.status = "Sincronização automática indisponível"
			return
		}
		m.unsubscribe = cancel
		logger.Debug("Subscribed to task changes", "user", m.user.ID)
		return
	}
	if !m.settings.AutoSync && m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// hidesCompleted reports whether completed tasks are left out of the list.
// A COMPLETED status filter always shows them.
func (m Model) hidesCompleted() bool {
	return !m.settings.ShowCompleted && m.tasks.Filters().Status != filter.StatusCompleted
}

// shown returns the tasks the list displays.
func (m Model) shown() []models.Task {
	tasks := m.tasks.Visible()
	if m.hidesCompleted() {
		tasks = slices.DeleteFunc(tasks, func(t models.Task) bool { return t.Completed })
	}
	return tasks
}

// toggleAllShown selects every shown task, or clears the selection when
// all of them are already selected.
func (m *Model) toggleAllShown() {
	if !m.hidesCompleted() {
		m.tasks.ToggleAll()
		return
	}
	shown := m.shown()
	all := len(shown) > 0
	for _, t := range shown {
		if !m.tasks.IsSelected(t.ID) {
			all = false
			break
		}
	}
	if all {
		m.tasks.ClearSelection()
		return
	}
	for _, t := range shown {
		if !m.tasks.IsSelected(t.ID) {
			m.tasks.ToggleSelected(t.ID)
		}
	}
}

func (m *Model) refresh() {
	m.taskList.SetTasks(m.shown(), m.tasks.SelectionMode(), m.tasks.IsSelected)
	m.taskList.SetStatus(m.statusLine())
	m.agendaModel.SetData(m.tasks.Tasks(), m.entries)
}

// report turns a store result into the status line.
func (m *Model) report(res taskstore.Result, success string) {
	switch {
	case !res.Success:
		m.status = "Erro: " + res.Message()
	case len(res.Warnings) > 0:
		m.status = "Aviso: " + strings.Join(res.Warnings, "; ")
	default:
		m.status = success
	}
}

func (m Model) statusLine() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d tarefa(s)", len(m.shown())))
	if sel := m.tasks.Filters(); sel.IsActive() {
		parts = append(parts, "filtros ativos")
	}
	if q := m.tasks.Search(); q != "" {
		parts = append(parts, fmt.Sprintf("busca %q", q))
	}
	if m.tasks.SelectionMode() {
		parts = append(parts, fmt.Sprintf("%d selecionada(s)", len(m.tasks.Selection())))
	}
	return strings.Join(parts, " · ")
}

// activeTab is the tab highlighted in the header.
func (m Model) activeTab() constants.SessionState {
	if m.state <= constants.StateSettings {
		return m.state
	}
	return m.previousState
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateTasks:
		keys = append(keys, m.taskKeys.Add, m.taskKeys.Toggle, m.taskKeys.Filter, m.taskKeys.Search, m.taskKeys.Selection)
	case constants.StateAgenda:
		keys = append(keys, m.agendaModel.Keys().ShortHelp()...)
	case constants.StateSettings:
		keys = append(keys, m.keys.EditSettings)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Reload}

	var actions []key.Binding
	switch m.state {
	case constants.StateTasks:
		k := m.taskKeys
		actions = []key.Binding{k.Add, k.Edit, k.Delete, k.Toggle, k.Filter, k.Search,
			k.Selection, k.SelectAll, k.BatchDone, k.BatchDelete, k.ExitSelection}
	case constants.StateAgenda:
		k := m.agendaModel.Keys()
		actions = []key.Binding{k.Left, k.Right, k.Up, k.Down, k.PrevMonth, k.NextMonth, k.Today}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.EditSettings}
	}

	return [][]key.Binding{global, actions}
}

type remoteChangeMsg struct{}

type loadedMsg struct {
	result taskstore.Result
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return remoteChangeMsg{}
	}
}

func (m Model) reload() tea.Cmd {
	tasks, ctx := m.tasks, m.ctx
	return func() tea.Msg {
		return loadedMsg{result: tasks.Load(ctx)}
	}
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}
