package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/logger"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/tui/components/settings"
	"github.com/estudai/estudai/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Tabs, status and help
		contentHeight := msg.Height - 5

		h, v := docStyle.GetFrameSize()
		m.taskList.SetSize(msg.Width-h, contentHeight-v)
		m.agendaModel.SetSize(msg.Width-h, contentHeight-v)
		m.settingsModel.SetSize(msg.Width-h, contentHeight-v)
		m.search.Width = msg.Width - h - 4
		return m, nil

	case remoteChangeMsg:
		logger.Debug("Remote task change received", "user", m.user.ID)
		return m, tea.Batch(m.reload(), waitForChange(m.changes))

	case loadedMsg:
		if !msg.result.Success {
			m.report(msg.result, "")
		}
		m.refresh()
		return m, nil
	}

	switch m.state {
	case constants.StateEditing:
		return m.updateForm(msg, (*Model).saveTask)
	case constants.StateFilter:
		return m.updateForm(msg, (*Model).applyFilters)
	case constants.StateEditSettings:
		return m.updateForm(msg, (*Model).saveSettings)
	case constants.StateBatchAction:
		return m.updateForm(msg, (*Model).runBatch)
	case constants.StateSearch:
		return m.updateSearch(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		m.editingID = 0
		m.taskForm = newTaskFormModel(nil)
		return m.openForm(constants.StateEditing, newTaskForm(m.taskForm, m.subjects, false))

	case tasklist.EditTaskMsg:
		task, ok := m.tasks.Task(msg.ID)
		if !ok {
			return m, nil
		}
		m.editingID = task.ID
		m.taskForm = newTaskFormModel(&task)
		return m.openForm(constants.StateEditing, newTaskForm(m.taskForm, m.subjects, true))

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case tasklist.ToggleTaskMsg:
		res := m.tasks.ToggleCompletion(m.ctx, msg.ID)
		m.report(res, "")
		m.refresh()
		return m, nil

	case tasklist.ToggleSelectMsg:
		m.tasks.ToggleSelected(msg.ID)
		m.refresh()
		return m, nil

	case tasklist.SelectAllMsg:
		m.toggleAllShown()
		m.refresh()
		return m, nil

	case tasklist.SelectionModeMsg:
		if msg.On {
			m.tasks.EnterSelectionMode()
		} else {
			m.tasks.ExitSelectionMode()
		}
		m.refresh()
		return m, nil

	case tasklist.BatchMsg:
		n := len(m.tasks.Selection())
		if n == 0 {
			m.status = "Selecione ao menos uma tarefa"
			m.refresh()
			return m, nil
		}
		m.batchDelete = msg.Delete
		m.batchConfirm = false
		return m.openForm(constants.StateBatchAction, newBatchForm(&m.batchConfirm, n, msg.Delete))

	case tasklist.OpenFilterMsg:
		m.filterForm = newFilterFormModel(m.tasks.Filters())
		return m.openForm(constants.StateFilter, newFilterForm(m.filterForm))

	case tasklist.OpenSearchMsg:
		m.previousState = m.state
		m.state = constants.StateSearch
		m.search.SetValue(m.tasks.Search())
		m.search.CursorEnd()
		return m, tea.Batch(m.search.Focus(), textinput.Blink)

	case settings.EditSettingsMsg:
		m.settingsForm = newSettingsFormModel(m.settings)
		return m.openForm(constants.StateEditSettings, newSettingsForm(m.settingsForm))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if m.unsubscribe != nil {
				m.unsubscribe()
				m.unsubscribe = nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.NumMainTabs) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.loadReferenceData()
			m.status = "Recarregado"
			return m, m.reload()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case constants.StateAgenda:
		m.agendaModel, cmd = m.agendaModel.Update(msg)
	case constants.StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) openForm(state constants.SessionState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.formError = ""
	m.previousState = m.state
	m.state = state
	m.form = form
	return m, m.form.Init()
}

// updateForm drives the active huh form and calls onDone once it completes.
func (m Model) updateForm(msg tea.Msg, onDone func(*Model)) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		onDone(&m)
	case huh.StateAborted:
		m.formError = ""
		m.state = m.previousState
	}
	return m, cmd
}

// retry keeps the form open with err shown above it.
func (m *Model) retry(err string) {
	m.formError = err
	m.form.State = huh.StateNormal
}

func (m *Model) saveTask() {
	if err := m.taskForm.Validate(); err != nil {
		m.retry(err.Error())
		return
	}

	if m.editingID == 0 {
		res := m.tasks.Create(m.ctx, m.taskForm.Draft())
		if !res.Success {
			m.retry("Failed to create task: " + res.Message())
			return
		}
		m.report(res, "Tarefa criada")
	} else {
		res := m.tasks.Update(m.ctx, m.editingID, m.taskForm.Patch())
		if !res.Success {
			m.retry("Failed to update task: " + res.Message())
			return
		}
		m.report(res, "Tarefa atualizada")
	}

	m.formError = ""
	m.editingID = 0
	m.state = constants.StateTasks
	m.refresh()
}

func (m *Model) applyFilters() {
	m.tasks.SetFilters(m.filterForm.Selection())
	m.status = ""
	m.state = constants.StateTasks
	m.refresh()
}

func (m *Model) saveSettings() {
	patch := m.settingsForm.Patch(m.settings)
	if patch.IsEmpty() {
		m.state = constants.StateSettings
		return
	}

	updated, err := m.store.UpdateSettings(m.ctx, m.user.ID, patch)
	if err != nil {
		m.retry("Failed to update settings: " + err.Error())
		return
	}

	m.formError = ""
	m.settings = updated
	m.settingsModel.SetSettings(updated)
	m.syncSubscription()
	m.status = "Configurações salvas"
	m.state = constants.StateSettings
	m.refresh()
}

func (m *Model) runBatch() {
	m.state = constants.StateTasks
	if !m.batchConfirm {
		return
	}

	ids := m.tasks.Selection()
	if m.batchDelete {
		res := m.tasks.BatchDelete(m.ctx, ids)
		m.report(res, fmt.Sprintf("%d tarefa(s) excluída(s)", len(ids)))
	} else {
		res := m.tasks.BatchUpdate(m.ctx, ids, models.TaskPatch{Completed: models.Some(true)})
		m.report(res.Result, fmt.Sprintf("%d tarefa(s) concluída(s)", len(ids)))
		if failed := res.Failed(); len(failed) > 0 {
			logger.Warn("Batch complete left tasks unchanged", "user", m.user.ID, "failed", failed)
		} else {
			m.tasks.ClearSelection()
		}
	}
	if len(m.tasks.Selection()) == 0 {
		m.tasks.ExitSelectionMode()
	}
	m.refresh()
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			m.search.Blur()
			m.tasks.SetSearch("")
			m.state = m.previousState
			m.refresh()
			return m, nil
		case tea.KeyEnter:
			m.search.Blur()
			m.state = m.previousState
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.tasks.Search() {
		m.tasks.SetSearch(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			res := m.tasks.Delete(m.ctx, m.taskToDeleteID)
			m.report(res, "Tarefa excluída")
			m.state = m.previousState
			m.taskToDeleteID = 0
			m.refresh()
		case "n", "N", "esc", "q":
			m.state = m.previousState
			m.taskToDeleteID = 0
		}
	}
	return m, nil
}
