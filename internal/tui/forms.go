package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/datecodec"
	"github.com/estudai/estudai/internal/filter"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/taskstore"
	"github.com/estudai/estudai/internal/validation"
)

// TaskFormModel backs the create and edit form. An empty Difficulty and a
// zero SubjectID mean "none".
type TaskFormModel struct {
	Title       string
	Description string
	DueAt       string
	Type        models.TaskType
	Difficulty  models.Difficulty
	SubjectID   int64
}

func newTaskFormModel(t *models.Task) *TaskFormModel {
	if t == nil {
		return &TaskFormModel{Type: models.TaskTypeActivity}
	}
	fm := &TaskFormModel{
		Title:       t.Title,
		Description: t.Description,
		DueAt:       t.DueAt,
		Type:        t.Type,
	}
	if t.Difficulty != nil {
		fm.Difficulty = *t.Difficulty
	}
	if t.SubjectID != nil {
		fm.SubjectID = *t.SubjectID
	}
	return fm
}

func (fm *TaskFormModel) Validate() error {
	return validation.Task(validation.TaskForm{
		Title:       fm.Title,
		Description: fm.Description,
		DueAt:       fm.DueAt,
	})
}

func (fm *TaskFormModel) difficulty() *models.Difficulty {
	if fm.Difficulty == "" {
		return nil
	}
	d := fm.Difficulty
	return &d
}

func (fm *TaskFormModel) subjectID() *int64 {
	if fm.SubjectID == 0 {
		return nil
	}
	id := fm.SubjectID
	return &id
}

func (fm *TaskFormModel) Draft() taskstore.Draft {
	return taskstore.Draft{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Type:        fm.Type,
		Difficulty:  fm.difficulty(),
		DueAt:       strings.TrimSpace(fm.DueAt),
		SubjectID:   fm.subjectID(),
		Priority:    constants.DefaultTaskPriority,
	}
}

// Patch sets every field the form shows.
func (fm *TaskFormModel) Patch() models.TaskPatch {
	return models.TaskPatch{
		Title:       models.Some(strings.TrimSpace(fm.Title)),
		Description: models.Some(strings.TrimSpace(fm.Description)),
		DueAt:       models.Some(strings.TrimSpace(fm.DueAt)),
		Type:        models.Some(fm.Type),
		Difficulty:  models.Some(fm.difficulty()),
		SubjectID:   models.Some(fm.subjectID()),
	}
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func newTaskForm(fm *TaskFormModel, subjects []models.Subject, editing bool) *huh.Form {
	title := "Nova tarefa"
	if editing {
		title = "Editar tarefa"
	}

	types := make([]huh.Option[models.TaskType], 0, len(models.TaskTypes))
	for _, t := range models.TaskTypes {
		types = append(types, huh.NewOption(t.Label(), t))
	}

	difficulties := []huh.Option[models.Difficulty]{huh.NewOption("-", models.Difficulty(""))}
	for _, d := range models.Difficulties {
		difficulties = append(difficulties, huh.NewOption(d.Label(), d))
	}

	subjectOpts := []huh.Option[int64]{huh.NewOption("Sem matéria", int64(0))}
	for _, s := range subjects {
		subjectOpts = append(subjectOpts, huh.NewOption(s.Name, s.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Title").
				Value(&fm.Title).
				Validate(required("title")),
			huh.NewText().
				Title("Description").
				Value(&fm.Description).
				Validate(required("description")),
			huh.NewInput().
				Title("Due").
				Description("DD/MM/YYYY HH:MM").
				Placeholder("14/11/2025 18:00").
				Value(&fm.DueAt).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("due is required")
					}
					if !datecodec.Valid(strings.TrimSpace(s)) {
						return fmt.Errorf("expected DD/MM/YYYY HH:MM")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[models.TaskType]().
				Title("Type").
				Options(types...).
				Value(&fm.Type),
			huh.NewSelect[models.Difficulty]().
				Title("Difficulty").
				Options(difficulties...).
				Value(&fm.Difficulty),
			huh.NewSelect[int64]().
				Title("Subject").
				Options(subjectOpts...).
				Value(&fm.SubjectID),
		),
	)
}

// FilterFormModel backs the filter form. Empty Type and Difficulty mean "all".
type FilterFormModel struct {
	Period     filter.Period
	Type       models.TaskType
	Difficulty models.Difficulty
	Status     filter.Status
}

func newFilterFormModel(sel filter.Selection) *FilterFormModel {
	fm := &FilterFormModel{
		Period:     sel.Period,
		Type:       sel.Type,
		Difficulty: sel.Difficulty,
		Status:     sel.Status,
	}
	if fm.Period == "" {
		fm.Period = filter.PeriodAll
	}
	if fm.Status == "" {
		fm.Status = filter.StatusAll
	}
	return fm
}

func (fm *FilterFormModel) Selection() filter.Selection {
	return filter.Selection{
		Period:     fm.Period,
		Type:       fm.Type,
		Difficulty: fm.Difficulty,
		Status:     fm.Status,
	}
}

func newFilterForm(fm *FilterFormModel) *huh.Form {
	periods := make([]huh.Option[filter.Period], 0, len(filter.Periods))
	for _, p := range filter.Periods {
		periods = append(periods, huh.NewOption(p.Label(), p))
	}

	types := []huh.Option[models.TaskType]{huh.NewOption("Todos", models.TaskType(""))}
	for _, t := range models.TaskTypes {
		types = append(types, huh.NewOption(t.Label(), t))
	}

	difficulties := []huh.Option[models.Difficulty]{huh.NewOption("Todos", models.Difficulty(""))}
	for _, d := range models.Difficulties {
		difficulties = append(difficulties, huh.NewOption(d.Label(), d))
	}

	statuses := make([]huh.Option[filter.Status], 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, huh.NewOption(s.Label(), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[filter.Period]().
				Title("Período").
				Options(periods...).
				Value(&fm.Period),
			huh.NewSelect[models.TaskType]().
				Title("Tipo").
				Options(types...).
				Value(&fm.Type),
			huh.NewSelect[models.Difficulty]().
				Title("Dificuldade").
				Options(difficulties...).
				Value(&fm.Difficulty),
			huh.NewSelect[filter.Status]().
				Title("Status").
				Options(statuses...).
				Value(&fm.Status),
		),
	)
}

type SettingsFormModel struct {
	NotificationsEnabled bool
	TaskReminders        bool
	DueAlerts            bool
	AlertLeadHours       int
	DarkTheme            bool
	ShowCompleted        bool
	AutoSync             bool
}

func newSettingsFormModel(s models.Settings) *SettingsFormModel {
	return &SettingsFormModel{
		NotificationsEnabled: s.NotificationsEnabled,
		TaskReminders:        s.TaskReminders,
		DueAlerts:            s.DueAlerts,
		AlertLeadHours:       s.AlertLeadHours,
		DarkTheme:            s.DarkTheme,
		ShowCompleted:        s.ShowCompleted,
		AutoSync:             s.AutoSync,
	}
}

// Patch returns only the fields that differ from current.
func (fm *SettingsFormModel) Patch(current models.Settings) models.SettingsPatch {
	var p models.SettingsPatch
	if fm.NotificationsEnabled != current.NotificationsEnabled {
		p.NotificationsEnabled = models.Some(fm.NotificationsEnabled)
	}
	if fm.TaskReminders != current.TaskReminders {
		p.TaskReminders = models.Some(fm.TaskReminders)
	}
	if fm.DueAlerts != current.DueAlerts {
		p.DueAlerts = models.Some(fm.DueAlerts)
	}
	if fm.AlertLeadHours != current.AlertLeadHours {
		p.AlertLeadHours = models.Some(fm.AlertLeadHours)
	}
	if fm.DarkTheme != current.DarkTheme {
		p.DarkTheme = models.Some(fm.DarkTheme)
	}
	if fm.ShowCompleted != current.ShowCompleted {
		p.ShowCompleted = models.Some(fm.ShowCompleted)
	}
	if fm.AutoSync != current.AutoSync {
		p.AutoSync = models.Some(fm.AutoSync)
	}
	return p
}

func newSettingsForm(fm *SettingsFormModel) *huh.Form {
	leads := make([]huh.Option[int], 0, len(constants.AllowedAlertLeadHours))
	for _, h := range constants.AllowedAlertLeadHours {
		leads = append(leads, huh.NewOption(fmt.Sprintf("%dh", h), h))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Notificações").
				Value(&fm.NotificationsEnabled),
			huh.NewConfirm().
				Title("Lembretes de tarefas").
				Value(&fm.TaskReminders),
			huh.NewConfirm().
				Title("Alertas de prazo").
				Value(&fm.DueAlerts),
			huh.NewSelect[int]().
				Title("Antecedência do alerta").
				Options(leads...).
				Value(&fm.AlertLeadHours),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Tema escuro").
				Value(&fm.DarkTheme),
			huh.NewConfirm().
				Title("Mostrar concluídas").
				Value(&fm.ShowCompleted),
			huh.NewConfirm().
				Title("Sincronização automática").
				Value(&fm.AutoSync),
		),
	)
}

func newBatchForm(confirm *bool, count int, remove bool) *huh.Form {
	title := fmt.Sprintf("Concluir %d tarefa(s)?", count)
	if remove {
		title = fmt.Sprintf("Excluir %d tarefa(s)?", count)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Sim").
				Negative("Não").
				Value(confirm),
		),
	)
}
