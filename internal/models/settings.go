package models

import (
	"fmt"
	"strconv"

	"github.com/estudai/estudai/internal/constants"
)

// Settings holds the per-user preferences
type Settings struct {
	NotificationsEnabled bool `json:"notifications_enabled"`
	TaskReminders        bool `json:"task_reminders"`
	DueAlerts            bool `json:"due_alerts"`
	AlertLeadHours       int  `json:"alert_lead_hours"` // one of 24, 48, 72
	DarkTheme            bool `json:"dark_theme"`
	ShowCompleted        bool `json:"show_completed"`
	AutoSync             bool `json:"auto_sync"`
}

// DefaultSettings returns the settings a new account starts with.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		TaskReminders:        constants.DefaultTaskReminders,
		DueAlerts:            constants.DefaultDueAlerts,
		AlertLeadHours:       constants.DefaultAlertLeadHours,
		DarkTheme:            constants.DefaultDarkTheme,
		ShowCompleted:        constants.DefaultShowCompleted,
		AutoSync:             constants.DefaultAutoSync,
	}
}

type SettingsPatch struct {
	NotificationsEnabled Optional[bool]
	TaskReminders        Optional[bool]
	DueAlerts            Optional[bool]
	AlertLeadHours       Optional[int]
	DarkTheme            Optional[bool]
	ShowCompleted        Optional[bool]
	AutoSync             Optional[bool]
}

func (p SettingsPatch) IsEmpty() bool {
	return !p.NotificationsEnabled.IsSet() && !p.TaskReminders.IsSet() && !p.DueAlerts.IsSet() &&
		!p.AlertLeadHours.IsSet() && !p.DarkTheme.IsSet() && !p.ShowCompleted.IsSet() && !p.AutoSync.IsSet()
}

// Apply returns s with every set field of p applied.
func (p SettingsPatch) Apply(s Settings) Settings {
	s.NotificationsEnabled = p.NotificationsEnabled.OrElse(s.NotificationsEnabled)
	s.TaskReminders = p.TaskReminders.OrElse(s.TaskReminders)
	s.DueAlerts = p.DueAlerts.OrElse(s.DueAlerts)
	s.AlertLeadHours = p.AlertLeadHours.OrElse(s.AlertLeadHours)
	s.DarkTheme = p.DarkTheme.OrElse(s.DarkTheme)
	s.ShowCompleted = p.ShowCompleted.OrElse(s.ShowCompleted)
	s.AutoSync = p.AutoSync.OrElse(s.AutoSync)
	return s
}

// MapToSettings converts stored key-value pairs to Settings. Missing keys keep their defaults.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingTaskReminders:
			settings.TaskReminders = value == "true"
		case constants.SettingDueAlerts:
			settings.DueAlerts = value == "true"
		case constants.SettingAlertLeadHours:
			hours, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", constants.SettingAlertLeadHours, err)
			}
			settings.AlertLeadHours = hours
		case constants.SettingDarkTheme:
			settings.DarkTheme = value == "true"
		case constants.SettingShowCompleted:
			settings.ShowCompleted = value == "true"
		case constants.SettingAutoSync:
			settings.AutoSync = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts Settings to key-value pairs for storage.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingTaskReminders:        strconv.FormatBool(settings.TaskReminders),
		constants.SettingDueAlerts:            strconv.FormatBool(settings.DueAlerts),
		constants.SettingAlertLeadHours:       strconv.Itoa(settings.AlertLeadHours),
		constants.SettingDarkTheme:            strconv.FormatBool(settings.DarkTheme),
		constants.SettingShowCompleted:        strconv.FormatBool(settings.ShowCompleted),
		constants.SettingAutoSync:             strconv.FormatBool(settings.AutoSync),
	}
}
