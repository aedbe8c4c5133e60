package constants

const (
	// Per-user settings keys
	SettingNotificationsEnabled = "notifications_enabled"
	SettingTaskReminders        = "task_reminders"
	SettingDueAlerts            = "due_alerts"
	SettingAlertLeadHours       = "alert_lead_hours"
	SettingDarkTheme            = "dark_theme"
	SettingShowCompleted        = "show_completed"
	SettingAutoSync             = "auto_sync"

	// Default Settings Values
	DefaultNotificationsEnabled = true
	DefaultTaskReminders        = true
	DefaultDueAlerts            = true
	DefaultAlertLeadHours       = 24
	DefaultDarkTheme            = false
	DefaultShowCompleted        = true
	DefaultAutoSync             = true
	DefaultTimezone             = "Local" // Use system local timezone by default
)

// AllowedAlertLeadHours lists the lead times a due alert may use.
var AllowedAlertLeadHours = []int{24, 48, 72}
