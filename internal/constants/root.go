package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "estudai"
	DefaultKeyringUser = "database-connection"
	SessionKeyringUser = "session-token"
	DefaultConfigDir   = "~/.config/estudai"
	DefaultConfigPath  = "~/.config/estudai/estudai.db"
	ConfigFileName     = "config.toml"
	Version            = "v0.3.0"

	// Auth constants
	SessionTTL       = 30 * 24 * time.Hour
	ResetTokenTTL    = time.Hour
	MinPasswordChars = 6

	// Notify constants
	NotifierLockfileName   = "estudai-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.estudai.tray"
	TrayAppExecutable      = "estudai-tray"

	// Realtime table names
	TableTasks    = "tasks"
	TableSubjects = "subjects"
	TableSchedule = "schedule_entries"
	TableSettings = "settings"
	TableProfiles = "profiles"

	RealtimeChannelPrefix = "estudai"

	// API constants
	DefaultAPIAddr         = "127.0.0.1:8080"
	DefaultRateLimitPerMin = 120
	DefaultShutdownTimeout = 10 * time.Second

	DefaultSubjectColor = "#2563EB"
	DefaultTaskPriority = 0
)

// Session States
const (
	// Tabs, in display order
	StateTasks SessionState = iota
	StateAgenda
	StateSettings

	StateEditing
	StateFilter
	StateSearch
	StateBatchAction
	StateConfirmDelete
	StateEditSettings
)

// NumMainTabs is the number of tab states at the start of the session states.
const NumMainTabs = 3
