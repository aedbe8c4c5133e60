package storage

import (
	"context"

	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/realtime"
)

// SignUpRequest carries the fields of a new account.
type SignUpRequest struct {
	Email    string
	Password string
	Name     string
}

// AuthRemote manages accounts and sign-in sessions.
type AuthRemote interface {
	SignUp(ctx context.Context, req SignUpRequest) (models.User, error)
	SignIn(ctx context.Context, email, password string) (models.Session, error)
	SignOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (models.User, error)
	// ResetPassword issues a one-time reset token. Unknown emails are not an error.
	ResetPassword(ctx context.Context, email string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// TaskRemote is the task table as seen by one user.
type TaskRemote interface {
	// ListTasks returns the user's tasks ordered by due date, undated last.
	ListTasks(ctx context.Context, userID string) ([]models.TaskRecord, error)
	// PendingTasks returns incomplete tasks in the same order as ListTasks.
	PendingTasks(ctx context.Context, userID string) ([]models.TaskRecord, error)
	CreateTask(ctx context.Context, userID string, rec models.TaskRecord) (models.TaskRecord, error)
	UpdateTask(ctx context.Context, userID string, id int64, patch models.TaskRecordPatch) error
	DeleteTask(ctx context.Context, userID string, id int64) error
	DeleteTasks(ctx context.Context, userID string, ids []int64) error
}

type SubjectRemote interface {
	ListSubjects(ctx context.Context, userID string) ([]models.Subject, error)
	CreateSubject(ctx context.Context, userID string, s models.Subject) (models.Subject, error)
	UpdateSubject(ctx context.Context, userID string, id int64, patch models.SubjectPatch) error
	DeleteSubject(ctx context.Context, userID string, id int64) error
}

type ScheduleRemote interface {
	// ListSchedule returns entries ordered by weekday then start time.
	ListSchedule(ctx context.Context, userID string) ([]models.ScheduleEntry, error)
	ScheduleForDay(ctx context.Context, userID string, day int) ([]models.ScheduleEntry, error)
	CreateScheduleEntry(ctx context.Context, userID string, e models.ScheduleEntry) (models.ScheduleEntry, error)
	UpdateScheduleEntry(ctx context.Context, userID string, id int64, patch models.ScheduleEntryPatch) error
	DeleteScheduleEntry(ctx context.Context, userID string, id int64) error
}

type SettingsRemote interface {
	// GetSettings returns the user's settings, storing defaults on first read.
	GetSettings(ctx context.Context, userID string) (models.Settings, error)
	UpdateSettings(ctx context.Context, userID string, patch models.SettingsPatch) (models.Settings, error)
}

type ProfileRemote interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (models.Profile, error)
}

// Subscriber delivers change events for one table of one user.
type Subscriber interface {
	Subscribe(table, userID string, fn realtime.Handler) (func(), error)
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	AuthRemote
	TaskRemote
	SubjectRemote
	ScheduleRemote
	SettingsRemote
	ProfileRemote
	Subscriber

	// Utils
	GetConfigPath() string
}
