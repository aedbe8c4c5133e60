package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/cli/agenda"
	"github.com/estudai/estudai/internal/cli/auth"
	"github.com/estudai/estudai/internal/cli/backups"
	"github.com/estudai/estudai/internal/cli/profile"
	"github.com/estudai/estudai/internal/cli/schedules"
	"github.com/estudai/estudai/internal/cli/settings"
	"github.com/estudai/estudai/internal/cli/subjects"
	"github.com/estudai/estudai/internal/cli/system"
	"github.com/estudai/estudai/internal/cli/tasks"
	"github.com/estudai/estudai/internal/config"
	"github.com/estudai/estudai/internal/constants"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/logger"
	"github.com/estudai/estudai/internal/storage/backend"
	"github.com/estudai/estudai/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Path to the config file." type:"path" default:"${config_path}"`
	Database string `help:"SQLite file path or PostgreSQL connection string. Overrides the config file. Credentials must NOT be embedded in the connection string; use the keyring or .pgpass instead." short:"D"`
	Debug    bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd        `cmd:"" help:"Initialize estudai storage."`
	Migrate  system.MigrateCmd     `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd      `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd         `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Auth     auth.AuthCmd          `cmd:"" help:"Sign up, sign in and manage the session."`
	Task     tasks.TaskCmd         `cmd:"" help:"Manage tasks."`
	Subject  subjects.SubjectCmd   `cmd:"" help:"Manage subjects."`
	Schedule schedules.ScheduleCmd `cmd:"" help:"Manage the weekly class schedule."`
	Agenda   agenda.AgendaCmd      `cmd:"" help:"Show the month calendar or one day."`
	Settings settings.SettingsCmd  `cmd:"" help:"Manage application settings."`
	Profile  profile.ProfileCmd    `cmd:"" help:"Show or edit the profile."`
	Keyring  system.KeyringCmd     `cmd:"" help:"Manage secrets in the OS keyring."`
	Backup   backups.BackupCmd     `cmd:"" help:"Manage SQLite database backups."`
	Notify   system.NotifyCmd      `cmd:"" help:"Send due-date reminders to the tray app."`
	Serve    system.ServeCmd       `cmd:"" help:"Serve the HTTP API."`
	DebugCmd system.DebugCmd       `cmd:"" name:"debug" hidden:"" help:"Debug commands for troubleshooting."`
}

// Commands that manage storage themselves or do not touch it.
var skipLoad = []string{"init", "doctor", "keyring", "debug db-path"}

func needsLoad(command string) bool {
	for _, prefix := range skipLoad {
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return false
		}
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Student task manager, agenda and class schedule"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultPath(),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatalf("load config %s: %v", CLI.Config, err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if CLI.Database != "" {
		cfg.Database = CLI.Database
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: config.Dir(CLI.Config),
		Level:     cfg.LogLevel,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	hub, err := backend.NewHub(cfg.RedisAddr)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer hub.Close()

	store, err := backend.Open(backend.Resolve(cfg.Database), hub)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:    store,
		Config:   &cfg,
		Hub:      hub,
		Location: loc,
	}

	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	logger.Debug("Running command", "command", ctx.Command(), "database", store.GetConfigPath())
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		hub.Close()
		apperrors.Fatal(err)
	}
}
