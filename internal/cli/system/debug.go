package system

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/estudai/estudai/internal/cli"
	apperrors "github.com/estudai/estudai/internal/errors"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" name:"db-path" help:"Show database path."`
	DumpTask     DebugDumpTaskCmd     `cmd:"" help:"Dump one task as JSON."`
	DumpTasks    DebugDumpTasksCmd    `cmd:"" help:"Dump every task as JSON."`
	DumpSchedule DebugDumpScheduleCmd `cmd:"" help:"Dump subjects and schedule entries as JSON."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpTaskCmd struct {
	ID int64 `arg:"" help:"ID of the task to dump."`
}

func (cmd *DebugDumpTaskCmd) Run(ctx *cli.Context) error {
	store, _, err := ctx.Tasks(context.Background())
	if err != nil {
		return err
	}
	task, ok := store.Task(cmd.ID)
	if !ok {
		return fmt.Errorf("task %d: %w", cmd.ID, apperrors.ErrNotFound)
	}
	return printJSON(task)
}

type DebugDumpTasksCmd struct {
	// Raw dumps the rows as stored, with separate date and time columns.
	Raw bool `help:"Dump stored rows instead of display values."`
}

func (cmd *DebugDumpTasksCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if cmd.Raw {
		user, err := ctx.RequireUser(bg)
		if err != nil {
			return err
		}
		recs, err := ctx.Store.ListTasks(bg, user.ID)
		if err != nil {
			return fmt.Errorf("failed to get tasks: %w", err)
		}
		return printJSON(recs)
	}

	store, _, err := ctx.Tasks(bg)
	if err != nil {
		return err
	}
	return printJSON(store.Tasks())
}

type DebugDumpScheduleCmd struct{}

func (cmd *DebugDumpScheduleCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	subjects, err := ctx.Store.ListSubjects(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}
	entries, err := ctx.Store.ListSchedule(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	return printJSON(map[string]any{
		"subjects": subjects,
		"schedule": entries,
	})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}
