package system

import (
	"context"
	"fmt"
	"time"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/keyring"
	"github.com/estudai/estudai/internal/storage/backend"
	"github.com/estudai/estudai/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database is not reachable.
	needsDB bool
	// warnOnly failures are reported without failing the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Keyring available", warnOnly: true, run: checkKeyring},
	{name: "Session", needsDB: true, warnOnly: true, run: checkSession},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	for i, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				dbReachable = true
			}
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return nil
}

func schemaVersion(ctx *cli.Context) (int, int, bool, error) {
	m, ok := ctx.Store.(backend.Migrator)
	if !ok {
		return 0, 0, false, nil
	}
	current, latest, err := m.SchemaVersion()
	return current, latest, true, err
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, ok, err := schemaVersion(ctx)
	if !ok || err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, ok, err := schemaVersion(ctx)
	if !ok || err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; sessions and connection strings cannot be stored")
	}
	return nil
}

func checkSession(ctx *cli.Context) error {
	_, err := ctx.RequireUser(context.Background())
	return err
}

func checkValidation(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		// Nothing to validate without an account.
		return nil
	}

	subjects, err := ctx.Store.ListSubjects(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}
	entries, err := ctx.Store.ListSchedule(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	v := validation.New()
	result := v.ValidateSubjects(subjects)
	result.Conflicts = append(result.Conflicts, v.ValidateSchedule(entries, subjects).Conflicts...)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found, run 'estudai schedule check' for details", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil && ctx.Loc().String() != ctx.Config.Timezone && ctx.Config.Timezone != "Local" {
		return fmt.Errorf("configured timezone %q was not applied (using %s)", ctx.Config.Timezone, ctx.Loc())
	}
	return nil
}
