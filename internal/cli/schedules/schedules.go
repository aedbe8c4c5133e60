package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/schedule"
	"github.com/estudai/estudai/internal/validation"
)

type ScheduleCmd struct {
	Add    ScheduleAddCmd    `cmd:"" help:"Add a weekly class."`
	Edit   ScheduleEditCmd   `cmd:"" help:"Edit a weekly class."`
	Delete ScheduleDeleteCmd `cmd:"" help:"Delete a weekly class."`
	List   ScheduleListCmd   `cmd:"" help:"Show the weekly schedule."`
	Day    ScheduleDayCmd    `cmd:"" help:"Show the classes of one weekday."`
	Check  ScheduleCheckCmd  `cmd:"" help:"Check the schedule for overlaps and orphaned classes."`
}

type ScheduleAddCmd struct {
	Subject  int64  `arg:"" help:"Subject ID."`
	Weekday  string `arg:"" help:"Weekday (name or 0-6, 0=Sunday)."`
	Start    string `arg:"" help:"Start time (HH:MM)."`
	End      string `arg:"" help:"End time (HH:MM)."`
	Location string `short:"l" help:"Room or building."`
	Notes    string `short:"n" help:"Notes."`
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
	wd, err := cli.ParseWeekday(c.Weekday)
	if err != nil {
		return err
	}

	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	entry, err := ctx.Store.CreateScheduleEntry(bg, user.ID, models.ScheduleEntry{
		SubjectID: c.Subject,
		Weekday:   wd,
		Start:     c.Start,
		End:       c.End,
		Location:  c.Location,
		Notes:     c.Notes,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added class on %s %s–%s (ID: %d)\n",
		schedule.WeekdayNames[entry.Weekday], entry.ShortStart(), entry.ShortEnd(), entry.ID)
	return nil
}

type ScheduleEditCmd struct {
	ID       int64   `arg:"" help:"Schedule entry ID."`
	Subject  *int64  `help:"New subject ID."`
	Weekday  *string `help:"New weekday."`
	Start    *string `help:"New start time (HH:MM)."`
	End      *string `help:"New end time (HH:MM)."`
	Location *string `help:"New location."`
	Notes    *string `help:"New notes."`
}

func (c *ScheduleEditCmd) patch() (models.ScheduleEntryPatch, error) {
	var p models.ScheduleEntryPatch
	if c.Subject != nil {
		p.SubjectID = models.Some(*c.Subject)
	}
	if c.Weekday != nil {
		wd, err := cli.ParseWeekday(*c.Weekday)
		if err != nil {
			return p, err
		}
		p.Weekday = models.Some(wd)
	}
	if c.Start != nil {
		p.Start = models.Some(*c.Start)
	}
	if c.End != nil {
		p.End = models.Some(*c.End)
	}
	if c.Location != nil {
		p.Location = models.Some(*c.Location)
	}
	if c.Notes != nil {
		p.Notes = models.Some(*c.Notes)
	}
	if p.IsEmpty() {
		return p, errors.New("no changes specified")
	}
	return p, nil
}

func (c *ScheduleEditCmd) Run(ctx *cli.Context) error {
	patch, err := c.patch()
	if err != nil {
		return err
	}

	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateScheduleEntry(bg, user.ID, c.ID, patch); err != nil {
		return err
	}
	fmt.Printf("Updated class %d\n", c.ID)
	return nil
}

type ScheduleDeleteCmd struct {
	ID int64 `arg:"" help:"Schedule entry ID."`
}

func (c *ScheduleDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteScheduleEntry(bg, user.ID, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted class %d\n", c.ID)
	return nil
}

func printEntry(e models.ScheduleEntry) {
	fmt.Printf("    %s–%s  %s %s", e.ShortStart(), e.ShortEnd(), cli.Swatch(e.SubjectColor), e.SubjectName)
	if e.Location != "" {
		fmt.Printf(" @ %s", e.Location)
	}
	fmt.Printf(" (ID: %d)\n", e.ID)
	if e.Notes != "" {
		fmt.Printf("      %s\n", e.Notes)
	}
}

type ScheduleListCmd struct{}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ListSchedule(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No classes scheduled")
		return nil
	}

	grouped := schedule.GroupByWeekday(entries)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := grouped[wd]
		if len(day) == 0 {
			continue
		}
		fmt.Printf("%s:\n", schedule.WeekdayNames[wd])
		for _, e := range day {
			printEntry(e)
		}
	}
	return nil
}

type ScheduleDayCmd struct {
	Weekday string `arg:"" optional:"" help:"Weekday (name or 0-6). Defaults to today."`
}

func (c *ScheduleDayCmd) Run(ctx *cli.Context) error {
	wd := ctx.Clock().Weekday()
	if c.Weekday != "" {
		var err error
		if wd, err = cli.ParseWeekday(c.Weekday); err != nil {
			return err
		}
	}

	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ScheduleForDay(bg, user.ID, int(wd))
	if err != nil {
		return err
	}

	fmt.Printf("%s:\n", schedule.WeekdayNames[wd])
	if len(entries) == 0 {
		fmt.Println("    No classes")
		return nil
	}
	for _, e := range entries {
		printEntry(e)
	}
	return nil
}

type ScheduleCheckCmd struct{}

func (c *ScheduleCheckCmd) Run(ctx *cli.Context) error {
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

	validator := validation.New()
	result := validator.ValidateSubjects(subjects)
	scheduleResult := validator.ValidateSchedule(entries, subjects)
	result.Conflicts = append(result.Conflicts, scheduleResult.Conflicts...)

	fmt.Print(result.FormatReport())
	if !result.HasConflicts() {
		fmt.Println()
		return nil
	}
	return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
}
