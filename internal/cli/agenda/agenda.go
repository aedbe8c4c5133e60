package agenda

import (
	"context"
	"fmt"
	"time"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/schedule"
	agendaview "github.com/estudai/estudai/internal/tui/components/agenda"
	"github.com/estudai/estudai/internal/utils"
)

type AgendaCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM). Defaults to the current month."`
	Day   string `short:"d" help:"Show the details of one day (DD/MM/YYYY)."`
}

func (c *AgendaCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	store, user, err := ctx.Tasks(bg)
	if err != nil {
		return err
	}
	defer store.Teardown()

	now := ctx.Clock()
	loc := ctx.Loc()
	byDay := schedule.ByDay(store.Tasks(), loc)

	if c.Day != "" {
		day, err := time.ParseInLocation(constants.DisplayDateFormat, c.Day, loc)
		if err != nil {
			return fmt.Errorf("invalid day %q (expected DD/MM/YYYY)", c.Day)
		}
		entries, err := ctx.Store.ScheduleForDay(bg, user.ID, int(day.Weekday()))
		if err != nil {
			return fmt.Errorf("failed to load schedule: %w", err)
		}
		fmt.Print(agendaview.RenderDay(day, byDay[schedule.DayKey(day)], entries))
		return nil
	}

	anchor := now
	if c.Month != "" {
		if anchor, err = utils.ParseMonth(c.Month, loc); err != nil {
			return err
		}
	}
	fmt.Print(agendaview.RenderMonth(anchor, time.Time{}, now, byDay))

	if month := monthTasks(byDay, anchor); month > 0 {
		fmt.Printf("\n%d tarefa(s) com prazo em %s\n", month, schedule.MonthLabel(anchor))
	}
	return nil
}

func monthTasks(byDay map[string][]models.Task, anchor time.Time) int {
	n := 0
	for _, cell := range schedule.MonthCells(anchor) {
		if cell.InCurrentMonth {
			n += len(byDay[cell.Key()])
		}
	}
	return n
}
