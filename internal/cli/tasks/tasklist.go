package tasks

import (
	"context"
	"fmt"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/filter"
	"github.com/estudai/estudai/internal/taskstore"
)

type TaskListCmd struct {
	Type       string `short:"t" help:"Filter by task type." default:"all"`
	Difficulty string `short:"x" help:"Filter by difficulty." default:"all"`
	Status     string `help:"Filter by status (all|completed)." default:"all"`
	Period     string `help:"Filter by due period (all|today|week|month|next7)." default:"all"`
	Search     string `short:"q" help:"Search title and description."`
	ShowIDs    bool   `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) selection() (filter.Selection, error) {
	var sel filter.Selection
	var err error
	if sel.Type, err = filter.ParseType(c.Type); err != nil {
		return sel, err
	}
	if sel.Difficulty, err = filter.ParseDifficulty(c.Difficulty); err != nil {
		return sel, err
	}
	if sel.Status, err = filter.ParseStatus(c.Status); err != nil {
		return sel, err
	}
	if sel.Period, err = filter.ParsePeriod(c.Period); err != nil {
		return sel, err
	}
	return sel, nil
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	sel, err := c.selection()
	if err != nil {
		return err
	}

	store, _, err := ctx.Tasks(context.Background())
	if err != nil {
		return err
	}
	store.SetFilters(sel)
	store.SetSearch(c.Search)

	tasks := store.Visible()
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Printf("Tasks (%d of %d):\n", len(tasks), len(store.Tasks()))
	for _, task := range tasks {
		printTask(task, c.ShowIDs)
	}
	return nil
}

type TaskPendingCmd struct {
	ShowIDs bool `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskPendingCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}

	records, err := ctx.Store.PendingTasks(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No pending tasks")
		return nil
	}

	fmt.Println("Pending tasks:")
	for _, rec := range records {
		printTask(taskstore.FromRecord(rec), c.ShowIDs)
	}
	return nil
}
