package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/estudai/estudai/internal/cli"
)

type TaskToggleCmd struct {
	ID int64 `arg:"" help:"Task ID to toggle."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	store, _, err := ctx.Tasks(bg)
	if err != nil {
		return err
	}
	if _, ok := store.Task(c.ID); !ok {
		return fmt.Errorf("task %d not found", c.ID)
	}
	if err := cli.Check(store.ToggleCompletion(bg, c.ID)); err != nil {
		return err
	}

	task, _ := store.Task(c.ID)
	state := "pending"
	if task.Completed {
		state = "completed"
	}
	fmt.Printf("Task %q is now %s\n", task.Title, state)
	return nil
}

type TaskBatchUpdateCmd struct {
	IDs string `arg:"" help:"Comma-separated task IDs."`
	TaskEditFlags
}

func (c *TaskBatchUpdateCmd) Run(ctx *cli.Context) error {
	ids, err := cli.ParseIDs(c.IDs)
	if err != nil {
		return err
	}
	patch, err := c.Patch()
	if err != nil {
		return err
	}

	bg := context.Background()
	store, _, err := ctx.Tasks(bg)
	if err != nil {
		return err
	}

	res := store.BatchUpdate(bg, ids, patch)
	for _, item := range res.Items {
		if item.Success {
			fmt.Printf("  ✓ %d\n", item.ID)
		} else {
			fmt.Printf("  ❌ %d: %s\n", item.ID, item.Message())
		}
	}
	if err := cli.Check(res.Result); err != nil {
		if failed := res.Failed(); len(failed) > 0 {
			return fmt.Errorf("%w (failed: %s)", err, joinIDs(failed))
		}
		return err
	}

	fmt.Printf("Updated %d task(s)\n", len(ids))
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}
