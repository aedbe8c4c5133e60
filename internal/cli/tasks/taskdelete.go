package tasks

import (
	"context"
	"fmt"

	"github.com/estudai/estudai/internal/cli"
)

type TaskDeleteCmd struct {
	ID  int64 `arg:"" help:"Task ID to delete."`
	Yes bool  `short:"y" help:"Do not ask for confirmation."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	store, _, err := ctx.Tasks(bg)
	if err != nil {
		return err
	}

	task, ok := store.Task(c.ID)
	if !ok {
		return fmt.Errorf("task %d not found", c.ID)
	}
	if !c.Yes && !cli.Confirm(fmt.Sprintf("Delete task %q?", task.Title)) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := cli.Check(store.Delete(bg, c.ID)); err != nil {
		return err
	}

	fmt.Printf("Deleted task: %s\n", task.Title)
	return nil
}

type TaskBatchDeleteCmd struct {
	IDs string `arg:"" help:"Comma-separated task IDs."`
	Yes bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *TaskBatchDeleteCmd) Run(ctx *cli.Context) error {
	ids, err := cli.ParseIDs(c.IDs)
	if err != nil {
		return err
	}

	bg := context.Background()
	store, _, err := ctx.Tasks(bg)
	if err != nil {
		return err
	}
	if len(ids) > 0 && !c.Yes && !cli.Confirm(fmt.Sprintf("Delete %d task(s)?", len(ids))) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := cli.Check(store.BatchDelete(bg, ids)); err != nil {
		return err
	}

	fmt.Printf("Deleted %d task(s)\n", len(ids))
	return nil
}
