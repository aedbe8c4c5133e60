package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/models"
)

// TaskEditFlags are the editable fields shared by edit and batch-update.
type TaskEditFlags struct {
	Title           *string `help:"New title."`
	Description     *string `help:"New description."`
	Due             *string `help:"New due date and time (DD/MM/YYYY HH:MM)."`
	Type            *string `help:"New task type."`
	Difficulty      *string `help:"New difficulty."`
	ClearDifficulty bool    `help:"Remove the difficulty." name:"clear-difficulty"`
	Subject         *int64  `help:"New subject ID."`
	ClearSubject    bool    `help:"Remove the subject." name:"clear-subject"`
	Priority        *int    `help:"New priority."`
	Completed       *bool   `help:"Mark as completed or pending."`
}

// Patch builds the task patch from the flags that were set.
func (f TaskEditFlags) Patch() (models.TaskPatch, error) {
	var p models.TaskPatch
	if f.Title != nil {
		p.Title = models.Some(*f.Title)
	}
	if f.Description != nil {
		p.Description = models.Some(*f.Description)
	}
	if f.Due != nil {
		p.DueAt = models.Some(*f.Due)
	}
	if f.Type != nil {
		typ, err := models.ParseTaskType(*f.Type)
		if err != nil {
			return p, err
		}
		p.Type = models.Some(typ)
	}
	if f.ClearDifficulty {
		p.Difficulty = models.Some[*models.Difficulty](nil)
	} else if f.Difficulty != nil {
		diff, err := models.ParseDifficulty(*f.Difficulty)
		if err != nil {
			return p, err
		}
		p.Difficulty = models.Some(&diff)
	}
	if f.ClearSubject {
		p.SubjectID = models.Some[*int64](nil)
	} else if f.Subject != nil {
		p.SubjectID = models.Some(f.Subject)
	}
	if f.Priority != nil {
		p.Priority = models.Some(*f.Priority)
	}
	if f.Completed != nil {
		p.Completed = models.Some(*f.Completed)
	}
	if p.IsEmpty() {
		return p, errors.New("no changes specified")
	}
	return p, nil
}

type TaskEditCmd struct {
	ID int64 `arg:"" help:"Task ID to edit."`
	TaskEditFlags
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	patch, err := c.Patch()
	if err != nil {
		return err
	}

	bg := context.Background()
	store, _, err := ctx.Tasks(bg)
	if err != nil {
		return err
	}
	if _, ok := store.Task(c.ID); !ok {
		return fmt.Errorf("task %d not found", c.ID)
	}
	if err := cli.Check(store.Update(bg, c.ID, patch)); err != nil {
		return err
	}

	task, _ := store.Task(c.ID)
	fmt.Printf("Updated task: %s\n", task.Title)
	return nil
}
