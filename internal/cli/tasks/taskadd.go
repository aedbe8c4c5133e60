package tasks

import (
	"context"
	"fmt"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/taskstore"
)

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `short:"d" help:"Task description." required:""`
	Due         string `short:"D" help:"Due date (DD/MM/YYYY or DD/MM/YYYY HH:MM)." required:""`
	Type        string `short:"t" help:"Task type (atividade|trabalho|prova|outro)." default:"atividade"`
	Difficulty  string `short:"x" help:"Difficulty (facil|medio|dificil)."`
	Subject     int64  `short:"s" help:"Subject ID."`
	Priority    int    `short:"p" help:"Priority." default:"0"`
}

func (c *TaskAddCmd) draft() (taskstore.Draft, error) {
	typ, err := models.ParseTaskType(c.Type)
	if err != nil {
		return taskstore.Draft{}, err
	}
	d := taskstore.Draft{
		Title:       c.Title,
		Description: c.Description,
		Type:        typ,
		DueAt:       c.Due,
		Priority:    c.Priority,
	}
	if c.Difficulty != "" {
		diff, err := models.ParseDifficulty(c.Difficulty)
		if err != nil {
			return taskstore.Draft{}, err
		}
		d.Difficulty = &diff
	}
	if c.Subject > 0 {
		d.SubjectID = &c.Subject
	}
	return d, nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	draft, err := c.draft()
	if err != nil {
		return err
	}

	bg := context.Background()
	store, _, err := ctx.Tasks(bg)
	if err != nil {
		return err
	}
	if err := cli.Check(store.Create(bg, draft)); err != nil {
		return err
	}

	fmt.Printf("Added task: %s\n", c.Title)
	return nil
}
