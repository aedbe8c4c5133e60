package subjects

import (
	"context"
	"errors"
	"fmt"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/models"
)

type SubjectCmd struct {
	Add    SubjectAddCmd    `cmd:"" help:"Add a subject."`
	Edit   SubjectEditCmd   `cmd:"" help:"Edit a subject."`
	Delete SubjectDeleteCmd `cmd:"" help:"Delete a subject and its schedule entries."`
	List   SubjectListCmd   `cmd:"" help:"List subjects."`
}

type SubjectAddCmd struct {
	Name       string `arg:"" help:"Subject name."`
	Instructor string `short:"i" help:"Instructor name."`
	Code       string `short:"c" help:"Course code."`
	Color      string `help:"Display color (#RRGGBB)."`
}

func (c *SubjectAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}

	subject, err := ctx.Store.CreateSubject(bg, user.ID, models.Subject{
		Name:       c.Name,
		Instructor: c.Instructor,
		Code:       c.Code,
		Color:      c.Color,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added subject: %s (ID: %d)\n", subject.Name, subject.ID)
	return nil
}

type SubjectEditCmd struct {
	ID         int64   `arg:"" help:"Subject ID."`
	Name       *string `help:"New name."`
	Instructor *string `help:"New instructor."`
	Code       *string `help:"New course code."`
	Color      *string `help:"New color (#RRGGBB)."`
}

func (c *SubjectEditCmd) Run(ctx *cli.Context) error {
	var patch models.SubjectPatch
	if c.Name != nil {
		patch.Name = models.Some(*c.Name)
	}
	if c.Instructor != nil {
		patch.Instructor = models.Some(*c.Instructor)
	}
	if c.Code != nil {
		patch.Code = models.Some(*c.Code)
	}
	if c.Color != nil {
		patch.Color = models.Some(*c.Color)
	}
	if patch.IsEmpty() {
		return errors.New("no changes specified")
	}

	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateSubject(bg, user.ID, c.ID, patch); err != nil {
		return err
	}
	fmt.Printf("Updated subject %d\n", c.ID)
	return nil
}

type SubjectDeleteCmd struct {
	ID  int64 `arg:"" help:"Subject ID."`
	Yes bool  `short:"y" help:"Do not ask for confirmation."`
}

func (c *SubjectDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	if !c.Yes && !cli.Confirm(fmt.Sprintf("Delete subject %d and its classes?", c.ID)) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := ctx.Store.DeleteSubject(bg, user.ID, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted subject %d\n", c.ID)
	return nil
}

type SubjectListCmd struct{}

func (c *SubjectListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}
	subjects, err := ctx.Store.ListSubjects(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}
	if len(subjects) == 0 {
		fmt.Println("No subjects found")
		return nil
	}

	fmt.Println("Subjects:")
	for _, s := range subjects {
		fmt.Printf("  %3d  %s %s", s.ID, cli.Swatch(s.Color), s.Name)
		if s.Code != "" {
			fmt.Printf(" [%s]", s.Code)
		}
		if s.Instructor != "" {
			fmt.Printf(" - %s", s.Instructor)
		}
		fmt.Println()
	}
	return nil
}
