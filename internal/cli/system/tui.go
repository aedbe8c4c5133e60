package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	store, user, err := ctx.Tasks(bg)
	if err != nil {
		return err
	}
	defer store.Teardown()

	m := tui.NewModel(tui.Options{
		Context:  bg,
		Provider: ctx.Store,
		Tasks:    store,
		User:     user,
		Location: ctx.Loc(),
		Now:      ctx.Now,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
