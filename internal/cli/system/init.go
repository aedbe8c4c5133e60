package system

import (
	"fmt"
	"os"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized estudai storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return fmt.Errorf("--force is only supported for SQLite databases")
	}

	dbPath := ctx.Store.GetConfigPath()

	if _, err := os.Stat(dbPath); err == nil {
		// Close first so the file is not locked while removing it.
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
