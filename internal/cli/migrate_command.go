package cli

import (
	"context"

	"project-tracker/internal/errors"
)

// MigrateStatusCommand lists schema migrations and whether they are applied
type MigrateStatusCommand struct {
	app *App
}

func NewMigrateStatusCommand(app *App) *MigrateStatusCommand {
	return &MigrateStatusCommand{app: app}
}

func (c *MigrateStatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "migrate status", "usage: pt migrate status")
	}
	if c.app.migrations == nil {
		return errors.NewInvalidStateError("migration status is unavailable", "")
	}

	statuses, err := c.app.migrations.MigrationStatus(ctx)
	if err != nil {
		return NewErrorHandler().Handle("read migration status", err)
	}

	for _, s := range statuses {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		c.app.printf("%03d_%s\t%s\n", s.Version, s.Name, state)
	}
	return nil
}
