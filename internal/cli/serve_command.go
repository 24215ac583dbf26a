package cli

import (
	"context"

	"project-tracker/internal/api"
	"project-tracker/internal/errors"
)

// ServeCommand runs the HTTP server until the context is cancelled
type ServeCommand struct {
	app *App
}

func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "serve", "usage: pt serve")
	}

	srv := api.NewServer(c.app.businessAPI, c.app.log, c.app.config.Server.GinMode)
	return srv.ListenAndServe(ctx, c.app.config.ListenAddr())
}
