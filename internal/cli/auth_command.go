package cli

import (
	"context"

	"project-tracker/internal/errors"
	"project-tracker/internal/services"
)

// RegisterCommand handles the register command
type RegisterCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRegisterCommand creates a new register command handler
func NewRegisterCommand(app *App) *RegisterCommand {
	return &RegisterCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the register command
func (c *RegisterCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.NewInvalidInputError("command", "register", "usage: pt register <username> <email> <password>")
	}

	result, err := c.app.businessAPI.Register(ctx, services.RegisterUserCommand{
		Username: args[0],
		Email:    args[1],
		Password: args[2],
	})
	if err != nil {
		return c.errorHandler.Handle("register", err)
	}
	return printAuthResult(c.app, c.errorHandler, "register", result)
}

// LoginCommand handles the login command
type LoginCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "login", "usage: pt login <username> <password>")
	}

	result, err := c.app.businessAPI.Login(ctx, services.LoginUserCommand{
		Username: args[0],
		Password: args[1],
	})
	if err != nil {
		return c.errorHandler.Handle("log in", err)
	}
	return printAuthResult(c.app, c.errorHandler, "log in", result)
}

// printAuthResult prints the message and token, or turns an unsuccessful result into an error
func printAuthResult(app *App, eh *ErrorHandler, operation string, result *services.AuthResult) error {
	if !result.Success {
		return eh.Handle(operation, result.Failure)
	}

	app.printf("%s\n", result.Message)
	app.printf("export %s=%s\n", TokenEnvVar, result.Token)
	return nil
}
