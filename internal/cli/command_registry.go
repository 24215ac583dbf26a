package cli

import (
	"context"
	"sort"
	"strings"

	"project-tracker/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("serve", NewServeCommand(app))
	registry.Register("register", NewRegisterCommand(app))
	registry.Register("login", NewLoginCommand(app))

	registry.Register("project create", NewProjectCreateCommand(app))
	registry.Register("project list", NewProjectListCommand(app))
	registry.Register("project show", NewProjectShowCommand(app))
	registry.Register("project activate", NewProjectActivateCommand(app))
	registry.Register("project delete", NewProjectDeleteCommand(app))

	registry.Register("task create", NewTaskCreateCommand(app))
	registry.Register("task list", NewTaskListCommand(app))
	registry.Register("task complete", NewTaskCompleteCommand(app))
	registry.Register("task delete", NewTaskDeleteCommand(app))

	registry.Register("migrate status", NewMigrateStatusCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

func (r *CommandRegistry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, "pt "+name)
	}
	sort.Strings(names)
	return "usage: " + strings.Join(names, " | ")
}
