package cli

import (
	"context"
	"strings"

	"project-tracker/internal/errors"
	"project-tracker/internal/services"
)

// TaskCreateCommand handles the task create command
type TaskCreateCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewTaskCreateCommand(app *App) *TaskCreateCommand {
	return &TaskCreateCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute adds a task titled after the remaining arguments
func (c *TaskCreateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "task create", "usage: pt task create <project-id> <title>")
	}

	ctx, err := c.app.authenticate(ctx)
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}

	task, err := c.app.businessAPI.CreateTask(ctx, services.CreateTaskCommand{
		ProjectID: args[0],
		Title:     strings.Join(args[1:], " "),
	})
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}

	c.app.printf("Created task %s: %s\n", task.ID, task.Title)
	return nil
}

// TaskListCommand handles the task list command
type TaskListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewTaskListCommand(app *App) *TaskListCommand {
	return &TaskListCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *TaskListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task list", "usage: pt task list <project-id>")
	}

	ctx, err := c.app.authenticate(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	tasks, err := c.app.businessAPI.ListTasks(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	if len(tasks) == 0 {
		c.app.printf("No tasks found\n")
		return nil
	}
	for _, t := range tasks {
		c.app.printf("%s %s  %s\n", taskMarker(t), t.ID, t.Title)
	}
	return nil
}

// TaskCompleteCommand handles the task complete command
type TaskCompleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewTaskCompleteCommand(app *App) *TaskCompleteCommand {
	return &TaskCompleteCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *TaskCompleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task complete", "usage: pt task complete <task-id>")
	}

	ctx, err := c.app.authenticate(ctx)
	if err != nil {
		return c.errorHandler.Handle("complete task", err)
	}

	task, err := c.app.businessAPI.CompleteTask(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("complete task", err)
	}

	c.app.printf("Completed task %s: %s\n", task.ID, task.Title)
	return nil
}

// TaskDeleteCommand handles the task delete command
type TaskDeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewTaskDeleteCommand(app *App) *TaskDeleteCommand {
	return &TaskDeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *TaskDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task delete", "usage: pt task delete <task-id>")
	}

	ctx, err := c.app.authenticate(ctx)
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	if err := c.app.businessAPI.DeleteTask(ctx, args[0]); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	c.app.printf("Deleted task %s\n", args[0])
	return nil
}
