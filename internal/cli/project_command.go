package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"
	"project-tracker/internal/services"
)

const timeLayout = "2006-01-02 15:04:05"

// ProjectCreateCommand handles the project create command
type ProjectCreateCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewProjectCreateCommand(app *App) *ProjectCreateCommand {
	return &ProjectCreateCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute creates a project named after the joined arguments
func (c *ProjectCreateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "project create", "usage: pt project create <name>")
	}

	ctx, err := c.app.authenticate(ctx)
	if err != nil {
		return c.errorHandler.Handle("create project", err)
	}

	project, err := c.app.businessAPI.CreateProject(ctx, services.CreateProjectCommand{Name: strings.Join(args, " ")})
	if err != nil {
		return c.errorHandler.Handle("create project", err)
	}

	c.app.printf("Created project %s: %s (%s)\n", project.ID, project.Name, project.Status)
	return nil
}

// ProjectListCommand handles the project list command
type ProjectListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewProjectListCommand(app *App) *ProjectListCommand {
	return &ProjectListCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *ProjectListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "project list", "usage: pt project list")
	}

	ctx, err := c.app.authenticate(ctx)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}

	projects, err := c.app.businessAPI.ListProjects(ctx)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}

	if len(projects) == 0 {
		c.app.printf("No projects found\n")
		return nil
	}

	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCREATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Status, p.CreatedAt.Format(timeLayout))
	}
	return w.Flush()
}

// ProjectShowCommand prints one project with its tasks
type ProjectShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewProjectShowCommand(app *App) *ProjectShowCommand {
	return &ProjectShowCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *ProjectShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "project show", "usage: pt project show <project-id>")
	}

	ctx, err := c.app.authenticate(ctx)
	if err != nil {
		return c.errorHandler.Handle("show project", err)
	}

	project, err := c.app.businessAPI.GetProject(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("show project", err)
	}
	tasks, err := c.app.businessAPI.ListTasks(ctx, project.ID)
	if err != nil {
		return c.errorHandler.Handle("show project", err)
	}

	c.app.printf("Project: %s\n", project.Name)
	c.app.printf("ID:      %s\n", project.ID)
	c.app.printf("Status:  %s\n", project.Status)
	c.app.printf("Created: %s\n", project.CreatedAt.Format(timeLayout))
	c.app.printf("Tasks:   %d\n", len(tasks))
	for _, t := range tasks {
		c.app.printf("  %s %s  %s\n", taskMarker(t), t.ID, t.Title)
	}
	return nil
}

// ProjectActivateCommand handles the project activate command
type ProjectActivateCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewProjectActivateCommand(app *App) *ProjectActivateCommand {
	return &ProjectActivateCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *ProjectActivateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "project activate", "usage: pt project activate <project-id>")
	}

	ctx, err := c.app.authenticate(ctx)
	if err != nil {
		return c.errorHandler.Handle("activate project", err)
	}

	project, err := c.app.businessAPI.ActivateProject(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("activate project", err)
	}

	c.app.printf("Activated project %s: %s\n", project.ID, project.Name)
	return nil
}

// ProjectDeleteCommand handles the project delete command
type ProjectDeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

func NewProjectDeleteCommand(app *App) *ProjectDeleteCommand {
	return &ProjectDeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

func (c *ProjectDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "project delete", "usage: pt project delete <project-id>")
	}

	ctx, err := c.app.authenticate(ctx)
	if err != nil {
		return c.errorHandler.Handle("delete project", err)
	}

	if err := c.app.businessAPI.DeleteProject(ctx, args[0]); err != nil {
		return c.errorHandler.Handle("delete project", err)
	}

	c.app.printf("Deleted project %s\n", args[0])
	return nil
}

func taskMarker(t domain.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}
