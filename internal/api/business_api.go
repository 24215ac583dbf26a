package api

import (
	"context"

	"project-tracker/internal/domain"
	"project-tracker/internal/security"
	"project-tracker/internal/services"
	"project-tracker/internal/validation"
)

// BusinessAPI is the boundary shared by the HTTP server and the CLI. Every
// call validates its input before reaching a use case.
type BusinessAPI interface {
	// ========== Accounts ==========

	// Register creates an account. Duplicates come back as an unsuccessful result.
	Register(ctx context.Context, cmd services.RegisterUserCommand) (*services.AuthResult, error)

	// Login exchanges credentials for a token
	Login(ctx context.Context, cmd services.LoginUserCommand) (*services.AuthResult, error)

	// Authenticate resolves a bearer token and returns a context carrying its principal
	Authenticate(ctx context.Context, token string) (context.Context, error)

	// ========== Projects ==========

	CreateProject(ctx context.Context, cmd services.CreateProjectCommand) (*domain.Project, error)
	ActivateProject(ctx context.Context, projectID string) (*domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	DeleteProject(ctx context.Context, projectID string) error

	// ========== Tasks ==========

	CreateTask(ctx context.Context, cmd services.CreateTaskCommand) (*domain.Task, error)
	CompleteTask(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, projectID string) ([]domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

type businessAPIImpl struct {
	services  *services.ServiceContainer
	validator *validation.Validator
	tokens    services.TokenIssuer
}

// NewBusinessAPI creates the boundary over an already wired service container
func NewBusinessAPI(container *services.ServiceContainer, validator *validation.Validator, tokens services.TokenIssuer) BusinessAPI {
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &businessAPIImpl{
		services:  container,
		validator: validator,
		tokens:    tokens,
	}
}

func (b *businessAPIImpl) Register(ctx context.Context, cmd services.RegisterUserCommand) (*services.AuthResult, error) {
	if err := b.validator.ValidateRegisterUser(&cmd); err != nil {
		return nil, err
	}
	return b.services.RegisterUser.Execute(ctx, cmd)
}

func (b *businessAPIImpl) Login(ctx context.Context, cmd services.LoginUserCommand) (*services.AuthResult, error) {
	if err := b.validator.ValidateLoginUser(&cmd); err != nil {
		return nil, err
	}
	return b.services.LoginUser.Execute(ctx, cmd)
}

func (b *businessAPIImpl) Authenticate(ctx context.Context, token string) (context.Context, error) {
	principal, err := b.tokens.Principal(token)
	if err != nil {
		return ctx, err
	}
	return security.WithPrincipal(ctx, principal), nil
}

func (b *businessAPIImpl) CreateProject(ctx context.Context, cmd services.CreateProjectCommand) (*domain.Project, error) {
	if err := b.validator.ValidateCreateProject(&cmd); err != nil {
		return nil, err
	}
	return b.services.CreateProject.Execute(ctx, cmd)
}

func (b *businessAPIImpl) ActivateProject(ctx context.Context, projectID string) (*domain.Project, error) {
	if err := b.validator.ValidateID("projectId", projectID); err != nil {
		return nil, err
	}
	return b.services.ActivateProject.Execute(ctx, projectID)
}

func (b *businessAPIImpl) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	if err := b.validator.ValidateID("projectId", projectID); err != nil {
		return nil, err
	}
	return b.services.Queries.GetProject(ctx, projectID)
}

func (b *businessAPIImpl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return b.services.Queries.ListProjects(ctx)
}

func (b *businessAPIImpl) DeleteProject(ctx context.Context, projectID string) error {
	if err := b.validator.ValidateID("projectId", projectID); err != nil {
		return err
	}
	return b.services.DeleteProject.Execute(ctx, projectID)
}

func (b *businessAPIImpl) CreateTask(ctx context.Context, cmd services.CreateTaskCommand) (*domain.Task, error) {
	if err := b.validator.ValidateCreateTask(&cmd); err != nil {
		return nil, err
	}
	return b.services.CreateTask.Execute(ctx, cmd)
}

func (b *businessAPIImpl) CompleteTask(ctx context.Context, taskID string) (*domain.Task, error) {
	if err := b.validator.ValidateID("taskId", taskID); err != nil {
		return nil, err
	}
	return b.services.CompleteTask.Execute(ctx, taskID)
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	if err := b.validator.ValidateID("projectId", projectID); err != nil {
		return nil, err
	}
	return b.services.Queries.ListTasks(ctx, projectID)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, taskID string) error {
	if err := b.validator.ValidateID("taskId", taskID); err != nil {
		return err
	}
	return b.services.DeleteTask.Execute(ctx, taskID)
}
