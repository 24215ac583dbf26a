package services

import (
	"context"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"
)

// ProjectStore persists projects. FindByID returns soft-deleted projects
// and a NotFound error when the id is unknown.
type ProjectStore interface {
	Save(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindByOwnerIDExcludingDeleted(ctx context.Context, ownerID string) ([]domain.Project, error)
}

// TaskStore persists tasks.
type TaskStore interface {
	Save(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// ExistsActiveIncomplete reports whether the project currently has a task
	// that is neither completed nor deleted.
	ExistsActiveIncomplete(ctx context.Context, projectID string) (bool, error)
	FindByProjectIDExcludingDeleted(ctx context.Context, projectID string) ([]domain.Task, error)
}

// UserStore persists users.
type UserStore interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CurrentUserResolver returns the authenticated actor id or an Unauthenticated error.
type CurrentUserResolver interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// AuditSink records a completed mutation. It never fails the caller.
type AuditSink interface {
	Record(ctx context.Context, action string, entityID string)
}

// NotificationSink delivers a best-effort message. It never fails the caller.
type NotificationSink interface {
	Notify(ctx context.Context, message string)
}

// Hasher encodes and verifies passwords.
type Hasher interface {
	Encode(raw string) (string, error)
	Matches(raw string, hash string) bool
}

// TokenIssuer issues and inspects opaque bearer tokens.
type TokenIssuer interface {
	Issue(userID string, username string) (string, error)
	Validate(token string) bool
	Principal(token string) (domain.Principal, error)
}

// RegisterUserCommand is the input of RegisterUser
type RegisterUserCommand struct {
	Username string `json:"username" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUserCommand is the input of LoginUser
type LoginUserCommand struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// CreateProjectCommand is the input of CreateProject
type CreateProjectCommand struct {
	Name string `json:"name" validate:"required,notblank"`
}

// CreateTaskCommand is the input of CreateTask
type CreateTaskCommand struct {
	ProjectID string `json:"projectId" validate:"required,notblank"`
	Title     string `json:"title" validate:"required,notblank"`
}

// AuthResult reports the outcome of registration or login. Expected failures
// (duplicates, bad credentials) come back here with Success false instead of
// as an error.
type AuthResult struct {
	User    *domain.User
	Token   string
	Success bool
	Message string
	// Failure is a Conflict or Unauthenticated error when Success is false.
	Failure *errors.AppError
}

type RegisterUserUseCase interface {
	Execute(ctx context.Context, cmd RegisterUserCommand) (*AuthResult, error)
}

type LoginUserUseCase interface {
	Execute(ctx context.Context, cmd LoginUserCommand) (*AuthResult, error)
}

type CreateProjectUseCase interface {
	Execute(ctx context.Context, cmd CreateProjectCommand) (*domain.Project, error)
}

type ActivateProjectUseCase interface {
	Execute(ctx context.Context, projectID string) (*domain.Project, error)
}

type CreateTaskUseCase interface {
	Execute(ctx context.Context, cmd CreateTaskCommand) (*domain.Task, error)
}

type CompleteTaskUseCase interface {
	Execute(ctx context.Context, taskID string) (*domain.Task, error)
}

// ProjectQueries are the read paths of the current actor
type ProjectQueries interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	ListTasks(ctx context.Context, projectID string) ([]domain.Task, error)
}

type DeleteProjectUseCase interface {
	Execute(ctx context.Context, projectID string) error
}

type DeleteTaskUseCase interface {
	Execute(ctx context.Context, taskID string) error
}

// ServiceContainer manages all use cases and their dependencies
type ServiceContainer struct {
	RegisterUser    RegisterUserUseCase
	LoginUser       LoginUserUseCase
	CreateProject   CreateProjectUseCase
	ActivateProject ActivateProjectUseCase
	CreateTask      CreateTaskUseCase
	CompleteTask    CompleteTaskUseCase
	Queries         ProjectQueries
	DeleteProject   DeleteProjectUseCase
	DeleteTask      DeleteTaskUseCase
}
