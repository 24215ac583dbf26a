// Package repository adapts the sqlite repository to the store ports used by
// the services, converting rows with the domain mappers.
package repository

import (
	"context"

	"project-tracker/internal/domain"
	"project-tracker/internal/repository/sqlite"
)

// ProjectStore persists projects in the projects table
type ProjectStore struct {
	repo   sqlite.Repository
	mapper *domain.ProjectMapper
}

// NewProjectStore creates a new ProjectStore
func NewProjectStore(repo sqlite.Repository) *ProjectStore {
	return &ProjectStore{repo: repo, mapper: domain.NewProjectMapper()}
}

func (s *ProjectStore) Save(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	row := s.mapper.ToDatabase(*project)
	if err := s.repo.SaveProject(ctx, &row); err != nil {
		return nil, err
	}
	saved := s.mapper.FromDatabase(row)
	return &saved, nil
}

// FindByID returns the project including soft-deleted ones
func (s *ProjectStore) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	row, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project := s.mapper.FromDatabase(*row)
	return &project, nil
}

func (s *ProjectStore) FindByOwnerIDExcludingDeleted(ctx context.Context, ownerID string) ([]domain.Project, error) {
	rows, err := s.repo.ListProjectsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.mapper.FromDatabaseSlice(rows), nil
}

// TaskStore persists tasks in the tasks table
type TaskStore struct {
	repo   sqlite.Repository
	mapper *domain.TaskMapper
}

// NewTaskStore creates a new TaskStore
func NewTaskStore(repo sqlite.Repository) *TaskStore {
	return &TaskStore{repo: repo, mapper: domain.NewTaskMapper()}
}

func (s *TaskStore) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	row := s.mapper.ToDatabase(*task)
	if err := s.repo.SaveTask(ctx, &row); err != nil {
		return nil, err
	}
	saved := s.mapper.FromDatabase(row)
	return &saved, nil
}

func (s *TaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	row, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task := s.mapper.FromDatabase(*row)
	return &task, nil
}

// ExistsActiveIncomplete runs a single EXISTS query against current rows
func (s *TaskStore) ExistsActiveIncomplete(ctx context.Context, projectID string) (bool, error) {
	return s.repo.HasActiveTask(ctx, projectID)
}

func (s *TaskStore) FindByProjectIDExcludingDeleted(ctx context.Context, projectID string) ([]domain.Task, error) {
	rows, err := s.repo.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.mapper.FromDatabaseSlice(rows), nil
}

// UserStore persists users in the users table
type UserStore struct {
	repo   sqlite.Repository
	mapper *domain.UserMapper
}

// NewUserStore creates a new UserStore
func NewUserStore(repo sqlite.Repository) *UserStore {
	return &UserStore{repo: repo, mapper: domain.NewUserMapper()}
}

// Save inserts the user. Duplicate usernames or emails surface as Conflict errors.
func (s *UserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := s.mapper.ToDatabase(*user)
	if err := s.repo.CreateUser(ctx, &row); err != nil {
		return nil, err
	}
	saved := s.mapper.FromDatabase(row)
	return &saved, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user := s.mapper.FromDatabase(*row)
	return &user, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user := s.mapper.FromDatabase(*row)
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	user := s.mapper.FromDatabase(*row)
	return &user, nil
}

func (s *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.repo.UserExistsByUsername(ctx, username)
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.repo.UserExistsByEmail(ctx, email)
}

// AuditStore reads and writes the audit_logs table
type AuditStore struct {
	repo   sqlite.Repository
	mapper *domain.AuditMapper
}

// NewAuditStore creates a new AuditStore
func NewAuditStore(repo sqlite.Repository) *AuditStore {
	return &AuditStore{repo: repo, mapper: domain.NewAuditMapper()}
}

func (s *AuditStore) Append(ctx context.Context, entry domain.AuditEntry) error {
	row := s.mapper.ToDatabase(entry)
	return s.repo.CreateAuditLog(ctx, &row)
}

// ListByEntity returns the audit trail of one entity, oldest first
func (s *AuditStore) ListByEntity(ctx context.Context, entityID string) ([]domain.AuditEntry, error) {
	rows, err := s.repo.ListAuditLogs(ctx, entityID)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.AuditEntry, len(rows))
	for i, row := range rows {
		entries[i] = s.mapper.FromDatabase(*row)
	}
	return entries, nil
}
