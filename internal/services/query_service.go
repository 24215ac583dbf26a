package services

import (
	"context"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"
)

// ProjectQueryService implements the read paths of the current actor
type ProjectQueryService struct {
	projects    ProjectStore
	tasks       TaskStore
	currentUser CurrentUserResolver
}

// NewProjectQueryService creates a new ProjectQueryService instance
func NewProjectQueryService(deps Dependencies) *ProjectQueryService {
	return &ProjectQueryService{
		projects:    deps.Projects,
		tasks:       deps.Tasks,
		currentUser: deps.CurrentUser,
	}
}

// ListProjects returns the actor's non-deleted projects
func (s *ProjectQueryService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	actorID, err := s.currentUser.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.projects.FindByOwnerIDExcludingDeleted(ctx, actorID)
}

// GetProject returns one project. Projects of other users are reported as
// not found so their existence is not disclosed.
func (s *ProjectQueryService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	actorID, err := s.currentUser.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	project, err := findLiveProject(ctx, s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsOwnedBy(actorID) {
		return nil, errors.NewNotFoundError("project", projectID)
	}
	return project, nil
}

// ListTasks returns the non-deleted tasks of an owned project
func (s *ProjectQueryService) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	actorID, err := s.currentUser.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := findOwnedProject(ctx, s.projects, projectID, actorID); err != nil {
		return nil, err
	}
	return s.tasks.FindByProjectIDExcludingDeleted(ctx, projectID)
}
