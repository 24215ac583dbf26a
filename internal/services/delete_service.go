package services

import (
	"context"

	"project-tracker/internal/domain"

	"github.com/sirupsen/logrus"
)

// DeleteProjectService soft-deletes owned projects
type DeleteProjectService struct {
	projects    ProjectStore
	currentUser CurrentUserResolver
	audit       AuditSink
	log         logrus.FieldLogger
}

// NewDeleteProjectService creates a new DeleteProjectService instance
func NewDeleteProjectService(deps Dependencies) *DeleteProjectService {
	deps = deps.withDefaults()
	return &DeleteProjectService{
		projects:    deps.Projects,
		currentUser: deps.CurrentUser,
		audit:       deps.Audit,
		log:         deps.Logger,
	}
}

// Execute marks the project deleted. Deleting twice reports NotFound.
func (s *DeleteProjectService) Execute(ctx context.Context, projectID string) error {
	actorID, err := s.currentUser.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	project, err := findOwnedProject(ctx, s.projects, projectID, actorID)
	if err != nil {
		return err
	}

	project.MarkDeleted()
	if _, err := s.projects.Save(ctx, project); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditDeleteProject, project.ID)
	s.log.WithField("project_id", project.ID).Info("project deleted")
	return nil
}

// DeleteTaskService soft-deletes tasks of owned projects
type DeleteTaskService struct {
	projects    ProjectStore
	tasks       TaskStore
	currentUser CurrentUserResolver
	audit       AuditSink
	log         logrus.FieldLogger
}

// NewDeleteTaskService creates a new DeleteTaskService instance
func NewDeleteTaskService(deps Dependencies) *DeleteTaskService {
	deps = deps.withDefaults()
	return &DeleteTaskService{
		projects:    deps.Projects,
		tasks:       deps.Tasks,
		currentUser: deps.CurrentUser,
		audit:       deps.Audit,
		log:         deps.Logger,
	}
}

func (s *DeleteTaskService) Execute(ctx context.Context, taskID string) error {
	actorID, err := s.currentUser.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	task, err := findLiveTask(ctx, s.tasks, taskID)
	if err != nil {
		return err
	}
	if _, err := findOwnedProject(ctx, s.projects, task.ProjectID, actorID); err != nil {
		return err
	}

	task.MarkDeleted()
	if _, err := s.tasks.Save(ctx, task); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditDeleteTask, task.ID)
	s.log.WithField("task_id", task.ID).Info("task deleted")
	return nil
}
