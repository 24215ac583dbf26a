package services

import (
	"context"
	"fmt"
	"time"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"

	"github.com/sirupsen/logrus"
)

// CreateTaskService adds tasks to projects owned by the current actor
type CreateTaskService struct {
	projects    ProjectStore
	tasks       TaskStore
	currentUser CurrentUserResolver
	audit       AuditSink
	notifier    NotificationSink
	newID       func() string
	now         func() time.Time
	log         logrus.FieldLogger
}

// NewCreateTaskService creates a new CreateTaskService instance
func NewCreateTaskService(deps Dependencies) *CreateTaskService {
	deps = deps.withDefaults()
	return &CreateTaskService{
		projects:    deps.Projects,
		tasks:       deps.Tasks,
		currentUser: deps.CurrentUser,
		audit:       deps.Audit,
		notifier:    deps.Notifier,
		newID:       deps.NewID,
		now:         deps.Now,
		log:         deps.Logger,
	}
}

// Execute creates an incomplete task. The project may be DRAFT or ACTIVE.
func (s *CreateTaskService) Execute(ctx context.Context, cmd CreateTaskCommand) (*domain.Task, error) {
	actorID, err := s.currentUser.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	project, err := findOwnedProject(ctx, s.projects, cmd.ProjectID, actorID)
	if err != nil {
		return nil, err
	}

	task := domain.NewTask(s.newID(), project.ID, cmd.Title, s.now())
	saved, err := s.tasks.Save(ctx, &task)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditCreateTask, saved.ID)
	s.notifier.Notify(ctx, fmt.Sprintf("Task '%s' has been created", saved.Title))

	s.log.WithFields(logrus.Fields{
		"task_id":    saved.ID,
		"project_id": project.ID,
		"user_id":    actorID,
	}).Info("task created")

	return saved, nil
}

// CompleteTaskService completes tasks of ACTIVE projects owned by the current actor
type CompleteTaskService struct {
	projects    ProjectStore
	tasks       TaskStore
	currentUser CurrentUserResolver
	audit       AuditSink
	notifier    NotificationSink
	log         logrus.FieldLogger
}

// NewCompleteTaskService creates a new CompleteTaskService instance
func NewCompleteTaskService(deps Dependencies) *CompleteTaskService {
	deps = deps.withDefaults()
	return &CompleteTaskService{
		projects:    deps.Projects,
		tasks:       deps.Tasks,
		currentUser: deps.CurrentUser,
		audit:       deps.Audit,
		notifier:    deps.Notifier,
		log:         deps.Logger,
	}
}

// Execute completes the task. A task whose project is missing or deleted is
// reported as a missing project.
func (s *CompleteTaskService) Execute(ctx context.Context, taskID string) (*domain.Task, error) {
	actorID, err := s.currentUser.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	task, err := findLiveTask(ctx, s.tasks, taskID)
	if err != nil {
		return nil, err
	}

	project, err := findOwnedProject(ctx, s.projects, task.ProjectID, actorID)
	if err != nil {
		return nil, err
	}

	if cause := task.CompletionBlocker(project.IsActive()); cause != "" {
		s.log.WithFields(logrus.Fields{
			"task_id":        task.ID,
			"project_status": project.Status,
			"cause":          cause,
		}).Debug("task completion rejected")
		return nil, errors.NewBusinessRuleError(domain.CompletionFailure(cause), cause, string(project.Status))
	}

	if err := task.Complete(project.IsActive()); err != nil {
		return nil, err
	}

	saved, err := s.tasks.Save(ctx, task)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditCompleteTask, saved.ID)
	s.notifier.Notify(ctx, fmt.Sprintf("Task '%s' has been completed", saved.Title))

	s.log.WithFields(logrus.Fields{
		"task_id":    saved.ID,
		"project_id": project.ID,
		"user_id":    actorID,
	}).Info("task completed")

	return saved, nil
}
