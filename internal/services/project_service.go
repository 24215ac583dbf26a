package services

import (
	"context"
	"fmt"
	"time"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"

	"github.com/sirupsen/logrus"
)

// CreateProjectService creates DRAFT projects owned by the current actor
type CreateProjectService struct {
	projects    ProjectStore
	currentUser CurrentUserResolver
	audit       AuditSink
	notifier    NotificationSink
	newID       func() string
	now         func() time.Time
	log         logrus.FieldLogger
}

// NewCreateProjectService creates a new CreateProjectService instance
func NewCreateProjectService(deps Dependencies) *CreateProjectService {
	deps = deps.withDefaults()
	return &CreateProjectService{
		projects:    deps.Projects,
		currentUser: deps.CurrentUser,
		audit:       deps.Audit,
		notifier:    deps.Notifier,
		newID:       deps.NewID,
		now:         deps.Now,
		log:         deps.Logger,
	}
}

// Execute creates the project and emits CREATE_PROJECT plus a notification
func (s *CreateProjectService) Execute(ctx context.Context, cmd CreateProjectCommand) (*domain.Project, error) {
	actorID, err := s.currentUser.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	project := domain.NewProject(s.newID(), actorID, cmd.Name, s.now())
	saved, err := s.projects.Save(ctx, &project)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditCreateProject, saved.ID)
	s.notifier.Notify(ctx, fmt.Sprintf("Project '%s' has been created", saved.Name))

	s.log.WithFields(logrus.Fields{
		"project_id": saved.ID,
		"user_id":    actorID,
	}).Info("project created")

	return saved, nil
}

// ActivateProjectService moves an owned DRAFT project to ACTIVE
type ActivateProjectService struct {
	projects    ProjectStore
	tasks       TaskStore
	currentUser CurrentUserResolver
	audit       AuditSink
	notifier    NotificationSink
	log         logrus.FieldLogger
}

// NewActivateProjectService creates a new ActivateProjectService instance
func NewActivateProjectService(deps Dependencies) *ActivateProjectService {
	deps = deps.withDefaults()
	return &ActivateProjectService{
		projects:    deps.Projects,
		tasks:       deps.Tasks,
		currentUser: deps.CurrentUser,
		audit:       deps.Audit,
		notifier:    deps.Notifier,
		log:         deps.Logger,
	}
}

// Execute activates the project. Ownership is checked before any task state
// is read, so a non-owner always gets Forbidden.
//
// The task existence check and the status write are separate statements;
// two concurrent calls may both observe the same task state.
func (s *ActivateProjectService) Execute(ctx context.Context, projectID string) (*domain.Project, error) {
	actorID, err := s.currentUser.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	project, err := findOwnedProject(ctx, s.projects, projectID, actorID)
	if err != nil {
		return nil, err
	}

	hasActiveTask, err := s.tasks.ExistsActiveIncomplete(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	if cause := project.ActivationBlocker(hasActiveTask); cause != "" {
		s.log.WithFields(logrus.Fields{
			"project_id": project.ID,
			"status":     project.Status,
			"cause":      cause,
		}).Debug("project activation rejected")
		return nil, errors.NewBusinessRuleError(project.ActivationFailure(cause), cause, string(project.Status))
	}

	if err := project.Activate(hasActiveTask); err != nil {
		return nil, err
	}

	saved, err := s.projects.Save(ctx, project)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditActivateProject, saved.ID)
	s.notifier.Notify(ctx, fmt.Sprintf("Project '%s' has been activated", saved.Name))

	s.log.WithFields(logrus.Fields{
		"project_id": saved.ID,
		"user_id":    actorID,
	}).Info("project activated")

	return saved, nil
}
