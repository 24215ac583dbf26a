package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Dependencies are the collaborators shared by the use cases
type Dependencies struct {
	Projects    ProjectStore
	Tasks       TaskStore
	Users       UserStore
	CurrentUser CurrentUserResolver
	Audit       AuditSink
	Notifier    NotificationSink
	Hasher      Hasher
	Tokens      TokenIssuer

	// Optional. Default to uuid.NewString, time.Now and the logrus standard logger.
	NewID  func() string
	Now    func() time.Time
	Logger logrus.FieldLogger
}

func (d Dependencies) withDefaults() Dependencies {
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	return d
}

// NewServiceContainer builds every use case from one set of dependencies
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	deps = deps.withDefaults()
	return &ServiceContainer{
		RegisterUser:    NewRegisterUserService(deps),
		LoginUser:       NewLoginUserService(deps),
		CreateProject:   NewCreateProjectService(deps),
		ActivateProject: NewActivateProjectService(deps),
		CreateTask:      NewCreateTaskService(deps),
		CompleteTask:    NewCompleteTaskService(deps),
		Queries:         NewProjectQueryService(deps),
		DeleteProject:   NewDeleteProjectService(deps),
		DeleteTask:      NewDeleteTaskService(deps),
	}
}
