package domain

import (
	"fmt"
	"time"

	"project-tracker/internal/errors"
)

// ProjectStatus is the lifecycle state of a Project.
type ProjectStatus string

const (
	ProjectStatusDraft  ProjectStatus = "DRAFT"
	ProjectStatusActive ProjectStatus = "ACTIVE"
)

// Project represents a project in the domain model.
// A project starts in DRAFT and may move to ACTIVE exactly once.
type Project struct {
	ID        string
	OwnerID   string
	Name      string
	Status    ProjectStatus
	Deleted   bool
	CreatedAt time.Time
}

// NewProject creates a new DRAFT project owned by ownerID.
func NewProject(id, ownerID, name string, createdAt time.Time) Project {
	return Project{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Status:    ProjectStatusDraft,
		CreatedAt: createdAt,
	}
}

// IsActive reports whether the project has been activated.
func (p Project) IsActive() bool {
	return p.Status == ProjectStatusActive
}

// IsOwnedBy reports whether userID owns the project.
func (p Project) IsOwnedBy(userID string) bool {
	return p.OwnerID == userID
}

// CanActivate reports whether Activate would succeed.
func (p Project) CanActivate(hasActiveTask bool) bool {
	return p.ActivationBlocker(hasActiveTask) == ""
}

// ActivationBlocker returns the cause preventing activation, or "" if none.
func (p Project) ActivationBlocker(hasActiveTask bool) string {
	switch {
	case p.Deleted:
		return errors.CauseProjectDeleted
	case p.Status != ProjectStatusDraft:
		return errors.CauseProjectNotDraft
	case !hasActiveTask:
		return errors.CauseNoActiveTask
	}
	return ""
}

// Activate moves the project to ACTIVE. The status is left unchanged on failure.
func (p *Project) Activate(hasActiveTask bool) error {
	if cause := p.ActivationBlocker(hasActiveTask); cause != "" {
		return errors.NewInvalidStateError(p.ActivationFailure(cause), cause)
	}
	p.Status = ProjectStatusActive
	return nil
}

// ActivationFailure describes cause for this project.
func (p Project) ActivationFailure(cause string) string {
	switch cause {
	case errors.CauseProjectDeleted:
		return "project cannot be activated: project is deleted"
	case errors.CauseProjectNotDraft:
		return fmt.Sprintf("project cannot be activated: status is %s, expected %s", p.Status, ProjectStatusDraft)
	case errors.CauseNoActiveTask:
		return "project cannot be activated: no active task"
	default:
		return "project cannot be activated"
	}
}

// MarkDeleted soft-deletes the project. Status is not touched.
func (p *Project) MarkDeleted() {
	p.Deleted = true
}

// String returns the project name for display purposes.
func (p Project) String() string {
	return p.Name
}
