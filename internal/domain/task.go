package domain

import (
	"time"

	"project-tracker/internal/errors"
)

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID        string
	ProjectID string
	Title     string
	Completed bool
	Deleted   bool
	CreatedAt time.Time
}

// NewTask creates a new incomplete Task under projectID.
func NewTask(id, projectID, title string, createdAt time.Time) Task {
	return Task{
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		CreatedAt: createdAt,
	}
}

// IsActive reports whether the task is neither completed nor deleted.
func (t Task) IsActive() bool {
	return !t.Completed && !t.Deleted
}

// CanComplete reports whether Complete would succeed.
func (t Task) CanComplete(projectIsActive bool) bool {
	return t.CompletionBlocker(projectIsActive) == ""
}

// CompletionBlocker returns the cause preventing completion, or "" if none.
func (t Task) CompletionBlocker(projectIsActive bool) string {
	switch {
	case t.Deleted:
		return errors.CauseTaskDeleted
	case t.Completed:
		return errors.CauseAlreadyCompleted
	case !projectIsActive:
		return errors.CauseProjectNotActive
	}
	return ""
}

// Complete marks the task completed. Completed is left unchanged on failure.
func (t *Task) Complete(projectIsActive bool) error {
	if cause := t.CompletionBlocker(projectIsActive); cause != "" {
		return errors.NewInvalidStateError(CompletionFailure(cause), cause)
	}
	t.Completed = true
	return nil
}

// CompletionFailure describes a completion blocker.
func CompletionFailure(cause string) string {
	switch cause {
	case errors.CauseTaskDeleted:
		return "task cannot be completed: task is deleted"
	case errors.CauseAlreadyCompleted:
		return "task cannot be completed: already completed"
	case errors.CauseProjectNotActive:
		return "task cannot be completed: project is not active"
	default:
		return "task cannot be completed"
	}
}

// MarkDeleted soft-deletes the task.
func (t *Task) MarkDeleted() {
	t.Deleted = true
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
