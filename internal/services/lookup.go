package services

import (
	"context"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"
)

// findLiveProject loads a project and treats soft-deleted rows as missing.
func findLiveProject(ctx context.Context, store ProjectStore, projectID string) (*domain.Project, error) {
	project, err := store.FindByID(ctx, projectID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewNotFoundError("project", projectID)
		}
		return nil, err
	}
	if project == nil || project.Deleted {
		return nil, errors.NewNotFoundError("project", projectID)
	}
	return project, nil
}

// findLiveTask loads a task and treats soft-deleted rows as missing.
func findLiveTask(ctx context.Context, store TaskStore, taskID string) (*domain.Task, error) {
	task, err := store.FindByID(ctx, taskID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewNotFoundError("task", taskID)
		}
		return nil, err
	}
	if task == nil || task.Deleted {
		return nil, errors.NewNotFoundError("task", taskID)
	}
	return task, nil
}

// findOwnedProject applies the NotFound gate before the ownership gate.
func findOwnedProject(ctx context.Context, store ProjectStore, projectID, actorID string) (*domain.Project, error) {
	project, err := findLiveProject(ctx, store, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsOwnedBy(actorID) {
		return nil, errors.NewForbiddenError("project", projectID, actorID)
	}
	return project, nil
}
