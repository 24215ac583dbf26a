package domain

import (
	"testing"
	"time"

	"project-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	task := NewTask("t-1", "p-1", "Write docs", created)

	assert.Equal(t, Task{ID: "t-1", ProjectID: "p-1", Title: "Write docs", CreatedAt: created}, task)
	assert.True(t, task.IsActive())
	assert.Equal(t, "Write docs", task.String())
}

func TestTask_Complete(t *testing.T) {
	tests := []struct {
		name            string
		task            Task
		projectIsActive bool
		expectedCause   string
	}{
		{
			name:            "incomplete task on active project",
			task:            Task{ID: "t-1"},
			projectIsActive: true,
		},
		{
			name:            "already completed",
			task:            Task{ID: "t-1", Completed: true},
			projectIsActive: true,
			expectedCause:   errors.CauseAlreadyCompleted,
		},
		{
			name:            "deleted task",
			task:            Task{ID: "t-1", Deleted: true},
			projectIsActive: true,
			expectedCause:   errors.CauseTaskDeleted,
		},
		{
			name:            "project not active",
			task:            Task{ID: "t-1"},
			projectIsActive: false,
			expectedCause:   errors.CauseProjectNotActive,
		},
		{
			name:            "deleted wins over completed",
			task:            Task{ID: "t-1", Deleted: true, Completed: true},
			projectIsActive: false,
			expectedCause:   errors.CauseTaskDeleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.task
			wasCompleted := task.Completed

			assert.Equal(t, tt.expectedCause == "", task.CanComplete(tt.projectIsActive))
			err := task.Complete(tt.projectIsActive)

			if tt.expectedCause == "" {
				require.NoError(t, err)
				assert.True(t, task.Completed)
				return
			}

			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.True(t, appErr.IsType(errors.ErrorTypeInvalidState))
			assert.Equal(t, tt.expectedCause, appErr.SubCause())
			assert.Equal(t, wasCompleted, task.Completed, "completed flag must not change on failure")
		})
	}
}

func TestTask_CompleteTwice(t *testing.T) {
	task := NewTask("t-1", "p-1", "Once", time.Now())

	require.NoError(t, task.Complete(true))
	err := task.Complete(true)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already completed")
}

func TestTask_MarkDeleted(t *testing.T) {
	task := NewTask("t-1", "p-1", "Gone", time.Now())

	task.MarkDeleted()
	task.MarkDeleted()

	assert.True(t, task.Deleted)
	assert.False(t, task.Completed)
	assert.False(t, task.IsActive())
}
