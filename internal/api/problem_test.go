package api

import (
	"fmt"
	"net/http"
	"testing"

	apperrors "project-tracker/internal/errors"
	"project-tracker/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestProblemFor(t *testing.T) {
	fields := validation.NewValidationError()
	fields.AddRequiredError("name")

	tests := []struct {
		name   string
		err    error
		status int
		slug   string
		cause  string
	}{
		{name: "validation", err: fields.AppError(), status: http.StatusBadRequest, slug: "validation-error"},
		{name: "invalid input", err: apperrors.NewInvalidInputError("body", "", "bad"), status: http.StatusBadRequest, slug: "bad-request"},
		{name: "unauthenticated", err: apperrors.NewUnauthenticatedError("invalid token"), status: http.StatusUnauthorized, slug: "unauthorized"},
		{name: "forbidden", err: apperrors.NewForbiddenError("project", "p-1", "u-2"), status: http.StatusForbidden, slug: "forbidden"},
		{name: "not found", err: apperrors.NewNotFoundError("project", "p-1"), status: http.StatusNotFound, slug: "not-found"},
		{name: "conflict", err: apperrors.NewConflictError("username", "alice", "Username already exists"), status: http.StatusConflict, slug: "conflict"},
		{
			name:   "business rule",
			err:    apperrors.NewBusinessRuleError("no active task", apperrors.CauseNoActiveTask, "DRAFT"),
			status: http.StatusUnprocessableEntity,
			slug:   "business-rule-violation",
			cause:  apperrors.CauseNoActiveTask,
		},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", apperrors.NewNotFoundError("task", "t-1")), status: http.StatusNotFound, slug: "not-found"},
		{name: "invalid state", err: apperrors.NewInvalidStateError("broken", apperrors.CauseAlreadyCompleted), status: http.StatusInternalServerError, slug: "internal-error"},
		{name: "database", err: apperrors.NewDatabaseError("insert", fmt.Errorf("disk full")), status: http.StatusInternalServerError, slug: "internal-error"},
		{name: "plain error", err: fmt.Errorf("boom"), status: http.StatusInternalServerError, slug: "internal-error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ProblemFor(tt.err, "/api/x")

			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, problemTypeBase+tt.slug, p.Type)
			assert.Equal(t, tt.cause, p.Cause)
			assert.Equal(t, "/api/x", p.Instance)
			assert.False(t, p.Timestamp.IsZero())

			if tt.status == http.StatusInternalServerError {
				assert.NotEmpty(t, p.TraceID)
				assert.Contains(t, p.Detail, p.TraceID)
				assert.NotContains(t, p.Detail, "disk full")
			} else {
				assert.Empty(t, p.TraceID)
			}
		})
	}
}

func TestProblemFor_CarriesFieldErrors(t *testing.T) {
	fields := validation.NewValidationError()
	fields.AddRequiredError("title")
	fields.AddInvalidLengthError("name", "x", 0, 5)

	p := ProblemFor(fields.AppError(), "")
	if assert.Len(t, p.Errors, 2) {
		assert.Equal(t, "title", p.Errors[0].Field)
		assert.Equal(t, validation.ErrorTypeInvalidLength, p.Errors[1].Type)
	}
}
