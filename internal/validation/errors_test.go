package validation

import (
	stderrors "errors"
	"testing"

	apperrors "project-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		expected string
	}{
		{name: "no errors", errors: []FieldError{}, expected: "validation error"},
		{
			name:     "single error",
			errors:   []FieldError{{Field: "name", Message: "is required"}},
			expected: "validation error for field 'name': is required",
		},
		{
			name: "multiple errors",
			errors: []FieldError{
				{Field: "name", Message: "is required"},
				{Field: "title", Message: "is too long"},
			},
			expected: "multiple validation errors: validation error for field 'name': is required; validation error for field 'title': is too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			assert.Equal(t, tt.expected, ve.Error())
		})
	}
}

func TestValidationError_AddHelpers(t *testing.T) {
	ve := NewValidationError()
	assert.False(t, ve.HasErrors())

	ve.AddRequiredError("username")
	ve.AddInvalidFormatError("email", "nope", "email address")
	ve.AddInvalidLengthError("password", "abc", 6, 0)
	ve.AddInvalidLengthError("title", "x", 0, 255)
	ve.AddInvalidLengthError("username", "ab", 3, 50)
	ve.AddInvalidValueError("projectId", "?", "unknown")

	require.Len(t, ve.Errors, 6)
	assert.True(t, ve.HasErrors())
	assert.True(t, ve.HasField("email"))
	assert.False(t, ve.HasField("name"))

	assert.Equal(t, ErrorTypeRequired, ve.Errors[0].Type)
	assert.Equal(t, "username is required", ve.Errors[0].Message)
	assert.Equal(t, ErrorTypeInvalidFormat, ve.Errors[1].Type)
	assert.Equal(t, "email has invalid format, expected: email address", ve.Errors[1].Message)
	assert.Equal(t, "password must be at least 6 characters long", ve.Errors[2].Message)
	assert.Equal(t, "title must be at most 255 characters long", ve.Errors[3].Message)
	assert.Equal(t, "username must be between 3 and 50 characters long", ve.Errors[4].Message)
	assert.Equal(t, ErrorTypeInvalidValue, ve.Errors[5].Type)
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	assert.Equal(t, "Input validation failed", ve.GetUserFriendlyMessage())

	ve.AddRequiredError("name")
	assert.Equal(t, "name is required", ve.GetUserFriendlyMessage())

	ve.AddRequiredError("title")
	assert.Equal(t, "name is required; title is required", ve.GetUserFriendlyMessage())
}

func TestValidationError_AppError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name")

	appErr := ve.AppError()
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "name is required", appErr.Message)

	var fields *ValidationError
	require.True(t, stderrors.As(appErr, &fields))
	assert.Same(t, ve, fields)
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")

	assert.True(t, IsValidationError(ve))
	assert.True(t, IsValidationError(ve.AppError()))
	assert.False(t, IsValidationError(apperrors.NewInvalidInputError("taskId", "", "required")))
	assert.False(t, IsValidationError(stderrors.New("plain")))
}
