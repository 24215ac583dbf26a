package validation

import (
	stderrors "errors"
	"strings"
	"testing"

	"project-tracker/internal/config"
	apperrors "project-tracker/internal/errors"
	"project-tracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateRegisterUser(t *testing.T) {
	tests := []struct {
		name           string
		cmd            services.RegisterUserCommand
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name: "should accept valid registration",
			cmd:  services.RegisterUserCommand{Username: "alice", Email: "alice@example.com", Password: "secret1"},
		},
		{
			name:           "should require every field",
			cmd:            services.RegisterUserCommand{},
			errorAssertion: assertFields("username", "email", "password"),
		},
		{
			name:           "should reject blank username",
			cmd:            services.RegisterUserCommand{Username: "   ", Email: "alice@example.com", Password: "secret1"},
			errorAssertion: assertFields("username"),
		},
		{
			name:           "should reject short username",
			cmd:            services.RegisterUserCommand{Username: "al", Email: "alice@example.com", Password: "secret1"},
			errorAssertion: assertFields("username"),
		},
		{
			name:           "should reject long username",
			cmd:            services.RegisterUserCommand{Username: strings.Repeat("a", 51), Email: "alice@example.com", Password: "secret1"},
			errorAssertion: assertFields("username"),
		},
		{
			name:           "should reject malformed email",
			cmd:            services.RegisterUserCommand{Username: "alice", Email: "not-an-email", Password: "secret1"},
			errorAssertion: assertFields("email"),
		},
		{
			name:           "should reject short password",
			cmd:            services.RegisterUserCommand{Username: "alice", Email: "alice@example.com", Password: "12345"},
			errorAssertion: assertFields("password"),
		},
		{
			name: "should accept password of exactly 72 bytes",
			cmd:  services.RegisterUserCommand{Username: "alice", Email: "alice@example.com", Password: strings.Repeat("p", 72)},
		},
		{
			name:           "should reject password over 72 bytes",
			cmd:            services.RegisterUserCommand{Username: "alice", Email: "alice@example.com", Password: strings.Repeat("p", 73)},
			errorAssertion: assertFields("password"),
		},
		{
			name:           "should count password bytes not characters",
			cmd:            services.RegisterUserCommand{Username: "alice", Email: "alice@example.com", Password: strings.Repeat("é", 37)},
			errorAssertion: assertFields("password"),
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.cmd
			err := v.ValidateRegisterUser(&cmd)
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidator_ValidateRegisterUser_TrimsInput(t *testing.T) {
	cmd := services.RegisterUserCommand{Username: "  alice ", Email: " alice@example.com ", Password: " secret1 "}

	require.NoError(t, NewValidator().ValidateRegisterUser(&cmd))
	assert.Equal(t, "alice", cmd.Username)
	assert.Equal(t, "alice@example.com", cmd.Email)
	assert.Equal(t, " secret1 ", cmd.Password, "passwords are taken verbatim")
}

func TestValidator_ValidateLoginUser(t *testing.T) {
	v := NewValidator()

	cmd := services.LoginUserCommand{Username: " alice ", Password: "x"}
	require.NoError(t, v.ValidateLoginUser(&cmd))
	assert.Equal(t, "alice", cmd.Username)

	assertFields("username", "password")(t, v.ValidateLoginUser(&services.LoginUserCommand{Username: " "}))
}

func TestValidator_ValidateCreateProject(t *testing.T) {
	tests := []struct {
		name           string
		projectName    string
		errorAssertion func(t *testing.T, err error)
	}{
		{name: "should accept name", projectName: "Website"},
		{name: "should accept name at limit", projectName: strings.Repeat("é", 255)},
		{name: "should reject empty name", projectName: "", errorAssertion: assertFields("name")},
		{name: "should reject whitespace name", projectName: " \t ", errorAssertion: assertFields("name")},
		{name: "should reject name over limit", projectName: strings.Repeat("a", 256), errorAssertion: assertFields("name")},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreateProject(&services.CreateProjectCommand{Name: tt.projectName})
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidator_ValidateCreateTask(t *testing.T) {
	v := NewValidator()

	cmd := services.CreateTaskCommand{ProjectID: " p-1 ", Title: "  Write docs "}
	require.NoError(t, v.ValidateCreateTask(&cmd))
	assert.Equal(t, "p-1", cmd.ProjectID)
	assert.Equal(t, "Write docs", cmd.Title)

	assertFields("projectId", "title")(t, v.ValidateCreateTask(&services.CreateTaskCommand{}))
	assertFields("title")(t, v.ValidateCreateTask(&services.CreateTaskCommand{ProjectID: "p-1", Title: strings.Repeat("t", 256)}))
}

func TestValidator_ConfiguredLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.ProjectNameMaxLength = 5
	cfg.Validation.PasswordMinLength = 10
	v := NewValidatorWithConfig(cfg)

	assertFields("name")(t, v.ValidateCreateProject(&services.CreateProjectCommand{Name: "Website"}))
	assertFields("password")(t, v.ValidateRegisterUser(&services.RegisterUserCommand{
		Username: "alice", Email: "alice@example.com", Password: "secret1",
	}))
}

func TestValidator_ValidateID(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.ValidateID("projectId", "p-1"))
	assertFields("projectId")(t, v.ValidateID("projectId", " "))
}

func assertFields(fields ...string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))

		var ve *ValidationError
		require.True(t, stderrors.As(err, &ve))
		got := make([]string, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			got = append(got, fe.Field)
		}
		assert.ElementsMatch(t, fields, got)
	}
}

func TestNewValidator_RegistersNotBlank(t *testing.T) {
	var v *Validator
	require.NotPanics(t, func() { v = NewValidator() })
	assertFields("name")(t, v.ValidateCreateProject(&services.CreateProjectCommand{Name: " \t "}))
}
