package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"project-tracker/internal/config"
	"project-tracker/internal/services"

	"github.com/go-playground/validator/v10"
)

// Validator checks commands at the boundary before they reach a use case
type Validator struct {
	validate *validator.Validate
	limits   config.ValidationConfig
}

// NewValidator creates a validator with default limits
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a validator with configured limits.
// A nil config selects the defaults.
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	// notblank rejects strings made only of whitespace
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}

	return &Validator{validate: v, limits: cfg.Validation}
}

// ValidateRegisterUser trims the username and email and validates the command
func (v *Validator) ValidateRegisterUser(cmd *services.RegisterUserCommand) error {
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Email = strings.TrimSpace(cmd.Email)

	ve := v.structErrors(cmd)
	if !ve.HasField("username") {
		v.checkLength(ve, "username", cmd.Username, v.limits.UsernameMinLength, v.limits.UsernameMaxLength)
	}
	if !ve.HasField("password") {
		v.checkLength(ve, "password", cmd.Password, v.limits.PasswordMinLength, 0)
	}
	if !ve.HasField("password") && v.limits.PasswordMaxBytes > 0 && len(cmd.Password) > v.limits.PasswordMaxBytes {
		ve.AddTooManyBytesError("password", v.limits.PasswordMaxBytes)
	}
	return result(ve)
}

// ValidateLoginUser only checks presence; length rules would leak which
// accounts exist.
func (v *Validator) ValidateLoginUser(cmd *services.LoginUserCommand) error {
	cmd.Username = strings.TrimSpace(cmd.Username)
	return result(v.structErrors(cmd))
}

// ValidateCreateProject trims the name and validates the command
func (v *Validator) ValidateCreateProject(cmd *services.CreateProjectCommand) error {
	cmd.Name = strings.TrimSpace(cmd.Name)

	ve := v.structErrors(cmd)
	if !ve.HasField("name") {
		v.checkLength(ve, "name", cmd.Name, 0, v.limits.ProjectNameMaxLength)
	}
	return result(ve)
}

// ValidateCreateTask trims the title and validates the command
func (v *Validator) ValidateCreateTask(cmd *services.CreateTaskCommand) error {
	cmd.ProjectID = strings.TrimSpace(cmd.ProjectID)
	cmd.Title = strings.TrimSpace(cmd.Title)

	ve := v.structErrors(cmd)
	if !ve.HasField("title") {
		v.checkLength(ve, "title", cmd.Title, 0, v.limits.TaskTitleMaxLength)
	}
	return result(ve)
}

// ValidateID rejects blank path identifiers
func (v *Validator) ValidateID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		ve := NewValidationError()
		ve.AddRequiredError(field)
		return result(ve)
	}
	return nil
}

func (v *Validator) structErrors(s interface{}) *ValidationError {
	ve := NewValidationError()

	err := v.validate.Struct(s)
	if err == nil {
		return ve
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		ve.AddInvalidValueError("request", nil, err.Error())
		return ve
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required", "notblank":
			if !ve.HasField(field) {
				ve.AddRequiredError(field)
			}
		case "email":
			ve.AddInvalidFormatError(field, fe.Value(), "email address")
		default:
			ve.AddInvalidValueError(field, fe.Value(), fe.Tag())
		}
	}
	return ve
}

// checkLength applies configured bounds counted in characters. A zero bound is open.
func (v *Validator) checkLength(ve *ValidationError, field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	if (min > 0 && n < min) || (max > 0 && n > max) {
		ve.AddInvalidLengthError(field, value, min, max)
	}
}

func result(ve *ValidationError) error {
	if ve.HasErrors() {
		return ve.AppError()
	}
	return nil
}
