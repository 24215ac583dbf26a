package cli

import (
	stderrors "errors"

	"project-tracker/internal/errors"
	"project-tracker/internal/validation"
)

// commandError carries the text shown to the user while keeping the original
// error reachable for ExitCode.
type commandError struct {
	message string
	err     error
}

func (e *commandError) Error() string { return e.message }

func (e *commandError) Unwrap() error { return e.err }

// ErrorHandler turns use case errors into user-facing command errors
type ErrorHandler struct{}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user message of err with "failed to <operation>"
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &commandError{message: "failed to " + operation + ": " + eh.message(err), err: err}
}

// HandleSimple returns the user message of err without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	return &commandError{message: eh.message(err), err: err}
}

func (eh *ErrorHandler) message(err error) string {
	var fields *validation.ValidationError
	switch {
	case errors.IsAppError(err):
		return errors.GetUserMessage(err)
	case stderrors.As(err, &fields):
		return fields.GetUserFriendlyMessage()
	default:
		return err.Error()
	}
}

// IsValidationError reports field errors and Validation AppErrors
func (eh *ErrorHandler) IsValidationError(err error) bool {
	return validation.IsValidationError(err) || errors.IsErrorType(err, errors.ErrorTypeValidation)
}

func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsAuthError reports whether the caller must log in again or lacks access
func (eh *ErrorHandler) IsAuthError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeUnauthenticated) ||
		errors.IsErrorType(err, errors.ErrorTypeForbidden)
}

// ExitCode maps an error to a process exit status
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err), errors.IsErrorType(err, errors.ErrorTypeInvalidInput):
		return 2
	case eh.IsAuthError(err):
		return 3
	case eh.IsNotFoundError(err):
		return 4
	case errors.IsErrorType(err, errors.ErrorTypeBusinessRule), errors.IsErrorType(err, errors.ErrorTypeConflict):
		return 5
	default:
		return 1
	}
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
