package errors

import (
	"errors"
	"fmt"
)

// newError fills in the canonical code for t
func newError(t ErrorType, message string, cause error, context map[string]interface{}) *AppError {
	if context == nil {
		context = make(map[string]interface{})
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    t.Code(),
		Cause:   cause,
		Context: context,
	}
}

// NewValidationError reports rejected command fields. The field list lives in
// the validation package's error, which wraps this one.
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, message, cause, nil)
}

// NewNotFoundError reports a missing entity. Soft-deleted and missing
// entities both produce this error with identical text.
func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		map[string]interface{}{"resource": resource, "identifier": identifier})
}

func NewDatabaseError(operation string, cause error) *AppError {
	return newError(ErrorTypeDatabase, "database operation failed: "+operation, cause,
		map[string]interface{}{"operation": operation})
}

// NewInvalidInputError reports a malformed argument that never reached a use case
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		map[string]interface{}{"field": field, "value": value, "reason": reason})
}

func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newError(ErrorTypeTimeout, "operation timed out: "+operation, nil,
		map[string]interface{}{"operation": operation, "timeout": timeout})
}

// NewForbiddenError reports that actor is authenticated but does not own the resource.
func NewForbiddenError(resource string, identifier string, actor string) *AppError {
	return newError(ErrorTypeForbidden, fmt.Sprintf("access denied to %s: %s", resource, identifier), nil,
		map[string]interface{}{"resource": resource, "identifier": identifier, "actor": actor})
}

// NewBusinessRuleError reports an invariant that blocks a transition on an
// existing, authorized entity. status is the entity status at the time of the check.
func NewBusinessRuleError(message string, cause string, status string) *AppError {
	return newError(ErrorTypeBusinessRule, message, nil,
		map[string]interface{}{"cause": cause, "status": status})
}

// NewConflictError reports a taken unique value
func NewConflictError(field string, value interface{}, message string) *AppError {
	return newError(ErrorTypeConflict, message, nil,
		map[string]interface{}{"field": field, "value": value})
}

// NewInvalidStateError is raised by entity mutators when their own guard fails.
func NewInvalidStateError(message string, cause string) *AppError {
	return newError(ErrorTypeInvalidState, message, nil, map[string]interface{}{"cause": cause})
}

func NewUnauthenticatedError(reason string) *AppError {
	return newError(ErrorTypeUnauthenticated, reason, nil, nil)
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newError(errorType, message, err, nil)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns the text shown to a user. Caller faults show their
// own message; system faults are replaced by a generic hint.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if appErr.Type.callerFault() {
		return appErr.Message
	}
	switch appErr.Type {
	case ErrorTypeDatabase:
		return "A database error occurred. Please try again."
	case ErrorTypeTimeout:
		return "The operation timed out. Please try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports system faults. Caller faults are answered, not logged.
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return !appErr.Type.callerFault()
	}
	return true
}
