package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypeForbidden
	ErrorTypeBusinessRule
	ErrorTypeConflict
	ErrorTypeInvalidState
	ErrorTypeUnauthenticated
)

// Sub-causes carried in the "cause" context key of business rule and
// invalid state errors.
const (
	CauseAlreadyCompleted = "already_completed"
	CauseTaskDeleted      = "task_deleted"
	CauseProjectNotActive = "project_not_active"
	CauseProjectNotDraft  = "project_not_draft"
	CauseProjectDeleted   = "project_deleted"
	CauseNoActiveTask     = "no_active_task"
)

var typeNames = map[ErrorType]struct{ name, code string }{
	ErrorTypeValidation:      {"validation", "VALIDATION_FAILED"},
	ErrorTypeNotFound:        {"not_found", "NOT_FOUND"},
	ErrorTypeDatabase:        {"database", "DATABASE_ERROR"},
	ErrorTypeInvalidInput:    {"invalid_input", "INVALID_INPUT"},
	ErrorTypeTimeout:         {"timeout", "TIMEOUT"},
	ErrorTypeForbidden:       {"forbidden", "FORBIDDEN"},
	ErrorTypeBusinessRule:    {"business_rule_violation", "BUSINESS_RULE_VIOLATION"},
	ErrorTypeConflict:        {"conflict", "CONFLICT"},
	ErrorTypeInvalidState:    {"invalid_state", "INVALID_STATE"},
	ErrorTypeUnauthenticated: {"unauthenticated", "UNAUTHENTICATED"},
}

// String returns the snake_case name used in error text
func (et ErrorType) String() string {
	if n, ok := typeNames[et]; ok {
		return n.name
	}
	return "unknown"
}

// Code returns the stable machine-readable code for the type
func (et ErrorType) Code() string {
	if n, ok := typeNames[et]; ok {
		return n.code
	}
	return "UNKNOWN_ERROR"
}

// callerFault reports whether the type describes a mistake by the caller
// rather than a fault of the system.
func (et ErrorType) callerFault() bool {
	switch et {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput,
		ErrorTypeForbidden, ErrorTypeBusinessRule, ErrorTypeConflict, ErrorTypeUnauthenticated:
		return true
	default:
		return false
	}
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches a target AppError of the same type. A target that names a
// sub-cause only matches errors with that sub-cause, so
// errors.Is(err, &AppError{Type: ErrorTypeBusinessRule, Context: map[string]interface{}{"cause": CauseNoActiveTask}})
// singles out one rule.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || e.Type != t.Type {
		return false
	}
	if cause := t.SubCause(); cause != "" {
		return e.SubCause() == cause
	}
	return true
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// SubCause returns the "cause" context value, or "" when none was recorded.
func (e *AppError) SubCause() string {
	s, _ := e.Context["cause"].(string)
	return s
}
