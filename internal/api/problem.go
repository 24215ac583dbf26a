package api

import (
	stderrors "errors"
	"net/http"
	"time"

	apperrors "project-tracker/internal/errors"
	"project-tracker/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	problemContentType = "application/problem+json"
	problemTypeBase    = "https://api.projectmanager.com/errors/"
)

// Problem is an RFC 7807 problem details body
type Problem struct {
	Type      string                  `json:"type"`
	Title     string                  `json:"title"`
	Status    int                     `json:"status"`
	Detail    string                  `json:"detail"`
	Instance  string                  `json:"instance,omitempty"`
	Timestamp time.Time               `json:"timestamp"`
	Cause     string                  `json:"cause,omitempty"`
	TraceID   string                  `json:"traceId,omitempty"`
	Errors    []validation.FieldError `json:"errors,omitempty"`
}

// ProblemFor maps an error to its problem body. Unknown and system errors
// become a 500 with a fresh trace id and no internal detail.
func ProblemFor(err error, instance string) Problem {
	p := Problem{Instance: instance, Timestamp: time.Now().UTC()}

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return internalProblem(p)
	}

	p.Detail = appErr.Message
	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		p.Type, p.Title, p.Status = problemTypeBase+"validation-error", "Validation Failed", http.StatusBadRequest
		var fields *validation.ValidationError
		if stderrors.As(err, &fields) {
			p.Errors = fields.Errors
		}
	case apperrors.ErrorTypeInvalidInput:
		p.Type, p.Title, p.Status = problemTypeBase+"bad-request", "Bad Request", http.StatusBadRequest
	case apperrors.ErrorTypeUnauthenticated:
		p.Type, p.Title, p.Status = problemTypeBase+"unauthorized", "Authentication Required", http.StatusUnauthorized
	case apperrors.ErrorTypeForbidden:
		p.Type, p.Title, p.Status = problemTypeBase+"forbidden", "Access Denied", http.StatusForbidden
	case apperrors.ErrorTypeNotFound:
		p.Type, p.Title, p.Status = problemTypeBase+"not-found", "Resource Not Found", http.StatusNotFound
	case apperrors.ErrorTypeConflict:
		p.Type, p.Title, p.Status = problemTypeBase+"conflict", "Resource Conflict", http.StatusConflict
	case apperrors.ErrorTypeBusinessRule:
		p.Type, p.Title, p.Status = problemTypeBase+"business-rule-violation", businessRuleTitle(appErr.SubCause()), http.StatusUnprocessableEntity
		p.Cause = appErr.SubCause()
	default:
		return internalProblem(p)
	}
	return p
}

func internalProblem(p Problem) Problem {
	p.TraceID = uuid.NewString()
	p.Type = problemTypeBase + "internal-error"
	p.Title = "Internal Server Error"
	p.Status = http.StatusInternalServerError
	p.Detail = "An unexpected error occurred. Please contact support with trace ID: " + p.TraceID
	return p
}

func businessRuleTitle(cause string) string {
	switch cause {
	case apperrors.CauseProjectNotDraft, apperrors.CauseProjectDeleted, apperrors.CauseNoActiveTask:
		return "Project Cannot Be Activated"
	case apperrors.CauseAlreadyCompleted, apperrors.CauseTaskDeleted, apperrors.CauseProjectNotActive:
		return "Task Cannot Be Completed"
	default:
		return "Business Rule Violation"
	}
}

// abortWithProblem writes the problem for err and stops the handler chain
func abortWithProblem(c *gin.Context, log logrus.FieldLogger, err error) {
	p := ProblemFor(err, c.Request.URL.Path)

	entry := log.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"status": p.Status,
	})
	if p.TraceID != "" {
		entry.WithError(err).WithField("trace_id", p.TraceID).Error("request failed")
	} else if apperrors.ShouldLogError(err) {
		entry.WithError(err).Warn("request failed")
	}

	c.Header("Content-Type", problemContentType)
	c.AbortWithStatusJSON(p.Status, p)
}
