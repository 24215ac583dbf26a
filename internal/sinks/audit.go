// Package sinks holds the fire-and-forget collaborators invoked after a
// successful mutation.
package sinks

import (
	"context"
	"time"

	"project-tracker/internal/domain"
	"project-tracker/internal/security"

	"github.com/sirupsen/logrus"
)

// AuditWriter appends audit entries
type AuditWriter interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
}

// AuditLog records audit entries with the principal found on the context.
// Write failures are logged and never returned.
type AuditLog struct {
	writer AuditWriter
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewAuditLog creates an audit log. A nil logger falls back to the logrus standard logger.
func NewAuditLog(writer AuditWriter, log logrus.FieldLogger) *AuditLog {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AuditLog{writer: writer, log: log, now: time.Now}
}

func (a *AuditLog) Record(ctx context.Context, action string, entityID string) {
	entry := domain.AuditEntry{
		Action:    action,
		EntityID:  entityID,
		CreatedAt: a.now(),
	}
	if p, ok := security.PrincipalFrom(ctx); ok {
		entry.UserID = p.UserID
	}

	// The mutation is already committed; a cancelled request must not drop the record.
	if err := a.writer.Append(context.WithoutCancel(ctx), entry); err != nil {
		a.log.WithError(err).WithFields(logrus.Fields{
			"action":    action,
			"entity_id": entityID,
		}).Error("failed to write audit log")
		return
	}

	a.log.WithFields(logrus.Fields{
		"action":    action,
		"entity_id": entityID,
		"user_id":   entry.UserID,
	}).Debug("audit recorded")
}
