package domain

import "time"

// Audit actions recorded after a successful mutation.
const (
	AuditCreateProject   = "CREATE_PROJECT"
	AuditActivateProject = "ACTIVATE_PROJECT"
	AuditDeleteProject   = "DELETE_PROJECT"
	AuditCreateTask      = "CREATE_TASK"
	AuditCompleteTask    = "COMPLETE_TASK"
	AuditDeleteTask      = "DELETE_TASK"
	AuditUserRegistered  = "USER_REGISTERED"
	AuditUserLogin       = "USER_LOGIN"
)

// AuditEntry is one persisted audit record. UserID is empty when no
// principal was attached to the request.
type AuditEntry struct {
	ID        int64
	Action    string
	EntityID  string
	UserID    string
	CreatedAt time.Time
}
