package sqlite

import "time"

// User is a row of the users table
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Project is a row of the projects table. Status holds DRAFT or ACTIVE.
type Project struct {
	ID        string
	OwnerID   string
	Name      string
	Status    string
	Deleted   bool
	CreatedAt time.Time
}

// Task is a row of the tasks table
type Task struct {
	ID        string
	ProjectID string
	Title     string
	Completed bool
	Deleted   bool
	CreatedAt time.Time
}

// AuditLog is a row of the audit_logs table
type AuditLog struct {
	ID        int64
	Action    string
	EntityID  string
	UserID    *string // NULL when no principal was known
	CreatedAt time.Time
}
