package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*User, error) {
	user := &User{}
	var createdAt string
	if err := scanner.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &createdAt); err != nil {
		return nil, err
	}
	t, err := DecodeTimestamp("users.created_at", createdAt)
	if err != nil {
		return nil, err
	}
	user.CreatedAt = t
	return user, nil
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var createdAt string
	err := scanner.Scan(
		&project.ID,
		&project.OwnerID,
		&project.Name,
		&project.Status,
		&project.Deleted,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	t, err := DecodeTimestamp("projects.created_at", createdAt)
	if err != nil {
		return nil, err
	}
	project.CreatedAt = t
	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	return scanAll(rows, ScanProject)
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var createdAt string
	err := scanner.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Completed,
		&task.Deleted,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	t, err := DecodeTimestamp("tasks.created_at", createdAt)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = t
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	return scanAll(rows, ScanTask)
}

// ScanAuditLog scans a single audit log entry from a database row
func ScanAuditLog(scanner Scanner) (*AuditLog, error) {
	entry := &AuditLog{}
	var userID sql.NullString
	var createdAt string

	if err := scanner.Scan(&entry.ID, &entry.Action, &entry.EntityID, &userID, &createdAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		entry.UserID = &userID.String
	}
	t, err := DecodeTimestamp("audit_logs.created_at", createdAt)
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = t
	return entry, nil
}

// ScanAuditLogs scans multiple audit log entries from database rows
func ScanAuditLogs(rows Rows) ([]*AuditLog, error) {
	return scanAll(rows, ScanAuditLog)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var items []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
