package domain

import (
	"project-tracker/internal/repository/sqlite"
)

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(p Project) sqlite.Project {
	return sqlite.Project{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Status:    string(p.Status),
		Deleted:   p.Deleted,
		CreatedAt: p.CreatedAt,
	}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(row sqlite.Project) Project {
	return Project{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Status:    ProjectStatus(row.Status),
		Deleted:   row.Deleted,
		CreatedAt: row.CreatedAt,
	}
}

// FromDatabaseSlice converts database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(rows []*sqlite.Project) []Project {
	projects := make([]Project, len(rows))
	for i, row := range rows {
		projects[i] = m.FromDatabase(*row)
	}
	return projects
}

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(t Task) sqlite.Task {
	return sqlite.Task{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Title:     t.Title,
		Completed: t.Completed,
		Deleted:   t.Deleted,
		CreatedAt: t.CreatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(row sqlite.Task) Task {
	return Task{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		Title:     row.Title,
		Completed: row.Completed,
		Deleted:   row.Deleted,
		CreatedAt: row.CreatedAt,
	}
}

// FromDatabaseSlice converts database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(rows []*sqlite.Task) []Task {
	tasks := make([]Task, len(rows))
	for i, row := range rows {
		tasks[i] = m.FromDatabase(*row)
	}
	return tasks
}

// UserMapper handles conversion between domain and database User models.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToDatabase(u User) sqlite.User {
	return sqlite.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (m *UserMapper) FromDatabase(row sqlite.User) User {
	return User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}

// AuditMapper handles conversion between domain and database audit entries.
type AuditMapper struct{}

// NewAuditMapper creates a new AuditMapper instance.
func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

// ToDatabase converts an AuditEntry; an empty UserID becomes NULL.
func (m *AuditMapper) ToDatabase(e AuditEntry) sqlite.AuditLog {
	row := sqlite.AuditLog{
		ID:        e.ID,
		Action:    e.Action,
		EntityID:  e.EntityID,
		CreatedAt: e.CreatedAt,
	}
	if e.UserID != "" {
		userID := e.UserID
		row.UserID = &userID
	}
	return row
}

func (m *AuditMapper) FromDatabase(row sqlite.AuditLog) AuditEntry {
	entry := AuditEntry{
		ID:        row.ID,
		Action:    row.Action,
		EntityID:  row.EntityID,
		CreatedAt: row.CreatedAt,
	}
	if row.UserID != nil {
		entry.UserID = *row.UserID
	}
	return entry
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Project *ProjectMapper
	Task    *TaskMapper
	User    *UserMapper
	Audit   *AuditMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Project: NewProjectMapper(),
		Task:    NewTaskMapper(),
		User:    NewUserMapper(),
		Audit:   NewAuditMapper(),
	}
}
