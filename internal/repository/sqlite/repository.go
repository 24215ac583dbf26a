package sqlite

import (
	"context"
	"database/sql"
	"time"

	"project-tracker/internal/errors"
	"project-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// InMemory is the DSN for a private in-memory database.
const InMemory = ":memory:"

// Repository defines the interface for database operations
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UserExistsByUsername(ctx context.Context, username string) (bool, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)

	// Projects
	SaveProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjectsByOwner(ctx context.Context, ownerID string) ([]*Project, error)

	// Tasks
	SaveTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]*Task, error)
	HasActiveTask(ctx context.Context, projectID string) (bool, error)

	// Audit
	CreateAuditLog(ctx context.Context, entry *AuditLog) error
	ListAuditLogs(ctx context.Context, entityID string) ([]*AuditLog, error)

	// Utility
	MigrationStatus(ctx context.Context) ([]migrations.Status, error)
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Option configures a SQLiteRepository
type Option func(*SQLiteRepository)

// WithQueryTimeout bounds every statement issued by the repository.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *SQLiteRepository) {
		r.queryTimeout = d
	}
}

// New creates a new SQLite repository instance and applies pending migrations
func New(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Each connection to :memory: is a separate database.
	if dbPath == InMemory {
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	repo := &SQLiteRepository{db: db}
	for _, opt := range opts {
		opt(repo)
	}
	return repo, nil
}

// MigrationStatus reports which embedded migrations have been applied
func (r *SQLiteRepository) MigrationStatus(ctx context.Context) ([]migrations.Status, error) {
	return migrations.GetStatus(ctx, r.db)
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

const userColumns = `id, username, email, password_hash, created_at`

// CreateUser inserts a user. Duplicate usernames or emails yield a Conflict error.
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO users (id, username, email, password_hash, created_at)
	VALUES (?, ?, ?, ?, ?)`

	return Execute(ctx, r.db, "create user", query,
		user.ID, user.Username, user.Email, user.PasswordHash, EncodeTimestamp(user.CreatedAt))
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (*User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", id, id)
}

// GetUserByUsername retrieves a user by username
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", username, username)
}

// GetUserByEmail retrieves a user by email
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", email, email)
}

// UserExistsByUsername reports whether username is taken
func (r *SQLiteRepository) UserExistsByUsername(ctx context.Context, username string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return QueryExists(ctx, r.db, "check username",
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username)
}

// UserExistsByEmail reports whether email is taken
func (r *SQLiteRepository) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return QueryExists(ctx, r.db, "check email",
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email)
}

const projectColumns = `id, owner_id, name, status, deleted, created_at`

// SaveProject inserts the project or updates its mutable columns.
// owner_id and created_at never change after the first insert.
func (r *SQLiteRepository) SaveProject(ctx context.Context, project *Project) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO projects (id, owner_id, name, status, deleted, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		status = excluded.status,
		deleted = excluded.deleted`

	return Execute(ctx, r.db, "save project", query,
		project.ID, project.OwnerID, project.Name, project.Status, project.Deleted, EncodeTimestamp(project.CreatedAt))
}

// GetProject retrieves a project by ID, including soft-deleted rows
func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*Project, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanProject, "project", id, id)
}

// ListProjectsByOwner retrieves the owner's non-deleted projects, oldest first
func (r *SQLiteRepository) ListProjectsByOwner(ctx context.Context, ownerID string) ([]*Project, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + projectColumns + `
	FROM projects
	WHERE owner_id = ? AND deleted = 0
	ORDER BY created_at ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects", ownerID)
}

const taskColumns = `id, project_id, title, completed, deleted, created_at`

// SaveTask inserts the task or updates its mutable columns.
// project_id never changes after the first insert.
func (r *SQLiteRepository) SaveTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO tasks (id, project_id, title, completed, deleted, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		completed = excluded.completed,
		deleted = excluded.deleted`

	return Execute(ctx, r.db, "save task", query,
		task.ID, task.ProjectID, task.Title, task.Completed, task.Deleted, EncodeTimestamp(task.CreatedAt))
}

// GetTask retrieves a task by ID, including soft-deleted rows
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", id, id)
}

// ListTasksByProject retrieves the project's non-deleted tasks, oldest first
func (r *SQLiteRepository) ListTasksByProject(ctx context.Context, projectID string) ([]*Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE project_id = ? AND deleted = 0
	ORDER BY created_at ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", projectID)
}

// HasActiveTask reports whether the project has a task that is neither
// completed nor deleted. It reads current rows on every call.
func (r *SQLiteRepository) HasActiveTask(ctx context.Context, projectID string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT EXISTS(
		SELECT 1 FROM tasks
		WHERE project_id = ? AND completed = 0 AND deleted = 0
	)`

	return QueryExists(ctx, r.db, "check active tasks", query, projectID)
}

// CreateAuditLog appends an audit entry and sets its ID
func (r *SQLiteRepository) CreateAuditLog(ctx context.Context, entry *AuditLog) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO audit_logs (action, entity_id, user_id, created_at)
	VALUES (?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, entry.Action, entry.EntityID, NullableID(entry.UserID), EncodeTimestamp(entry.CreatedAt))
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// ListAuditLogs retrieves the audit trail of one entity in insertion order
func (r *SQLiteRepository) ListAuditLogs(ctx context.Context, entityID string) ([]*AuditLog, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	SELECT id, action, entity_id, user_id, created_at
	FROM audit_logs
	WHERE entity_id = ?
	ORDER BY id ASC`

	return QueryMultiple(ctx, r.db, query, ScanAuditLogs, "audit logs", entityID)
}
