package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryProjects struct {
	mu    sync.Mutex
	items map[string]domain.Project
	order []string
}

func newMemoryProjects() *memoryProjects {
	return &memoryProjects{items: map[string]domain.Project{}}
}

func (m *memoryProjects) Save(_ context.Context, p *domain.Project) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[p.ID]; !ok {
		m.order = append(m.order, p.ID)
	}
	m.items[p.ID] = *p
	saved := *p
	return &saved, nil
}

func (m *memoryProjects) FindByID(_ context.Context, id string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, errors.NewNotFoundError("project", id)
	}
	return &p, nil
}

func (m *memoryProjects) FindByOwnerIDExcludingDeleted(_ context.Context, ownerID string) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Project
	for _, id := range m.order {
		p := m.items[id]
		if p.OwnerID == ownerID && !p.Deleted {
			out = append(out, p)
		}
	}
	return out, nil
}

type memoryTasks struct {
	mu    sync.Mutex
	items map[string]domain.Task
	order []string
}

func newMemoryTasks() *memoryTasks {
	return &memoryTasks{items: map[string]domain.Task{}}
}

func (m *memoryTasks) Save(_ context.Context, t *domain.Task) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[t.ID]; !ok {
		m.order = append(m.order, t.ID)
	}
	m.items[t.ID] = *t
	saved := *t
	return &saved, nil
}

func (m *memoryTasks) FindByID(_ context.Context, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.items[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	return &t, nil
}

func (m *memoryTasks) ExistsActiveIncomplete(_ context.Context, projectID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.items {
		if t.ProjectID == projectID && t.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryTasks) FindByProjectIDExcludingDeleted(_ context.Context, projectID string) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for _, id := range m.order {
		t := m.items[id]
		if t.ProjectID == projectID && !t.Deleted {
			out = append(out, t)
		}
	}
	return out, nil
}

type memoryUsers struct {
	mu    sync.Mutex
	items map[string]domain.User
	// saveErr is returned by Save when set
	saveErr error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{items: map[string]domain.User{}}
}

func (m *memoryUsers) Save(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.items[u.ID] = *u
	saved := *u
	return &saved, nil
}

func (m *memoryUsers) find(match func(domain.User) bool) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u := m.find(func(u domain.User) bool { return u.Username == username }); u != nil {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user", username)
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u := m.find(func(u domain.User) bool { return u.Email == email }); u != nil {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user", email)
}

func (m *memoryUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return m.find(func(u domain.User) bool { return u.Username == username }) != nil, nil
}

func (m *memoryUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return m.find(func(u domain.User) bool { return u.Email == email }) != nil, nil
}

// actorKey carries the acting user id through test contexts
type actorKey struct{}

func asActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

type contextResolver struct{}

func (contextResolver) CurrentUserID(ctx context.Context) (string, error) {
	id, _ := ctx.Value(actorKey{}).(string)
	if id == "" {
		return "", errors.NewUnauthenticatedError("no authenticated user")
	}
	return id, nil
}

type auditRecord struct {
	Action   string
	EntityID string
}

type recordingAudit struct {
	mu      sync.Mutex
	records []auditRecord
}

func (r *recordingAudit) Record(_ context.Context, action, entityID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, auditRecord{Action: action, EntityID: entityID})
}

func (r *recordingAudit) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.Action)
	}
	return out
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// plainHasher prefixes passwords so tests can read hashes back
type plainHasher struct{}

func (plainHasher) Encode(raw string) (string, error) { return "hashed:" + raw, nil }

func (plainHasher) Matches(raw, hash string) bool { return hash == "hashed:"+raw }

type fakeTokens struct{}

func (fakeTokens) Issue(userID, username string) (string, error) {
	return fmt.Sprintf("token-%s-%s", userID, username), nil
}

func (fakeTokens) Validate(token string) bool { return token != "" }

func (fakeTokens) Principal(token string) (domain.Principal, error) {
	return domain.Principal{}, errors.NewUnauthenticatedError("not supported")
}

type fixture struct {
	projects  *memoryProjects
	tasks     *memoryTasks
	users     *memoryUsers
	audit     *recordingAudit
	notifier  *recordingNotifier
	container *ServiceContainer
}

func newFixture() *fixture {
	f := &fixture{
		projects: newMemoryProjects(),
		tasks:    newMemoryTasks(),
		users:    newMemoryUsers(),
		audit:    &recordingAudit{},
		notifier: &recordingNotifier{},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	seq := 0
	f.container = NewServiceContainer(Dependencies{
		Projects:    f.projects,
		Tasks:       f.tasks,
		Users:       f.users,
		CurrentUser: contextResolver{},
		Audit:       f.audit,
		Notifier:    f.notifier,
		Hasher:      plainHasher{},
		Tokens:      fakeTokens{},
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
		Now:    func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) },
		Logger: logger,
	})
	return f
}

// assertAppError returns an errorAssertion checking the error type and,
// when given, the business-rule sub-cause.
func assertAppError(errorType errors.ErrorType, cause string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok, "expected AppError, got %v", err)
		assert.Equal(t, errorType, appErr.Type, "unexpected error: %v", err)
		if cause != "" {
			assert.Equal(t, cause, appErr.SubCause())
		}
	}
}
