package sqlite

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = ts.data[i].(int64)
		case *bool:
			*v = ts.data[i].(bool)
		case *string:
			*v = ts.data[i].(string)
		case *sql.NullString:
			*v = ts.data[i].(sql.NullString)
		}
	}

	return nil
}

// TestRows implements the Rows interface for testing
type TestRows struct {
	rows       [][]interface{}
	currentRow int
	err        error
}

func (tr *TestRows) Next() bool {
	if tr.currentRow >= len(tr.rows) {
		return false
	}
	tr.currentRow++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	scanner := &TestScanner{data: tr.rows[tr.currentRow-1]}
	return scanner.Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func TestScanProject(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *Project
		expectError bool
	}{
		{
			name: "Valid project",
			scanner: &TestScanner{
				data: []interface{}{"p-1", "u-1", "Website", "DRAFT", false, "2024-01-15T10:00:00Z"},
			},
			expected: &Project{
				ID:        "p-1",
				OwnerID:   "u-1",
				Name:      "Website",
				Status:    "DRAFT",
				CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "Deleted active project",
			scanner: &TestScanner{
				data: []interface{}{"p-2", "u-1", "Old", "ACTIVE", true, "2024-01-15T10:00:00.5Z"},
			},
			expected: &Project{
				ID:        "p-2",
				OwnerID:   "u-1",
				Name:      "Old",
				Status:    "ACTIVE",
				Deleted:   true,
				CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 500000000, time.UTC),
			},
		},
		{
			name: "Unparseable created_at",
			scanner: &TestScanner{
				data: []interface{}{"p-3", "u-1", "Bad", "DRAFT", false, "yesterday"},
			},
			expectError: true,
		},
		{
			name:        "Scanner error",
			scanner:     &TestScanner{err: sql.ErrNoRows},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanProject(tt.scanner)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.ID, result.ID)
			assert.Equal(t, tt.expected.Status, result.Status)
			assert.Equal(t, tt.expected.Deleted, result.Deleted)
			assert.True(t, tt.expected.CreatedAt.Equal(result.CreatedAt))
		})
	}
}

func TestScanTasks(t *testing.T) {
	rows := &TestRows{
		rows: [][]interface{}{
			{"t-1", "p-1", "Write docs", false, false, "2024-01-15T10:00:00Z"},
			{"t-2", "p-1", "Ship it", true, false, "2024-01-15T11:00:00Z"},
		},
	}

	tasks, err := ScanTasks(rows)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Write docs", tasks[0].Title)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, "t-2", tasks[1].ID)
	assert.True(t, tasks[1].Completed)
}

func TestScanTasks_RowsError(t *testing.T) {
	rows := &TestRows{err: errors.New("cursor failed")}

	tasks, err := ScanTasks(rows)
	assert.Error(t, err)
	assert.Nil(t, tasks)
}

func TestScanAuditLog(t *testing.T) {
	t.Run("with user", func(t *testing.T) {
		scanner := &TestScanner{
			data: []interface{}{int64(7), "CREATE_PROJECT", "p-1", sql.NullString{String: "u-1", Valid: true}, "2024-01-15T10:00:00Z"},
		}
		entry, err := ScanAuditLog(scanner)
		require.NoError(t, err)
		assert.Equal(t, int64(7), entry.ID)
		require.NotNil(t, entry.UserID)
		assert.Equal(t, "u-1", *entry.UserID)
	})

	t.Run("without user", func(t *testing.T) {
		scanner := &TestScanner{
			data: []interface{}{int64(8), "USER_LOGIN", "u-1", sql.NullString{}, "2024-01-15T10:00:00Z"},
		}
		entry, err := ScanAuditLog(scanner)
		require.NoError(t, err)
		assert.Nil(t, entry.UserID)
	})
}

func TestScanUser(t *testing.T) {
	scanner := &TestScanner{
		data: []interface{}{"u-1", "alice", "alice@example.com", "$2a$hash", "2024-01-15T10:00:00Z"},
	}

	user, err := ScanUser(scanner)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$hash", user.PasswordHash)
}
