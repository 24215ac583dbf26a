package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"project-tracker/internal/errors"
)

const uniqueViolation = "UNIQUE constraint failed: "

// HandleDatabaseError converts a driver error into an AppError. A unique
// constraint violation becomes a Conflict with the offending column in the
// "field" context key.
func HandleDatabaseError(operation string, err error) error {
	column, ok := uniqueColumn(err)
	if !ok {
		return errors.NewDatabaseError(operation, err)
	}
	conflict := errors.NewConflictError(column, nil, column+" already exists")
	conflict.Cause = err
	return conflict
}

// uniqueColumn extracts "email" from "UNIQUE constraint failed: users.email".
func uniqueColumn(err error) (string, bool) {
	msg := err.Error()
	idx := strings.Index(msg, uniqueViolation)
	if idx < 0 {
		return "", false
	}
	target := msg[idx+len(uniqueViolation):]
	if end := strings.IndexAny(target, " ,)"); end >= 0 {
		target = target[:end]
	}
	if dot := strings.LastIndex(target, "."); dot >= 0 {
		target = target[dot+1:]
	}
	return target, target != ""
}

// Execute runs an upsert or insert whose affected row count carries no meaning
func Execute(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return HandleDatabaseError(operation, err)
	}
	return nil
}

// ExecuteWithLastInsertID runs an insert into a table with an INTEGER PRIMARY KEY
func ExecuteWithLastInsertID(ctx context.Context, db *sql.DB, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError("insert", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, HandleDatabaseError("read last insert id", err)
	}
	return id, nil
}

// QuerySingle scans one row. No row becomes NotFound for entityType/id; the
// lookup key is reported as given, so usernames and emails work as well as ids.
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scan func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	item, err := scan(db.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return item, nil
	case stderrors.Is(err, sql.ErrNoRows):
		return nil, errors.NewNotFoundError(entityType, id)
	case errors.IsAppError(err):
		return nil, err
	default:
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
}

// QueryMultiple scans every row of the result. An empty result is a nil slice.
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scan func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	items, err := scan(rows)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return items, nil
}

// QueryExists runs a SELECT EXISTS(...) query
func QueryExists(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, HandleDatabaseError(operation, err)
	}
	return exists, nil
}
