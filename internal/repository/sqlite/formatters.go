package sqlite

import (
	"time"

	"project-tracker/internal/errors"
)

// timestampLayout is fixed width so that text order in ORDER BY created_at
// matches chronological order
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// EncodeTimestamp renders t in UTC for a TEXT column
func EncodeTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// DecodeTimestamp reads a TEXT column written by EncodeTimestamp. Any RFC 3339
// value is accepted. column names the source in the returned database error.
func DecodeTimestamp(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, errors.NewDatabaseError("decode "+column, err)
	}
	return t, nil
}

// NullableID maps a missing or empty id to NULL
func NullableID(id *string) interface{} {
	if id == nil || *id == "" {
		return nil
	}
	return *id
}
