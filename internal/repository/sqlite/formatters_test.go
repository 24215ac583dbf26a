package sqlite

import (
	"testing"
	"time"

	"project-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "utc",
			input:    time.Date(2025, 2, 3, 8, 0, 5, 0, time.UTC),
			expected: "2025-02-03T08:00:05.000000000Z",
		},
		{
			name:     "converted to utc",
			input:    time.Date(2025, 2, 3, 9, 0, 5, 0, time.FixedZone("CET", 3600)),
			expected: "2025-02-03T08:00:05.000000000Z",
		},
		{
			name:     "sub-second precision kept",
			input:    time.Date(2025, 2, 3, 8, 0, 5, 1500, time.UTC),
			expected: "2025-02-03T08:00:05.000001500Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeTimestamp(tt.input))
		})
	}
}

func TestEncodeTimestamp_SortsInCreationOrder(t *testing.T) {
	base := time.Date(2025, 2, 3, 8, 0, 5, 0, time.UTC)

	encoded := []string{
		EncodeTimestamp(base),
		EncodeTimestamp(base.Add(100 * time.Millisecond)),
		EncodeTimestamp(base.Add(150 * time.Millisecond)),
		EncodeTimestamp(base.Add(time.Second)),
	}

	for i := 1; i < len(encoded); i++ {
		assert.Less(t, encoded[i-1], encoded[i])
		assert.Len(t, encoded[i], len(encoded[0]))
	}
}

func TestDecodeTimestamp(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expected       time.Time
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:     "encoded value",
			input:    "2025-02-03T08:00:05.000001500Z",
			expected: time.Date(2025, 2, 3, 8, 0, 5, 1500, time.UTC),
		},
		{
			name:     "short fraction",
			input:    "2025-02-03T08:00:05.1Z",
			expected: time.Date(2025, 2, 3, 8, 0, 5, 100000000, time.UTC),
		},
		{
			name:     "offset value",
			input:    "2025-02-03T09:00:05+01:00",
			expected: time.Date(2025, 2, 3, 8, 0, 5, 0, time.UTC),
		},
		{
			name:  "sqlite datetime layout",
			input: "2025-02-03 08:00:05",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
				assert.Contains(t, err.Error(), "decode tasks.created_at")
			},
		},
		{
			name:  "empty",
			input: "",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeTimestamp("tasks.created_at", tt.input)
			if tt.errorAssertion != nil {
				require.Error(t, err)
				tt.errorAssertion(t, err)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got))
		})
	}
}

func TestNullableID(t *testing.T) {
	empty := ""
	id := "user-1"

	assert.Nil(t, NullableID(nil))
	assert.Nil(t, NullableID(&empty))
	assert.Equal(t, "user-1", NullableID(&id))
}
