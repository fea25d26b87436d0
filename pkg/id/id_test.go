package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortedAndUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		s := New()
		_, err := ulid.ParseStrict(s)
		require.NoError(t, err)
		assert.False(t, seen[s], "duplicate id %s", s)
		assert.Greater(t, s, prev)
		seen[s] = true
		prev = s
	}
}

func TestNewUUID(t *testing.T) {
	t.Parallel()

	a, b := NewUUID(), NewUUID()
	assert.NotEqual(t, a, b)

	u, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), u.Version())
}

func TestForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		wantLen int
		wantErr bool
	}{
		{"", 26, false},
		{"ulid", 26, false},
		{"uuid", 36, false},
		{"snowflake", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			gen, err := ForFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, gen(), tt.wantLen)
		})
	}
}
