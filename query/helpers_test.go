package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFrom(t *testing.T) {
	sql, _, err := SelectFrom("users", "id", "name").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM users", sql)
}

func TestSelectFrom_NoColumns(t *testing.T) {
	sql, _, err := SelectFrom("users").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users", sql)
}

func TestCountFrom(t *testing.T) {
	sql, _, err := CountFrom("events", "id").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(id) FROM events", sql)

	sql, _, err = Count("events").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM events", sql)
}

func TestExistsIn(t *testing.T) {
	sql, params, err := ExistsIn("users", "email = ?", "a@b.c").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1 FROM users WHERE email = ?", sql)
	assert.Equal(t, []any{"a@b.c"}, params)
}

func TestHelpers_ComposeWithFurtherChaining(t *testing.T) {
	sql, params, err := Count("orders").Where("status = ?", "open").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM orders WHERE status = ?", sql)
	assert.Equal(t, []any{"open"}, params)
}
