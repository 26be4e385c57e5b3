package sqll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqll/sqlerr"
)

func TestTableExists(t *testing.T) {
	c := openTestClient(t)
	seedUsers(t, c)
	ctx := context.Background()

	ok, err := c.TableExists(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.TableExists(ctx, "ghosts")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTables_SortedNames(t *testing.T) {
	c := openTestClient(t)
	seedUsers(t, c)
	ctx := context.Background()

	require.NoError(t, c.ExecScript(ctx, "CREATE TABLE audit (id INTEGER PRIMARY KEY)"))

	names, err := c.Tables(ctx)
	require.NoError(t, err)
	// sqlite_sequence appears because users has AUTOINCREMENT.
	assert.Equal(t, []string{"audit", "sqlite_sequence", "users"}, names)
}

func TestTableInfo(t *testing.T) {
	c := openTestClient(t)
	seedUsers(t, c)

	info, err := c.TableInfo(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, info, 4)

	assert.Equal(t, "id", info[0].Name)
	assert.True(t, info[0].PrimaryKey)
	assert.Equal(t, "name", info[1].Name)
	assert.Equal(t, "TEXT", info[1].Type)
	assert.True(t, info[1].NotNull)
	assert.False(t, info[2].NotNull)
}

func TestTableInfo_InvalidName(t *testing.T) {
	c := openTestClient(t)

	_, err := c.TableInfo(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, sqlerr.IsValidation(err))
}
