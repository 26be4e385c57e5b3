package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqll"
)

// seedDatabase creates a database with a small users table and returns
// its path.
func seedDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.db")

	client, err := sqll.Open(path)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.ExecScript(ctx,
		"CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)"))
	_, err = client.InsertMany(ctx, "users", []sqll.Row{
		{"id": 1, "name": "ada"},
		{"id": 2, "name": "brin"},
	})
	require.NoError(t, err)
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestQueryCommand_Text(t *testing.T) {
	path := seedDatabase(t)

	out, err := runCommand(t, "--db", path, "query", "SELECT name FROM users ORDER BY name")
	require.NoError(t, err)

	assert.Contains(t, out, "name=ada")
	assert.Contains(t, out, "name=brin")
	assert.Contains(t, out, "(2 rows)")
}

func TestQueryCommand_JSON(t *testing.T) {
	path := seedDatabase(t)

	out, err := runCommand(t, "--db", path, "--format", "json",
		"query", "SELECT name FROM users WHERE name = ?", "ada")
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestExecCommand(t *testing.T) {
	path := seedDatabase(t)

	out, err := runCommand(t, "--db", path,
		"exec", "INSERT INTO users (id, name) VALUES (?, ?)", "3", "cleo")
	require.NoError(t, err)
	assert.Contains(t, out, "rows affected: 1")
}

func TestExecCommand_BadSQLFails(t *testing.T) {
	path := seedDatabase(t)

	_, err := runCommand(t, "--db", path, "exec", "INSERT INTO ghosts VALUES (1)")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestTablesCommand(t *testing.T) {
	path := seedDatabase(t)

	out, err := runCommand(t, "--db", path, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "users")
}

func TestSchemaCommand(t *testing.T) {
	path := seedDatabase(t)

	out, err := runCommand(t, "--db", path, "schema", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "TEXT")
	assert.Contains(t, out, "PRIMARY KEY")
}

func TestSchemaCommand_MissingTable(t *testing.T) {
	path := seedDatabase(t)

	_, err := runCommand(t, "--db", path, "schema", "ghosts")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestRoot_RequiresDatabase(t *testing.T) {
	_, err := runCommand(t, "tables")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRoot_RejectsInvalidFormat(t *testing.T) {
	_, err := runCommand(t, "--db", "x.db", "--format", "xml", "tables")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestConfigFlag(t *testing.T) {
	path := seedDatabase(t)
	cfgFile := filepath.Join(t.TempDir(), "sqll.yaml")
	writeFile(t, cfgFile, "path: "+path+"\njournal_mode: WAL\n")

	out, err := runCommand(t, "--config", cfgFile, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "users")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flags")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}
