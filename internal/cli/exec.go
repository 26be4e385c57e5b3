package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExecResult holds the outcome of a write statement.
type ExecResult struct {
	RowsAffected int64 `json:"rows_affected"`
	LastInsertID int64 `json:"last_insert_id"`
}

func (r ExecResult) String() string {
	return fmt.Sprintf("rows affected: %d, last insert id: %d", r.RowsAffected, r.LastInsertID)
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql> [params...]",
		Short: "Execute a write statement",
		Long: `Execute a single SQL statement with optional positional parameters.

Parameters bind to ?-placeholders in the statement, left to right, and are
never interpolated into the SQL text.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runExec(opts *RootOptions, sqlText string, rawParams []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	client, err := openClient(opts)
	if err != nil {
		return err
	}
	defer client.Close()

	params := toParams(rawParams)
	formatter.VerboseLog("executing %q with %d param(s)", sqlText, len(params))

	res, err := client.Exec(cmd.Context(), sqlText, params...)
	if err != nil {
		return formatter.Fail("exec failed", err)
	}

	affected, _ := res.RowsAffected()
	lastID, _ := res.LastInsertId()
	return formatter.Success(ExecResult{RowsAffected: affected, LastInsertID: lastID})
}
