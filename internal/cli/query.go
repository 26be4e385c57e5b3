package cli

import (
	"github.com/spf13/cobra"
)

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql> [params...]",
		Short: "Run a query and print its rows",
		Long: `Run a SELECT statement with optional positional parameters and print
the resulting rows in the configured output format.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runQuery(opts *RootOptions, sqlText string, rawParams []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	client, err := openClient(opts)
	if err != nil {
		return err
	}
	defer client.Close()

	params := toParams(rawParams)
	formatter.VerboseLog("querying %q with %d param(s)", sqlText, len(params))

	rows, err := client.FetchAll(cmd.Context(), sqlText, params...)
	if err != nil {
		return formatter.Fail("query failed", err)
	}
	return formatter.Rows(rows)
}
