package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "schema <table>",
		Short:         "Show column information for a table",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(rootOpts, args[0], cmd)
		},
	}
}

func runSchema(opts *RootOptions, table string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	client, err := openClient(opts)
	if err != nil {
		return err
	}
	defer client.Close()

	info, err := client.TableInfo(cmd.Context(), table)
	if err != nil {
		return formatter.Fail("table info failed", err)
	}
	if len(info) == 0 {
		return formatter.Fail("table info failed", fmt.Errorf("no such table: %s", table))
	}

	if formatter.Format == "json" {
		return formatter.Success(info)
	}
	for _, col := range info {
		flags := ""
		if col.PrimaryKey {
			flags += " PRIMARY KEY"
		}
		if col.NotNull {
			flags += " NOT NULL"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s%s\n", col.CID, col.Name, col.Type, flags)
	}
	return nil
}
