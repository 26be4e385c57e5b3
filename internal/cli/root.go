// Package cli implements the sqll command line tool: a small shell around
// the client for running statements and inspecting a database.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sqll"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	DB      string // database path (overrides config file path)
	Config  string // optional YAML config file
	Format  string // "json" | "text"
	Verbose bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sqll CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sqll",
		Short: "sqll - SQLite convenience client",
		Long:  "A thin command line shell over an embedded SQLite database: run statements, query rows, inspect tables.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "database file path")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewTablesCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))

	return cmd
}

// openClient builds a client from the global flags. --config supplies the
// base configuration; --db overrides (or supplies) the path.
func openClient(opts *RootOptions) (*sqll.Client, error) {
	var cfg sqll.Config
	if opts.Config != "" {
		loaded, err := sqll.LoadConfig(opts.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load config", err)
		}
		cfg = loaded
		if opts.DB != "" {
			cfg.Path = opts.DB
		}
	} else {
		if opts.DB == "" {
			return nil, NewExitError(ExitCommandError, "no database: pass --db or --config")
		}
		cfg = sqll.DefaultConfig(opts.DB)
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	// Diagnostics to stderr so JSON output stays parseable.
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client, err := sqll.OpenConfig(cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}
	return client, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
