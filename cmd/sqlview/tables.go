// Tables and columns commands list the catalog of a database.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sqlview/internal/render"
)

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the user tables of the database",
		Long: `List prints the user tables of the database in name order, one per
line. SQLite's internal sqlite_* tables are not shown.

Example:
  sqlview tables --db app.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			return render.Lines(cmd.OutOrStdout(), s.Tables())
		},
	}
}

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <table>",
		Short: "List the columns of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			columns, err := s.Columns(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render.Lines(cmd.OutOrStdout(), columns)
		},
	}
}
