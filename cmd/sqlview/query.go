// Query command runs one statement and prints the result grid.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Run a query and print the result",
		Long: `Query runs a statement against the database and prints the result in
the configured format. The statement is passed to SQLite unchanged.

With --table and no statement, the default query for that table is run:
SELECT * FROM <table>;

Example:
  sqlview query --db app.db "SELECT id, name FROM users"
  sqlview query --db app.db --table users --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (table != "") {
				return fmt.Errorf("%w: give either a statement or --table", errUsage)
			}

			renderer, err := newRenderer()
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}

			if table != "" {
				if _, err := s.SelectTable(table); err != nil {
					return err
				}
			} else if err := s.SetQuery(args[0]); err != nil {
				return err
			}

			start := time.Now()
			result, err := s.Execute(cmd.Context())
			logger.Debug("execute", "query", s.Query(), "duration", time.Since(start), "err", err)
			if err != nil {
				return err
			}
			return renderer.Render(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "run the default query for this table")
	return cmd
}
