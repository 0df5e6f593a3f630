// Version command for the sqlview CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sqlview/pkg/sqlview"
)

const modulePath = "github.com/mesh-intelligence/sqlview"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sqlview version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "sqlview v%s\nmodule: %s\n", sqlview.Version, modulePath)
			return nil
		},
	}
}
