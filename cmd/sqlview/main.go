// Package main provides the sqlview CLI.
// Implements: presentation shells over the data-access core (tables, columns,
// query, shell, serve).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sqlview:", err)
		os.Exit(exitCode(err))
	}
}
