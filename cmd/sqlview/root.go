// Root command for the sqlview CLI.
// Implements: global flags, configuration loading, exit codes.
package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sqlview/internal/paths"
	"github.com/mesh-intelligence/sqlview/pkg/sqlview"
	"github.com/mesh-intelligence/sqlview/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagVerbose   bool
)

// cfg holds the merged configuration, set by PersistentPreRunE.
var cfg types.Config

// logger is the shell logger; it discards unless --verbose is set.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sqlview",
		Short: "Browse and query SQLite database files",
		Long: `sqlview opens a SQLite database file, lists its tables, and runs
queries against it, printing results as a table, CSV, or JSON.`,
		Version:       sqlview.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// version needs no configuration.
			if cmd.Name() == "version" {
				return nil
			}
			if flagVerbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			configDir, err := paths.Resolve(flagConfigDir)
			if err != nil {
				return err
			}
			v, err := loadConfig(configDir.Path)
			if err != nil {
				return err
			}
			if err := bindFlags(v, cmd); err != nil {
				return err
			}
			cfg, err = buildConfig(v)
			if err != nil {
				return err
			}
			logger.Debug("config loaded", "dir", configDir.Path, "dir_source", configDir.Source, "database", cfg.Database, "format", cfg.Format)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir/sqlview)")
	pf.StringP(flagNameDatabase, "d", "", "database file to open")
	pf.StringP(flagNameFormat, "f", "", "output format: table, csv, json")
	pf.String(flagNameNullText, "", "text shown for NULL cells")
	pf.Duration(flagNameProbeTimeout, 0, "connection liveness probe timeout")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log operations to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newTablesCmd())
	root.AddCommand(newColumnsCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newShellCmd())
	root.AddCommand(newServeCmd())

	return root
}

// exitCode maps an error to the process exit code: connection and other
// system failures are 2, everything the user can fix is 1.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrNoTarget),
		errors.Is(err, types.ErrQuery),
		errors.Is(err, types.ErrUnknownTable),
		errors.Is(err, types.ErrNotReady),
		errors.Is(err, errUsage):
		return exitUserError
	case errors.Is(err, types.ErrConnection):
		return exitSysError
	default:
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return exitSysError
		}
		return exitUserError
	}
}
