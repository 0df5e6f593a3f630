// Serve command exposes a session over HTTP.
package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sqlview/internal/server"
	"github.com/mesh-intelligence/sqlview/pkg/types"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browse API over HTTP",
		Long: `Serve starts an HTTP server exposing one session:

  GET  /state                 session state and available controls
  POST /open                  {"path": "app.db"}
  GET  /tables[?refresh=true] table listing
  GET  /tables/:name/columns  column listing
  POST /select                {"table": "users"} sets the default query
  POST /query                 {"sql": "..."} runs sql, or the current query
  GET  /result                last successful result`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := newSession()
			if cfg.Database != "" {
				// A bad startup target is reported, not fatal: clients can /open another.
				if err := s.Open(ctx, types.Target(cfg.Database)); err != nil {
					if errors.Is(err, types.ErrConnection) || errors.Is(err, types.ErrNoTarget) {
						logger.Warn("initial open failed", "target", cfg.Database, "err", err)
					} else {
						return err
					}
				}
			}

			return server.New(s, logger).Run(ctx, cfg.Addr)
		},
	}

	cmd.Flags().String(flagNameAddr, "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
