// Shared helpers for sqlview CLI commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/sqlview/internal/render"
	"github.com/mesh-intelligence/sqlview/internal/viewer"
	"github.com/mesh-intelligence/sqlview/pkg/types"
)

// errUsage marks command-line mistakes that are not core failures.
var errUsage = errors.New("usage")

// openSession creates a session from cfg and opens cfg.Database.
// The caller gets a Ready session or an error suitable for the CLI.
func openSession(ctx context.Context) (*viewer.Session, error) {
	if cfg.Database == "" {
		return nil, fmt.Errorf("%w: no database given (use --db or set database in config.yaml)", types.ErrNoTarget)
	}

	s := newSession()
	start := time.Now()
	err := s.Open(ctx, types.Target(cfg.Database))
	logger.Debug("open", "target", cfg.Database, "state", s.State(), "duration", time.Since(start), "err", err)
	if err != nil {
		if errors.Is(err, types.ErrNoTarget) {
			return nil, fmt.Errorf("database %q not found: %w", cfg.Database, err)
		}
		return nil, err
	}
	return s, nil
}

// newSession returns a SQLite-backed session that logs state changes.
func newSession() *viewer.Session {
	s := viewer.NewSQLite(cfg)
	s.OnTransition(func(from, to viewer.State) {
		logger.Debug("state", "from", from, "to", to)
	})
	return s
}

// newRenderer returns the renderer for the configured format.
func newRenderer() (render.Renderer, error) {
	return render.New(cfg.Format)
}
