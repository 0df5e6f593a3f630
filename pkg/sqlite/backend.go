// Package sqlite provides the public API for the SQLite data-access core.
// It exposes constructors returning the pkg/types interfaces while keeping
// implementation details internal.
//
// Example:
//
//	provider := sqlite.NewProvider(types.DefaultProbeTimeout)
//	conn, err := provider.Open(ctx, "app.db")
//	if errors.Is(err, types.ErrNoTarget) {
//	    // nothing to open yet
//	}
//	defer conn.Close()
//	tables, err := sqlite.NewInspector().ListTables(ctx, conn)
package sqlite

import (
	"time"

	"github.com/mesh-intelligence/sqlview/internal/sqlite"
	"github.com/mesh-intelligence/sqlview/pkg/types"
)

// NewProvider returns a ConnectionProvider for SQLite files whose liveness
// probe is bounded by probeTimeout.
func NewProvider(probeTimeout time.Duration) types.ConnectionProvider {
	return sqlite.NewProvider(probeTimeout)
}

// NewInspector returns a SchemaInspector reading the SQLite catalog.
func NewInspector() types.SchemaInspector {
	return sqlite.NewInspector()
}

// NewExecutor returns a QueryExecutor that renders NULL cells as nullText.
func NewExecutor(nullText string) types.QueryExecutor {
	return sqlite.NewExecutor(nullText)
}

// DefaultQuery returns the query offered when table is selected.
func DefaultQuery(table string) string {
	return sqlite.DefaultQuery(table)
}
