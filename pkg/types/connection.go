package types

import (
	"context"
	"database/sql"
)

// Target is the filesystem path of a database file. An empty Target, or one
// that does not name an existing regular file, is not ready to be opened.
type Target string

// String returns the path.
func (t Target) String() string { return string(t) }

// Connection is a handle to an open database session. It is owned by the
// operation that opened it and must be closed on every exit path of that
// operation.
type Connection interface {
	// QueryContext runs a statement and returns its rows.
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// Close releases the session and any file handles or locks it holds.
	Close() error
}

// ConnectionProvider turns a Target into a live, validated Connection.
type ConnectionProvider interface {
	// Open returns ErrNoTarget when target is empty or does not resolve to
	// an existing file. Any other failure, including a failed liveness
	// probe, is returned as a *ConnectionError.
	Open(ctx context.Context, target Target) (Connection, error)
}

// SchemaInspector lists user-defined tables.
type SchemaInspector interface {
	// ListTables returns table names in ascending order, excluding internal
	// tables. An empty database yields an empty slice.
	ListTables(ctx context.Context, conn Connection) ([]string, error)

	// ListColumns returns the column names of table in declaration order.
	ListColumns(ctx context.Context, conn Connection, table string) ([]string, error)
}

// QueryExecutor runs an opaque query and materializes its rows.
type QueryExecutor interface {
	// Execute runs query verbatim. On failure it returns a *QueryError and
	// no result.
	Execute(ctx context.Context, conn Connection, query string) (*Result, error)
}
