package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/sqlview/pkg/types"
)

// Inspector lists tables and columns from the SQLite catalog.
type Inspector struct{}

// NewInspector returns an Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// ListTables returns user table names in ascending order, excluding names
// with the ReservedPrefix. A database without user tables yields an empty,
// non-nil slice. Failures are returned as *types.QueryError without retry.
func (i *Inspector) ListTables(ctx context.Context, conn types.Connection) ([]string, error) {
	rows, err := conn.QueryContext(ctx, tableListQuery)
	if err != nil {
		return nil, &types.QueryError{Query: tableListQuery, Err: err}
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &types.QueryError{Query: tableListQuery, Err: err}
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.QueryError{Query: tableListQuery, Err: err}
	}
	return tables, nil
}

// ListColumns returns the columns of table in declaration order.
// A table the catalog does not know yields a *types.QueryError wrapping
// types.ErrUnknownTable.
func (i *Inspector) ListColumns(ctx context.Context, conn types.Connection, table string) ([]string, error) {
	query := tableInfoQuery(table)
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &types.QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	columns := []string{}
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, &types.QueryError{Query: query, Err: err}
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.QueryError{Query: query, Err: err}
	}
	if len(columns) == 0 {
		return nil, &types.QueryError{Query: query, Err: fmt.Errorf("%w: %s", types.ErrUnknownTable, table)}
	}
	return columns, nil
}
