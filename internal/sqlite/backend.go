// Package sqlite implements the SQLite data-access core for sqlview:
// connection lifecycle, catalog inspection, and ad-hoc query execution.
// Implements: ConnectionProvider, SchemaInspector, QueryExecutor.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/sqlview/pkg/types"
)

// driverName is the database/sql name registered by modernc.org/sqlite.
const driverName = "sqlite"

// uriEscaper escapes the characters SQLite treats specially inside a file: URI.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// DSN returns the engine URL for target. The database must already exist;
// mode=rw keeps the driver from creating an empty file in its place.
func DSN(target types.Target) string {
	return "file:" + uriEscaper.Replace(filepath.ToSlash(string(target))) + "?mode=rw"
}

// Provider opens file-backed SQLite connections and probes them before
// handing them out. It holds no connection state between calls.
type Provider struct {
	probeTimeout time.Duration
}

// NewProvider returns a Provider whose liveness probe is bounded by
// probeTimeout. A non-positive value selects types.DefaultProbeTimeout.
func NewProvider(probeTimeout time.Duration) *Provider {
	if probeTimeout <= 0 {
		probeTimeout = types.DefaultProbeTimeout
	}
	return &Provider{probeTimeout: probeTimeout}
}

// Open resolves target into a live connection.
// Returns types.ErrNoTarget when target is empty, missing, or not a regular
// file. Returns *types.ConnectionError when the engine cannot open the file
// or the probe fails; the partially opened handle is closed first.
func (p *Provider) Open(ctx context.Context, target types.Target) (types.Connection, error) {
	if target == "" {
		return nil, types.ErrNoTarget
	}

	info, err := os.Stat(string(target))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.ErrNoTarget
		}
		return nil, &types.ConnectionError{Target: target, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, types.ErrNoTarget
	}

	db, err := sql.Open(driverName, DSN(target))
	if err != nil {
		return nil, &types.ConnectionError{Target: target, Err: err}
	}
	// One session per Conn; the pool must never fan out.
	db.SetMaxOpenConns(1)

	if err := p.probe(ctx, db); err != nil {
		db.Close()
		return nil, &types.ConnectionError{Target: target, Err: err}
	}

	return &Conn{target: target, db: db}, nil
}

// probe checks that db answers within the probe timeout and that the file
// carries a readable SQLite header.
func (p *Provider) probe(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, p.probeTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return err
	}
	var version int64
	return db.QueryRowContext(ctx, probeQuery).Scan(&version)
}

// Conn is an open SQLite session. It implements types.Connection.
type Conn struct {
	target types.Target
	db     *sql.DB

	closeOnce sync.Once
	closeErr  error
}

// Target returns the path the connection was opened from.
func (c *Conn) Target() types.Target { return c.target }

// QueryContext runs query on the session.
func (c *Conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

// Close releases the database file. Close is idempotent.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.db.Close()
	})
	return c.closeErr
}
