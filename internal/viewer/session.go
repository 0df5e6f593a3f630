// Package viewer holds the per-session state a presentation layer renders:
// the current target, its table listing, the editable query, the last
// successful result, and which controls are available.
// Implements: session state machine NoTarget -> Connecting -> {Ready | ConnectFailed}.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/mesh-intelligence/sqlview/internal/sqlite"
	"github.com/mesh-intelligence/sqlview/pkg/types"
)

// State is the connection state of a Session.
type State int

// Session states.
const (
	NoTarget State = iota
	Connecting
	Ready
	ConnectFailed
)

var stateNames = map[State]string{
	NoTarget:      "no-target",
	Connecting:    "connecting",
	Ready:         "ready",
	ConnectFailed: "connect-failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Controls reports which user controls are usable in the current state.
type Controls struct {
	SchemaSelect bool `json:"schema_select"`
	QueryEdit    bool `json:"query_edit"`
	Execute      bool `json:"execute"`
}

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	State     State        `json:"state"`
	Target    types.Target `json:"target"`
	Tables    []string     `json:"tables"`
	Query     string       `json:"query"`
	Controls  Controls     `json:"controls"`
	HasResult bool         `json:"has_result"`
}

// Session drives the core on behalf of one user. Each operation opens its
// own connection and closes it before returning; the session keeps only
// the target path between calls. Methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	provider  types.ConnectionProvider
	inspector types.SchemaInspector
	executor  types.QueryExecutor

	state  State
	target types.Target
	tables []string
	query  string
	result *types.Result

	onTransition func(from, to State)
}

// New returns a Session in the NoTarget state.
func New(provider types.ConnectionProvider, inspector types.SchemaInspector, executor types.QueryExecutor) *Session {
	return &Session{
		provider:  provider,
		inspector: inspector,
		executor:  executor,
		state:     NoTarget,
	}
}

// NewSQLite returns a Session backed by the SQLite core configured from cfg.
func NewSQLite(cfg types.Config) *Session {
	return New(
		sqlite.NewProvider(cfg.ProbeTimeout),
		sqlite.NewInspector(),
		sqlite.NewExecutor(cfg.NullText),
	)
}

// OnTransition registers fn to be called on every state change. fn runs
// with the session lock held and must not call back into the session.
func (s *Session) OnTransition(fn func(from, to State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTransition = fn
}

func (s *Session) setState(to State) {
	from := s.state
	s.state = to
	if s.onTransition != nil && from != to {
		s.onTransition(from, to)
	}
}

// Open points the session at target. The previous listing, query and
// result are cleared first. The connection is probed and the table listing
// read over it, then it is closed.
//
// Returns types.ErrNoTarget (state NoTarget) when target is not ready,
// a *types.ConnectionError (state ConnectFailed) when it cannot be opened,
// or a *types.QueryError (state Ready, empty listing) when the catalog
// cannot be read. As with every other operation, a failure closing the
// connection is returned when nothing else failed.
func (s *Session) Open(ctx context.Context, target types.Target) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.target = target
	s.tables = nil
	s.query = ""
	s.result = nil
	s.setState(Connecting)

	conn, err := s.provider.Open(ctx, target)
	if err != nil {
		if errors.Is(err, types.ErrNoTarget) {
			s.setState(NoTarget)
		} else {
			s.setState(ConnectFailed)
		}
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	s.setState(Ready)
	tables, err := s.inspector.ListTables(ctx, conn)
	if err != nil {
		return err
	}
	s.tables = tables
	return nil
}

// Refresh re-reads the table listing.
func (s *Session) Refresh(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ready {
		return nil, types.ErrNotReady
	}

	var tables []string
	err := s.withConn(ctx, func(conn types.Connection) error {
		var err error
		tables, err = s.inspector.ListTables(ctx, conn)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.tables = tables
	return slices.Clone(tables), nil
}

// Columns lists the columns of table.
func (s *Session) Columns(ctx context.Context, table string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ready {
		return nil, types.ErrNotReady
	}

	var columns []string
	err := s.withConn(ctx, func(conn types.Connection) error {
		var err error
		columns, err = s.inspector.ListColumns(ctx, conn, table)
		return err
	})
	return columns, err
}

// SelectTable replaces the current query with the default query for
// table. The name must appear in the current listing.
func (s *Session) SelectTable(table string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ready {
		return "", types.ErrNotReady
	}
	if !slices.Contains(s.tables, table) {
		return "", fmt.Errorf("%w: %q", types.ErrUnknownTable, table)
	}
	s.query = sqlite.DefaultQuery(table)
	return s.query, nil
}

// SetQuery replaces the current query text.
func (s *Session) SetQuery(query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ready {
		return types.ErrNotReady
	}
	s.query = query
	return nil
}

// Execute runs the current query. On success the result replaces the one
// held by the session; on failure the held result is left untouched and
// the session stays Ready.
func (s *Session) Execute(ctx context.Context) (*types.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ready {
		return nil, types.ErrNotReady
	}

	var result *types.Result
	err := s.withConn(ctx, func(conn types.Connection) error {
		var err error
		result, err = s.executor.Execute(ctx, conn, s.query)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.result = result
	return result, nil
}

// Run sets the query and executes it.
func (s *Session) Run(ctx context.Context, query string) (*types.Result, error) {
	if err := s.SetQuery(query); err != nil {
		return nil, err
	}
	return s.Execute(ctx)
}

// withConn opens a connection to the current target for the duration of
// fn. The connection is closed on every path out of withConn.
func (s *Session) withConn(ctx context.Context, fn func(types.Connection) error) (err error) {
	conn, err := s.provider.Open(ctx, s.target)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(conn)
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Target returns the target of the last Open.
func (s *Session) Target() types.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Tables returns the current table listing.
func (s *Session) Tables() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tables)
}

// Query returns the current query text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Result returns the last successful result, or nil.
func (s *Session) Result() *types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Controls returns the controls usable in the current state.
func (s *Session) Controls() Controls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return controlsFor(s.state)
}

func controlsFor(state State) Controls {
	ready := state == Ready
	return Controls{SchemaSelect: ready, QueryEdit: ready, Execute: ready}
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	tables := slices.Clone(s.tables)
	if tables == nil {
		tables = []string{}
	}
	return Snapshot{
		State:     s.state,
		Target:    s.target,
		Tables:    tables,
		Query:     s.query,
		Controls:  controlsFor(s.state),
		HasResult: s.result != nil,
	}
}
