package types

import (
	"errors"
	"fmt"
)

// ErrNoTarget reports that the target is empty or does not name an existing
// file. It is the "not ready yet" outcome of ConnectionProvider.Open and is
// never wrapped in a ConnectionError.
var ErrNoTarget = errors.New("no database target")

// Error categories. Typed errors below match these with errors.Is.
var (
	ErrConnection      = errors.New("connection failed")
	ErrQuery           = errors.New("query failed")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Session errors.
var (
	ErrNotReady     = errors.New("session is not connected")
	ErrUnknownTable = errors.New("unknown table")
)

// ConnectionError reports that a target could not be opened or failed its
// liveness probe.
type ConnectionError struct {
	Target Target
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Target, e.Err)
}

// Unwrap returns the underlying engine error.
func (e *ConnectionError) Unwrap() error { return e.Err }

// Is matches ErrConnection.
func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// QueryError reports a failure while executing a query or the catalog
// listing. Err carries the engine message.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query: %v", e.Err)
}

// Unwrap returns the underlying engine error.
func (e *QueryError) Unwrap() error { return e.Err }

// Is matches ErrQuery.
func (e *QueryError) Is(target error) bool { return target == ErrQuery }

// IndexError reports out-of-range access on a Result. Row or Column is -1
// when that index was not part of the access.
type IndexError struct {
	Row, Column int
	Rows, Cols  int
}

func (e *IndexError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("column %d out of range [0,%d)", e.Column, e.Cols)
	case e.Column < 0:
		return fmt.Sprintf("row %d out of range [0,%d)", e.Row, e.Rows)
	default:
		return fmt.Sprintf("cell (%d,%d) out of range [0,%d)x[0,%d)", e.Row, e.Column, e.Rows, e.Cols)
	}
}

// Is matches ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }
