package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRaggedRow is returned by NewResult when a row's length differs from the
// column count.
var ErrRaggedRow = errors.New("row length does not match column count")

// Result is the presentation-agnostic grid produced by a query: ordered
// column names and ordered rows of text cells. Every row has exactly
// ColumnCount cells. A Result is immutable; accessors return copies.
type Result struct {
	columns []string
	rows    [][]string
}

// NewResult builds a Result from columns and rows, copying both so later
// changes by the caller cannot reach the grid.
func NewResult(columns []string, rows [][]string) (*Result, error) {
	r := &Result{
		columns: append([]string{}, columns...),
		rows:    make([][]string, 0, len(rows)),
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), len(columns), ErrRaggedRow)
		}
		r.rows = append(r.rows, append([]string{}, row...))
	}
	return r, nil
}

// RowCount returns the number of rows.
func (r *Result) RowCount() int { return len(r.rows) }

// ColumnCount returns the number of columns.
func (r *Result) ColumnCount() int { return len(r.columns) }

// ColumnName returns the name of column j.
func (r *Result) ColumnName(j int) (string, error) {
	if j < 0 || j >= len(r.columns) {
		return "", &IndexError{Row: -1, Column: j, Rows: len(r.rows), Cols: len(r.columns)}
	}
	return r.columns[j], nil
}

// ValueAt returns the cell at row i, column j.
func (r *Result) ValueAt(i, j int) (string, error) {
	if i < 0 || i >= len(r.rows) || j < 0 || j >= len(r.columns) {
		return "", &IndexError{Row: i, Column: j, Rows: len(r.rows), Cols: len(r.columns)}
	}
	return r.rows[i][j], nil
}

// Columns returns a copy of the column names.
func (r *Result) Columns() []string {
	return append([]string{}, r.columns...)
}

// Row returns a copy of row i.
func (r *Result) Row(i int) ([]string, error) {
	if i < 0 || i >= len(r.rows) {
		return nil, &IndexError{Row: i, Column: -1, Rows: len(r.rows), Cols: len(r.columns)}
	}
	return append([]string{}, r.rows[i]...), nil
}

// Rows returns a deep copy of all rows.
func (r *Result) Rows() [][]string {
	out := make([][]string, len(r.rows))
	for i, row := range r.rows {
		out[i] = append([]string{}, row...)
	}
	return out
}

// resultJSON is the wire shape shared by the JSON renderer and the HTTP API.
type resultJSON struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// MarshalJSON encodes the grid as {"columns": [...], "rows": [[...], ...]}.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{Columns: r.columns, Rows: r.rows})
}

// UnmarshalJSON decodes the shape written by MarshalJSON, enforcing the
// same row-length invariant as NewResult.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := NewResult(raw.Columns, raw.Rows)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}
