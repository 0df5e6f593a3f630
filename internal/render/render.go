// Package render writes a TabularResult to a terminal table, CSV, or JSON.
// Renderers only read the result; they know nothing about databases.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mesh-intelligence/sqlview/pkg/types"
)

// Renderer writes a result to w.
type Renderer interface {
	Render(w io.Writer, r *types.Result) error
}

// New returns the renderer for format, one of types.FormatTable,
// types.FormatCSV, or types.FormatJSON.
func New(format string) (Renderer, error) {
	switch format {
	case types.FormatTable:
		return Table{}, nil
	case types.FormatCSV:
		return CSV{}, nil
	case types.FormatJSON:
		return JSON{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrFormatUnknown, format)
	}
}

// Table renders an aligned terminal grid followed by a row count.
type Table struct{}

// Render implements Renderer.
func (Table) Render(w io.Writer, r *types.Result) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, r.ColumnCount())
	for i, col := range r.Columns() {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range r.Rows() {
		tableRow := make(table.Row, len(row))
		for i, val := range row {
			tableRow[i] = val
		}
		t.AppendRow(tableRow)
	}
	t.Render()

	_, err := fmt.Fprintf(w, "(%d %s)\n", r.RowCount(), plural(r.RowCount(), "row", "rows"))
	return err
}

// CSV renders RFC 4180 records with a header line.
type CSV struct{}

// Render implements Renderer.
func (CSV) Render(w io.Writer, r *types.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Columns()); err != nil {
		return err
	}
	if err := cw.WriteAll(r.Rows()); err != nil {
		return err
	}
	return cw.Error()
}

// JSON renders {"columns": [...], "rows": [[...]]}.
type JSON struct {
	Indent string
}

// Render implements Renderer.
func (j JSON) Render(w io.Writer, r *types.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", j.Indent)
	return enc.Encode(r)
}

// Lines writes one item per line; used for table and column listings.
func Lines(w io.Writer, items []string) error {
	for _, item := range items {
		if _, err := fmt.Fprintln(w, item); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
