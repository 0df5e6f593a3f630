package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/sqlview/pkg/types"
)

// timeLayout renders time.Time cells, which the driver produces for
// DATE/DATETIME/TIMESTAMP columns, the way SQLite stores them.
const (
	timeLayout   = "2006-01-02 15:04:05.999999999"
	timeLayoutTZ = "2006-01-02 15:04:05.999999999-07:00"
	dateLayout   = "2006-01-02"
)

// dateTypeName is the declared column type whose midnight values print
// without a clock.
const dateTypeName = "DATE"

// Executor runs queries verbatim and flattens every cell to text.
// It keeps no state between calls.
//
// The driver parses text held in DATE, DATETIME and TIMESTAMP columns into
// time values, so such cells print in a normalised form rather than as
// stored: '2026-01-02T20:15:00Z' prints as 2026-01-02 20:15:00. A midnight
// value in a DATE column prints as the date alone.
type Executor struct {
	nullText string
}

// NewExecutor returns an Executor that renders SQL NULL as nullText.
func NewExecutor(nullText string) *Executor {
	return &Executor{nullText: nullText}
}

// Execute runs query against conn and materializes the full result.
// Column names are read first, then rows in engine order. Any failure,
// including one surfacing mid-iteration, returns a *types.QueryError and
// no partial result.
func (e *Executor) Execute(ctx context.Context, conn types.Connection, query string) (*types.Result, error) {
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &types.QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &types.QueryError{Query: query, Err: err}
	}

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, &types.QueryError{Query: query, Err: err}
	}
	dateOnly := make([]bool, len(colTypes))
	for i, ct := range colTypes {
		dateOnly[i] = strings.EqualFold(ct.DatabaseTypeName(), dateTypeName)
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	var data [][]string
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &types.QueryError{Query: query, Err: err}
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if t, ok := v.(time.Time); ok && dateOnly[i] && isMidnight(t) {
				row[i] = t.Format(dateLayout)
				continue
			}
			row[i] = e.cellText(v)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.QueryError{Query: query, Err: err}
	}

	result, err := types.NewResult(columns, data)
	if err != nil {
		return nil, &types.QueryError{Query: query, Err: err}
	}
	return result, nil
}

// cellText converts a driver value to its text form.
func (e *Executor) cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return e.nullText
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatReal(x)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		if x.Location() == time.UTC {
			return x.Format(timeLayout)
		}
		return x.Format(timeLayoutTZ)
	default:
		return fmt.Sprint(x)
	}
}

func isMidnight(t time.Time) bool {
	h, m, sec := t.Clock()
	return h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0
}

// formatReal renders f as SQLite does: shortest form, with ".0" kept on
// integral values so REAL columns stay distinguishable from INTEGER ones.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}
