package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionError(t *testing.T) {
	cause := errors.New("file is not a database")
	err := fmt.Errorf("open: %w", &ConnectionError{Target: "bad.db", Err: cause})

	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrQuery)
	assert.NotErrorIs(t, err, ErrNoTarget)
	assert.Contains(t, err.Error(), "bad.db")
	assert.Contains(t, err.Error(), "file is not a database")
}

func TestQueryError(t *testing.T) {
	cause := errors.New("no such table: nonexistent")
	err := &QueryError{Query: "SELECT * FROM nonexistent;", Err: cause}

	assert.ErrorIs(t, err, ErrQuery)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConnection)
	assert.Equal(t, "query: no such table: nonexistent", err.Error())
}

func TestIndexErrorMessages(t *testing.T) {
	assert.Equal(t, "column 3 out of range [0,2)", (&IndexError{Row: -1, Column: 3, Rows: 1, Cols: 2}).Error())
	assert.Equal(t, "row 4 out of range [0,1)", (&IndexError{Row: 4, Column: -1, Rows: 1, Cols: 2}).Error())
	assert.Equal(t, "cell (0,5) out of range [0,1)x[0,2)", (&IndexError{Row: 0, Column: 5, Rows: 1, Cols: 2}).Error())
}
