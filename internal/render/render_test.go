package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sqlview/pkg/types"
)

func usersResult(t *testing.T) *types.Result {
	t.Helper()
	r, err := types.NewResult([]string{"id", "name"}, [][]string{{"1", "Alice"}, {"2", "Bob, Jr."}})
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	for _, format := range []string{types.FormatTable, types.FormatCSV, types.FormatJSON} {
		r, err := New(format)
		require.NoError(t, err, format)
		assert.NotNil(t, r)
	}

	_, err := New("yaml")
	assert.ErrorIs(t, err, types.ErrFormatUnknown)
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table{}.Render(&buf, usersResult(t)))

	out := buf.String()
	for _, want := range []string{"ID", "NAME", "Alice", "Bob, Jr.", "(2 rows)"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Alice"), strings.Index(out, "Bob"), "row order preserved")
}

func TestTable_RenderEmpty(t *testing.T) {
	r, err := types.NewResult([]string{"x"}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Table{}.Render(&buf, r))
	assert.Contains(t, buf.String(), "(0 rows)")
}

func TestCSV_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV{}.Render(&buf, usersResult(t)))
	assert.Equal(t, "id,name\n1,Alice\n2,\"Bob, Jr.\"\n", buf.String())
}

func TestJSON_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON{}.Render(&buf, usersResult(t)))
	assert.JSONEq(t, `{"columns":["id","name"],"rows":[["1","Alice"],["2","Bob, Jr."]]}`, buf.String())
}

func TestLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Lines(&buf, []string{"authors", "books"}))
	assert.Equal(t, "authors\nbooks\n", buf.String())
}
