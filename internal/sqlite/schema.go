package sqlite

import (
	"regexp"
	"strings"
)

// Catalog statements. tableListQuery and the LIKE pattern it carries are a
// stable boundary: existing databases are browsed through exactly this text.
const (
	tableListQuery = `SELECT name FROM sqlite_schema WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	probeQuery     = `PRAGMA schema_version`
)

// ReservedPrefix marks SQLite's internal tables (sqlite_sequence, sqlite_stat1, ...).
const ReservedPrefix = "sqlite_"

// identRegex matches names that can be used in SQL without quoting.
var identRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsPlainIdentifier reports whether s can appear unquoted in a statement.
func IsPlainIdentifier(s string) bool {
	return identRegex.MatchString(s)
}

// QuoteIdent wraps s in double quotes, doubling any embedded quote.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// DefaultQuery returns the statement offered when table is selected:
// SELECT * FROM <table>; with the name quoted only when it is not a plain
// identifier.
func DefaultQuery(table string) string {
	name := table
	if !IsPlainIdentifier(table) {
		name = QuoteIdent(table)
	}
	return "SELECT * FROM " + name + ";"
}

// tableInfoQuery returns the PRAGMA listing the columns of table.
func tableInfoQuery(table string) string {
	return "PRAGMA table_info(" + QuoteIdent(table) + ")"
}
