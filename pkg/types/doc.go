// Package types defines the ConnectionProvider, SchemaInspector and
// QueryExecutor interfaces, the TabularResult grid, configuration, and the
// standard errors for the sqlview data-access layer.
// Implements: data-access core (Target, Connection, TabularResult, error taxonomy).
package types
