// Package sqlview carries module-wide identifiers.
package sqlview

// Version is the sqlview release version.
const Version = "0.1.0"
