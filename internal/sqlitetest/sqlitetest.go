// Package sqlitetest builds SQLite database files for tests.
package sqlitetest

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Users creates users(id, name) holding (1, Alice) and (2, Bob).
var Users = []string{
	`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
	`INSERT INTO users (id, name) VALUES (1, 'Alice'), (2, 'Bob')`,
}

// Library creates several tables, one with AUTOINCREMENT so that the
// internal sqlite_sequence table exists alongside them.
var Library = []string{
	`CREATE TABLE books (id INTEGER PRIMARY KEY AUTOINCREMENT, title TEXT, author_id INTEGER, price REAL, published DATETIME)`,
	`CREATE TABLE authors (id INTEGER PRIMARY KEY, name TEXT)`,
	`CREATE TABLE "loan log" (book_id INTEGER, borrower TEXT, returned INTEGER)`,
	`CREATE VIEW cheap_books AS SELECT title FROM books WHERE price < 10`,
	`CREATE INDEX idx_books_author ON books(author_id)`,
	`INSERT INTO authors (id, name) VALUES (1, 'Le Guin'), (2, 'Herbert')`,
	`INSERT INTO books (title, author_id, price, published) VALUES
		('The Dispossessed', 1, 9.5, '1974-05-01 00:00:00'),
		('Dune', 2, 12.0, '1965-08-01 00:00:00'),
		('The Lathe of Heaven', 1, NULL, NULL)`,
	`INSERT INTO "loan log" (book_id, borrower, returned) VALUES (1, 'ann', 1)`,
}

// NewDB creates a database file named test.db in a fresh temp directory,
// runs stmts against it, closes it, and returns its path.
func NewDB(t testing.TB, stmts ...string) string {
	t.Helper()
	return NewDBAt(t, filepath.Join(t.TempDir(), "test.db"), stmts...)
}

// NewDBAt is NewDB with an explicit path.
func NewDBAt(t testing.TB, path string, stmts ...string) string {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	// Writing the header makes even a table-less database a valid file.
	if _, err := db.Exec(`PRAGMA user_version = 1`); err != nil {
		t.Fatalf("init %s: %v", path, err)
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

// NotADatabase writes a plain text file and returns its path.
func NotADatabase(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("this is not a database file\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
