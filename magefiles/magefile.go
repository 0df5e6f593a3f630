//go:build mage

// Package main provides build targets for the sqlview project using Mage.
//
// Usage:
//
//	mage build           Compile sqlview binary to bin/
//	mage test            Run all tests (unit + integration)
//	mage testUnit        Run only unit tests (exclude integration)
//	mage testIntegration Run only integration tests (builds first)
//	mage lint            Run golangci-lint
//	mage clean           Remove build artifacts
//	mage install         Install sqlview to GOPATH/bin
//	mage sample          Write bin/sample.db to try the viewer on
//	mage stats           Print Go line counts per package
package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	_ "modernc.org/sqlite"
)

const (
	binaryName = "sqlview"
	binaryDir  = "bin"
	cmdDir     = "./cmd/sqlview"
	sampleDB   = "sample.db"
)

// sampleSchema seeds the database written by Sample.
var sampleSchema = []string{
	`CREATE TABLE artists (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
	`CREATE TABLE albums (id INTEGER PRIMARY KEY AUTOINCREMENT, artist_id INTEGER REFERENCES artists(id), title TEXT, year INTEGER, rating REAL)`,
	`CREATE TABLE "play history" (album_id INTEGER, played_at DATETIME, skipped INTEGER)`,
	`CREATE VIEW top_albums AS SELECT title FROM albums WHERE rating >= 4.5`,
	`INSERT INTO artists VALUES (1, 'Miles Davis'), (2, 'Nina Simone'), (3, 'Can')`,
	`INSERT INTO albums (artist_id, title, year, rating) VALUES
		(1, 'Kind of Blue', 1959, 5.0),
		(1, 'Bitches Brew', 1970, 4.5),
		(2, 'Pastel Blues', 1965, 4.0),
		(3, 'Tago Mago', 1971, NULL)`,
	`INSERT INTO "play history" VALUES (1, '2026-01-02 20:15:00', 0), (4, '2026-01-03 09:00:00', 1)`,
}

// Build compiles the sqlview binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests (unit and integration).
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestUnit runs only unit tests, excluding the tests/ directory.
func TestUnit() error {
	pkgs, err := sh.Output("go", "list", "./...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for _, pkg := range strings.Split(pkgs, "\n") {
		if pkg != "" && !strings.Contains(pkg, "/tests/") && !strings.HasSuffix(pkg, "/tests") {
			unitPkgs = append(unitPkgs, pkg)
		}
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	args := append([]string{"test"}, unitPkgs...)
	return sh.RunV("go", args...)
}

// TestIntegration builds first, then runs only integration tests.
func TestIntegration() error {
	mg.Deps(Build)
	return sh.RunV("go", "test", "./tests/...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Sample writes bin/sample.db, replacing any previous copy.
func Sample() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(binaryDir, sampleDB)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range sampleSchema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("seeding %s: %w", path, err)
		}
	}
	fmt.Printf("wrote %s; try: %s tables --db %s\n", path, filepath.Join(binaryDir, binaryName), path)
	return nil
}

// Stats prints Go line counts per package directory, production and test.
func Stats() error {
	type counts struct{ prod, test int }
	byDir := map[string]*counts{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), "_") || path == "vendor" || path == ".git" || path == binaryDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		n, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		dir := filepath.Dir(path)
		c := byDir[dir]
		if c == nil {
			c = &counts{}
			byDir[dir] = c
		}
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var total counts
	fmt.Printf("%-28s %8s %8s\n", "package", "prod", "test")
	for _, dir := range dirs {
		c := byDir[dir]
		fmt.Printf("%-28s %8d %8d\n", dir, c.prod, c.test)
		total.prod += c.prod
		total.test += c.test
	}
	fmt.Printf("%-28s %8d %8d\n", "total", total.prod, total.test)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
