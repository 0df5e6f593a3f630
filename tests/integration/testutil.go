// Package integration runs the built sqlview binary against real database
// files.
package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

var (
	// sqlviewBin is the path to the built sqlview binary.
	sqlviewBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetSqlviewBin sets the path to the sqlview binary (called from TestMain).
func SetSqlviewBin(path string) {
	sqlviewBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated environment: its own config directory and
// a directory for database files.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	// Env holds extra KEY=VALUE pairs passed to every run.
	Env []string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build sqlview: %v", buildErr)
	}
	if sqlviewBin == "" {
		t.Fatal("sqlview binary not built (sqlviewBin is empty)")
	}

	tempDir := t.TempDir()
	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  filepath.Join(tempDir, "config"),
	}
}

// CreateDB writes a database file under the environment and runs stmts
// against it.
func (e *TestEnv) CreateDB(name string, stmts ...string) string {
	e.t.Helper()

	path := filepath.Join(e.TempDir, name)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		e.t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA user_version = 1"); err != nil {
		e.t.Fatalf("init %s: %v", path, err)
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			e.t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

// WriteConfig writes config.yaml into the environment's config directory.
func (e *TestEnv) WriteConfig(content string) {
	e.t.Helper()
	if err := os.MkdirAll(e.Config, 0o755); err != nil {
		e.t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.Config, "config.yaml"), []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write config: %v", err)
	}
}

// CmdResult holds the result of a sqlview command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the sqlview CLI with the given arguments.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()
	return e.RunInput(nil, args...)
}

// RunInput executes the sqlview CLI with stdin connected to in.
func (e *TestEnv) RunInput(in io.Reader, args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config}, args...)
	cmd := exec.Command(sqlviewBin, allArgs...)
	cmd.Dir = e.TempDir
	cmd.Env = append(cleanEnv(), e.Env...)
	cmd.Stdin = in

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run sqlview: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes the sqlview CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("sqlview %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// cleanEnv drops SQLVIEW_* variables inherited from the developer's shell.
func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "SQLVIEW_") {
			env = append(env, kv)
		}
	}
	return env
}

// Grid is the JSON output shape of a query.
type Grid struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}
