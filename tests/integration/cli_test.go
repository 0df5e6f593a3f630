// CLI integration tests for sqlview: the open, list, select, execute flow
// through the built binary.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var usersSchema = []string{
	"CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, score REAL, note TEXT)",
	"INSERT INTO users VALUES (1, 'Alice', 9.5, NULL), (2, 'Bob', 7.0, 'late')",
	"CREATE TABLE orders (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER)",
	"INSERT INTO orders (user_id) VALUES (1)",
}

// TestMain builds the sqlview binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "sqlview-test-*")
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}
	binPath := filepath.Join(tmpDir, "sqlview")
	SetSqlviewBin(binPath)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/sqlview")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		SetBuildErr(&BuildError{
			Err:    err,
			Output: string(output),
		})
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)

	os.Exit(code)
}

// Test1_FirstRunWritesConfig verifies the default config.yaml is created.
func Test1_FirstRunWritesConfig(t *testing.T) {
	env := NewTestEnv(t)
	db := env.CreateDB("app.db", usersSchema...)

	env.MustRun("tables", "--db", db)

	data, err := os.ReadFile(filepath.Join(env.Config, "config.yaml"))
	if err != nil {
		t.Fatalf("config.yaml not created: %v", err)
	}
	if !strings.Contains(string(data), "probe_timeout: 5s") {
		t.Errorf("default config missing probe_timeout:\n%s", data)
	}
}

// Test2_ListTables verifies the listing is sorted and hides sqlite_sequence.
func Test2_ListTables(t *testing.T) {
	env := NewTestEnv(t)
	db := env.CreateDB("app.db", usersSchema...)

	result := env.MustRun("tables", "--db", db)

	if result.Stdout != "orders\nusers\n" {
		t.Errorf("tables = %q, want %q", result.Stdout, "orders\nusers\n")
	}
}

// Test3_QueryTableDefault verifies --table runs SELECT * FROM <table>.
func Test3_QueryTableDefault(t *testing.T) {
	env := NewTestEnv(t)
	db := env.CreateDB("app.db", usersSchema...)

	result := env.MustRun("query", "--db", db, "--format", "json", "--table", "users")
	grid := ParseJSON[Grid](t, result.Stdout)

	wantCols := []string{"id", "name", "score", "note"}
	if strings.Join(grid.Columns, ",") != strings.Join(wantCols, ",") {
		t.Errorf("columns = %v, want %v", grid.Columns, wantCols)
	}
	if len(grid.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(grid.Rows))
	}
	if got := strings.Join(grid.Rows[0], "|"); got != "1|Alice|9.5|" {
		t.Errorf("row 0 = %q, want %q", got, "1|Alice|9.5|")
	}
	if got := strings.Join(grid.Rows[1], "|"); got != "2|Bob|7.0|late" {
		t.Errorf("row 1 = %q, want %q", got, "2|Bob|7.0|late")
	}
}

// Test4_QueryCSV verifies free-form SQL and the csv renderer.
func Test4_QueryCSV(t *testing.T) {
	env := NewTestEnv(t)
	db := env.CreateDB("app.db", usersSchema...)

	result := env.MustRun("query", "--db", db, "-f", "csv", "SELECT name, note FROM users ORDER BY id")

	want := "name,note\nAlice,\nBob,late\n"
	if result.Stdout != want {
		t.Errorf("csv = %q, want %q", result.Stdout, want)
	}
}

// Test5_TableFormat verifies the default grid output ends with a row count.
func Test5_TableFormat(t *testing.T) {
	env := NewTestEnv(t)
	db := env.CreateDB("app.db", usersSchema...)

	result := env.MustRun("query", "--db", db, "SELECT id FROM users")

	if !strings.Contains(result.Stdout, "(2 rows)") {
		t.Errorf("expected row count in output:\n%s", result.Stdout)
	}
}

// Test6_ExitCodes verifies failures map to documented exit codes.
func Test6_ExitCodes(t *testing.T) {
	env := NewTestEnv(t)
	db := env.CreateDB("app.db", usersSchema...)
	notDB := filepath.Join(env.TempDir, "notes.txt")
	if err := os.WriteFile(notDB, []byte("plain text\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing file", []string{"tables", "--db", filepath.Join(env.TempDir, "nope.db")}, 1},
		{"not a database", []string{"tables", "--db", notDB}, 2},
		{"bad query", []string{"query", "--db", db, "SELEC 1"}, 1},
		{"unknown table", []string{"query", "--db", db, "-t", "ghosts"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := env.Run(tt.args...)
			if result.ExitCode != tt.code {
				t.Errorf("exit code = %d, want %d (stderr: %s)", result.ExitCode, tt.code, result.Stderr)
			}
			if !strings.HasPrefix(result.Stderr, "sqlview:") {
				t.Errorf("stderr = %q, want sqlview: prefix", result.Stderr)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(env.TempDir, "nope.db")); !os.IsNotExist(err) {
		t.Error("opening a missing file must not create it")
	}
}

// Test7_ConfigPrecedence verifies config file < env < flag.
func Test7_ConfigPrecedence(t *testing.T) {
	env := NewTestEnv(t)
	db := env.CreateDB("app.db", usersSchema...)
	env.WriteConfig("database: " + db + "\nformat: csv\nnull_text: none\n")

	result := env.MustRun("query", "SELECT note FROM users WHERE id = 1")
	if result.Stdout != "note\nnone\n" {
		t.Errorf("config file: got %q", result.Stdout)
	}

	env.Env = []string{"SQLVIEW_NULL_TEXT=env"}
	result = env.MustRun("query", "SELECT note FROM users WHERE id = 1")
	if result.Stdout != "note\nenv\n" {
		t.Errorf("env override: got %q", result.Stdout)
	}

	result = env.MustRun("query", "--null-text", "flag", "SELECT note FROM users WHERE id = 1")
	if result.Stdout != "note\nflag\n" {
		t.Errorf("flag override: got %q", result.Stdout)
	}
}

// Test8_DotEnv verifies a .env file in the working directory is read.
func Test8_DotEnv(t *testing.T) {
	env := NewTestEnv(t)
	db := env.CreateDB("app.db", usersSchema...)
	dotEnv := "SQLVIEW_DATABASE=" + db + "\nSQLVIEW_FORMAT=csv\n"
	if err := os.WriteFile(filepath.Join(env.TempDir, ".env"), []byte(dotEnv), 0o644); err != nil {
		t.Fatal(err)
	}

	result := env.MustRun("query", "SELECT count(*) AS n FROM users")
	if result.Stdout != "n\n2\n" {
		t.Errorf("got %q, want %q", result.Stdout, "n\n2\n")
	}
}

// Test9_Shell verifies an interactive session driven through stdin.
func Test9_Shell(t *testing.T) {
	env := NewTestEnv(t)
	db := env.CreateDB("app.db", usersSchema...)

	script := strings.Join([]string{
		".format csv",
		".use users",
		".run",
		"SELECT * FROM ghosts",
		"SELECT max(id) AS top FROM users",
		".quit",
	}, "\n")
	result := env.RunInput(strings.NewReader(script), "shell", "--db", db)

	if result.ExitCode != 0 {
		t.Fatalf("shell exit code = %d, stderr: %s", result.ExitCode, result.Stderr)
	}
	for _, want := range []string{
		"opened " + db,
		"SELECT * FROM users;",
		"id,name,score,note\n1,Alice,9.5,\n",
		"no such table: ghosts",
		"top\n2\n",
	} {
		if !strings.Contains(result.Stdout, want) {
			t.Errorf("shell output missing %q:\n%s", want, result.Stdout)
		}
	}
}

// Test10_Version verifies version output without any configuration.
func Test10_Version(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRun("version")

	if !strings.HasPrefix(result.Stdout, "sqlview v") {
		t.Errorf("version output = %q", result.Stdout)
	}
	if _, err := os.Stat(env.Config); !os.IsNotExist(err) {
		t.Error("version must not create the config directory")
	}
}
