// Shell command: a line-oriented session that follows the browse flow of
// open database, pick table, edit query, execute.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sqlview/internal/render"
	"github.com/mesh-intelligence/sqlview/internal/viewer"
	"github.com/mesh-intelligence/sqlview/pkg/types"
)

const shellPrompt = "sqlview> "

const shellHelp = `.open <path>     open a database file
.tables          list tables
.refresh         re-read the table list
.columns <table> list the columns of a table
.use <table>     set the query to SELECT * FROM <table>;
.query           show the current query
.run             execute the current query
.result          print the last result again
.state           show the session state
.format <name>   switch output format (table, csv, json)
.help            show this help
.quit            leave the shell
Any other line replaces the current query and executes it.
`

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer()
			if err != nil {
				return err
			}
			sh := &shell{
				session:  newSession(),
				out:      cmd.OutOrStdout(),
				renderer: renderer,
			}
			if cfg.Database != "" {
				sh.exec(cmd.Context(), ".open "+cfg.Database)
			}
			return sh.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

// shell reads commands line by line. A failed command is reported and the
// loop continues; failures never end the session.
type shell struct {
	session  *viewer.Session
	out      io.Writer
	renderer render.Renderer
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}
		if quit := sh.exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// exec runs one line and reports whether the shell should exit.
func (sh *shell) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if !strings.HasPrefix(line, ".") {
		if err := sh.session.SetQuery(line); err != nil {
			sh.report(err)
			return false
		}
		sh.execute(ctx)
		return false
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ".quit", ".exit":
		return true
	case ".help":
		fmt.Fprint(sh.out, shellHelp)
	case ".open":
		if err := sh.session.Open(ctx, types.Target(arg)); err != nil {
			sh.report(err)
			return false
		}
		fmt.Fprintf(sh.out, "opened %s (%d tables)\n", arg, len(sh.session.Tables()))
	case ".tables":
		if sh.session.State() != viewer.Ready {
			sh.report(types.ErrNotReady)
			return false
		}
		sh.check(render.Lines(sh.out, sh.session.Tables()))
	case ".refresh":
		tables, err := sh.session.Refresh(ctx)
		if err != nil {
			sh.report(err)
			return false
		}
		sh.check(render.Lines(sh.out, tables))
	case ".columns":
		columns, err := sh.session.Columns(ctx, arg)
		if err != nil {
			sh.report(err)
			return false
		}
		sh.check(render.Lines(sh.out, columns))
	case ".use":
		query, err := sh.session.SelectTable(arg)
		if err != nil {
			sh.report(err)
			return false
		}
		fmt.Fprintln(sh.out, query)
	case ".query":
		fmt.Fprintln(sh.out, sh.session.Query())
	case ".run":
		sh.execute(ctx)
	case ".result":
		result := sh.session.Result()
		if result == nil {
			fmt.Fprintln(sh.out, "no result")
			return false
		}
		sh.check(sh.renderer.Render(sh.out, result))
	case ".state":
		snap := sh.session.Snapshot()
		fmt.Fprintf(sh.out, "state: %s\ntarget: %s\nquery: %s\n", snap.State, snap.Target, snap.Query)
	case ".format":
		renderer, err := render.New(arg)
		if err != nil {
			sh.report(err)
			return false
		}
		sh.renderer = renderer
	default:
		fmt.Fprintf(sh.out, "unknown command %s (try .help)\n", name)
	}
	return false
}

func (sh *shell) execute(ctx context.Context) {
	result, err := sh.session.Execute(ctx)
	if err != nil {
		sh.report(err)
		return
	}
	sh.check(sh.renderer.Render(sh.out, result))
}

// check reports err when it is non-nil.
func (sh *shell) check(err error) {
	if err != nil {
		sh.report(err)
	}
}

// report prints err in a form that tells "not connected" and "nothing to
// open" apart from engine failures.
func (sh *shell) report(err error) {
	switch {
	case errors.Is(err, types.ErrNotReady):
		fmt.Fprintln(sh.out, "error: no database open (use .open <path>)")
	case errors.Is(err, types.ErrNoTarget):
		fmt.Fprintln(sh.out, "error: file not found")
	default:
		fmt.Fprintln(sh.out, "error:", err)
	}
}
