package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/shell/parser"
	"github.com/dmitrijs2005/pyhx/internal/shell/registry"
)

// shell is the minimal surface the REPL needs. The real App satisfies it;
// tests can provide a lightweight stub.
type shell interface {
	prompt(ctx context.Context) string
	readLine(ctx context.Context) (string, error)
	execute(ctx context.Context, line string) bool
}

// runREPL is the read-eval-print loop of the shell.
//
// Each iteration prints the prompt, blocks for one line and hands non-empty
// lines to execute. The loop ends when execute returns false, on end of
// input, or when ctx is cancelled; the latter two print a hint about the
// shutdown command first.
func runREPL(ctx context.Context, sh shell, w io.Writer) {
	for {
		fmt.Fprint(w, sh.prompt(ctx))

		line, err := sh.readLine(ctx)
		if err != nil {
			fmt.Fprintln(w, "\nUse 'shutdown' to exit.")
			return
		}
		if line == "" {
			continue
		}

		if !sh.execute(ctx, line) {
			return
		}
	}
}

func (a *App) prompt(ctx context.Context) string {
	dir := "?"
	if cwd, err := currentDir(); err == nil {
		dir = filepath.Base(cwd)
	}
	return fmt.Sprintf("%s@%s:%s$ ", a.session.Identity.Username, a.hostname.Get(ctx), dir)
}

func (a *App) readLine(ctx context.Context) (string, error) {
	return a.lines.ReadLine(ctx)
}

// execute records line in the history, resolves the command and invokes its
// handler. It reports whether the loop should continue.
func (a *App) execute(ctx context.Context, line string) bool {
	a.session.Record(line)

	parsed := parser.Parse(line)
	if parsed.Empty() {
		return true
	}

	desc, ok := a.registry.Lookup(parsed.Command)
	if !ok {
		a.printf("PyHx: command not found: %s\n", parsed.Command)
		if s := a.registry.Suggest(parsed.Command); s != "" {
			a.println(a.styles.muted.Render(fmt.Sprintf("Did you mean '%s'?", s)))
		}
		return true
	}

	if !desc.RequiredRole.Allows(a.session.Identity) {
		a.log.Warn(ctx, "permission denied", "command", desc.Name)
		a.report(common.Errorf(common.ErrPermissionDenied, "permission denied"))
		return true
	}

	call := registry.Call{Args: parsed.Args, Session: a.session}
	if parsed.Redirect != nil {
		if desc.AcceptsRedirect {
			call.Redirect = parsed.Redirect
		} else {
			a.report(common.Errorf(common.ErrValidation, "redirection is only supported for %s", a.redirectable()))
		}
	}

	a.log.Debug(ctx, "dispatch", "command", desc.Name, "args", len(parsed.Args))

	res, err := desc.Handler.Handle(ctx, call)
	if err != nil {
		a.log.Debug(ctx, "command failed", "command", desc.Name, "error", err)
		a.report(err)
		return true
	}

	if res.Session != nil && res.Session != a.session {
		a.setSession(res.Session)
	}
	if res.Restart {
		a.restart = true
	}
	return res.Continue
}

// report prints err as a diagnostic: usage errors as "Usage: ...",
// everything else as "Error: ...".
func (a *App) report(err error) {
	var ue *common.UsageError
	if errors.As(err, &ue) {
		a.println(a.styles.usage.Render("Usage: " + ue.Usage))
		return
	}
	a.println(a.styles.err.Render("Error: " + err.Error()))
}

func (a *App) redirectable() string {
	var names []string
	for _, name := range a.registry.Names() {
		if d, _ := a.registry.Lookup(name); d.AcceptsRedirect {
			names = append(names, "'"+name+"'")
		}
	}
	if len(names) == 0 {
		return "no command"
	}
	return "the " + strings.Join(names, ", ") + " command"
}
