package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/filex"
	"github.com/dmitrijs2005/pyhx/internal/shell/registry"
)

const (
	goUsage       = "go <directory>"
	makeUsage     = "make <file|dir> <name>"
	readUsage     = "read <filename>"
	deleteUsage   = "delete <file_or_empty_dir>"
	copyUsage     = "copy <source> <destination>"
	moveUsage     = "move <source> <destination>"
	sayUsage      = "say <text> [> file | >> file]"
	countUsage    = "count <filename>"
	findtextUsage = "findtext <pattern> <filename>"
)

func (a *App) cmdWhereami(ctx context.Context, call registry.Call) (registry.Result, error) {
	dir, err := currentDir()
	if err != nil {
		return registry.Result{}, common.Errorf(common.ErrIOFailure, "cannot determine current directory: %w", err)
	}
	a.println(dir)
	return registry.Next, nil
}

func (a *App) cmdGo(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) == 0 {
		return registry.Result{}, common.Usage(goUsage)
	}
	dir := call.Args[0]

	if ok, isDir := filex.Exists(dir); !ok || !isDir {
		return registry.Result{}, common.Errorf(common.ErrNotFound, "directory '%s' not found", dir)
	}
	if err := os.Chdir(dir); err != nil {
		return registry.Result{}, common.Errorf(common.ErrIOFailure, "could not change directory: %w", err)
	}
	return registry.Next, nil
}

func (a *App) cmdLook(ctx context.Context, call registry.Call) (registry.Result, error) {
	dir := "."
	if len(call.Args) > 0 {
		dir = call.Args[0]
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return registry.Result{}, common.Errorf(common.ErrNotFound, "directory '%s' not found", dir)
		}
		return registry.Result{}, common.Errorf(common.ErrIOFailure, "cannot list '%s': %w", dir, err)
	}

	if len(entries) == 0 {
		a.printf("Directory '%s' is empty.\n", dir)
		return registry.Next, nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})
	for _, e := range entries {
		prefix := "      "
		if _, isDir := filex.Exists(filepath.Join(dir, e.Name())); isDir {
			prefix = "[DIR] "
		}
		a.println(prefix + e.Name())
	}
	return registry.Next, nil
}

func (a *App) cmdMake(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) < 2 {
		return registry.Result{}, common.Usage(makeUsage)
	}
	kind, name := call.Args[0], strings.Join(call.Args[1:], " ")

	switch kind {
	case "file":
		f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return registry.Result{}, common.Errorf(common.ErrIOFailure, "cannot create file '%s': %w", name, err)
		}
		f.Close()
		a.printf("File '%s' created.\n", name)

	case "dir":
		if ok, _ := filex.Exists(name); ok {
			return registry.Result{}, common.Errorf(common.ErrValidation, "directory '%s' already exists", name)
		}
		if err := os.MkdirAll(name, 0o755); err != nil {
			return registry.Result{}, common.Errorf(common.ErrIOFailure, "could not create directory: %w", err)
		}
		a.printf("Directory '%s' created.\n", name)

	default:
		return registry.Result{}, common.Usage(makeUsage)
	}
	return registry.Next, nil
}

func (a *App) cmdRead(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) == 0 {
		return registry.Result{}, common.Usage(readUsage)
	}
	name := call.Args[0]

	data, err := os.ReadFile(name)
	if err != nil {
		return registry.Result{}, fileError(name, err)
	}
	a.println(string(data))
	return registry.Next, nil
}

// cmdDelete removes a file or an empty directory after a y/n confirmation.
// Any answer other than y or Y cancels.
func (a *App) cmdDelete(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) == 0 {
		return registry.Result{}, common.Usage(deleteUsage)
	}
	target := call.Args[0]

	ok, isDir := filex.Exists(target)
	if !ok {
		return registry.Result{}, common.Errorf(common.ErrNotFound, "'%s' not found", target)
	}

	answer, err := a.ask(ctx, "Are you sure you want to delete '"+target+"'? (y/n): ")
	if err != nil {
		return registry.Result{}, err
	}
	if !strings.EqualFold(answer, "y") {
		a.println("Deletion cancelled.")
		return registry.Next, nil
	}

	if err := os.Remove(target); err != nil {
		if isDir {
			return registry.Result{}, common.Errorf(common.ErrValidation, "directory '%s' is not empty", target)
		}
		return registry.Result{}, common.Errorf(common.ErrIOFailure, "cannot delete '%s': %w", target, err)
	}

	a.log.Info(ctx, "path deleted", "path", target)
	if isDir {
		a.printf("Directory '%s' deleted.\n", target)
	} else {
		a.printf("File '%s' deleted.\n", target)
	}
	return registry.Next, nil
}

func (a *App) cmdCopy(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) != 2 {
		return registry.Result{}, common.Usage(copyUsage)
	}
	src, dst := call.Args[0], call.Args[1]

	if err := filex.CopyFile(src, dst); err != nil {
		return registry.Result{}, common.Errorf(common.ErrIOFailure, "cannot copy file: %w", err)
	}
	a.printf("Copied '%s' to '%s'.\n", src, dst)
	return registry.Next, nil
}

func (a *App) cmdMove(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) != 2 {
		return registry.Result{}, common.Usage(moveUsage)
	}
	src, dst := call.Args[0], call.Args[1]

	if err := filex.MoveFile(src, dst); err != nil {
		return registry.Result{}, common.Errorf(common.ErrIOFailure, "cannot move file: %w", err)
	}
	a.printf("Moved '%s' to '%s'.\n", src, dst)
	return registry.Next, nil
}

// cmdSay prints its arguments joined by single spaces, or writes them with a
// trailing newline to the redirect target (truncating for >, appending for >>).
func (a *App) cmdSay(ctx context.Context, call registry.Call) (registry.Result, error) {
	text := strings.Join(call.Args, " ")

	if call.Redirect == nil {
		a.println(text)
		return registry.Next, nil
	}

	target := call.Redirect.Target
	if target == "" {
		return registry.Result{}, common.Usage(sayUsage)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if call.Redirect.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	f, err := os.OpenFile(target, flags, 0o644)
	if err != nil {
		return registry.Result{}, common.Errorf(common.ErrIOFailure, "cannot write to file: %w", err)
	}
	_, werr := f.WriteString(text + "\n")
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return registry.Result{}, common.Errorf(common.ErrIOFailure, "cannot write to file: %w", err)
	}
	return registry.Next, nil
}

func (a *App) cmdCount(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) == 0 {
		return registry.Result{}, common.Usage(countUsage)
	}
	name := call.Args[0]

	f, err := os.Open(name)
	if err != nil {
		return registry.Result{}, fileError(name, err)
	}
	defer f.Close()

	var lines, words, chars int
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			lines++
			words += len(strings.Fields(line))
			chars += utf8.RuneCountInString(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return registry.Result{}, common.Errorf(common.ErrIOFailure, "error reading file: %w", err)
		}
	}

	a.printf("Lines: %d, Words: %d, Chars: %d --- %s\n", lines, words, chars, name)
	return registry.Next, nil
}

// cmdFindtext prints every line of a file matching a case-insensitive
// regular expression, prefixed with its 1-based line number.
func (a *App) cmdFindtext(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) < 2 {
		return registry.Result{}, common.Usage(findtextUsage)
	}
	pattern, name := call.Args[0], call.Args[1]

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return registry.Result{}, common.Errorf(common.ErrValidation, "invalid pattern '%s'", pattern)
	}

	f, err := os.Open(name)
	if err != nil {
		return registry.Result{}, fileError(name, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for n := 1; sc.Scan(); n++ {
		if line := sc.Text(); re.MatchString(line) {
			a.printf("%d:%s\n", n, strings.TrimSpace(line))
		}
	}
	if err := sc.Err(); err != nil {
		return registry.Result{}, common.Errorf(common.ErrIOFailure, "error reading file: %w", err)
	}
	return registry.Next, nil
}

func fileError(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return common.Errorf(common.ErrNotFound, "file '%s' not found", name)
	}
	return common.Errorf(common.ErrIOFailure, "error reading file: %w", err)
}
