package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/pyhx/internal/common"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

type lineResult struct {
	line string
	err  error
}

// lineReader reads one line at a time on a helper goroutine so that a
// blocked read can be abandoned when ctx is cancelled. A line is only read
// when asked for; an abandoned request is served by the next call.
type lineReader struct {
	r       *bufio.Reader
	req     chan struct{}
	res     chan lineResult
	pending bool
	once    sync.Once
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r:   bufio.NewReader(r),
		req: make(chan struct{}),
		res: make(chan lineResult),
	}
}

func (l *lineReader) loop() {
	for range l.req {
		line, err := l.r.ReadString('\n')
		if errors.Is(err, io.EOF) && len(line) > 0 {
			err = nil
		}
		l.res <- lineResult{line: strings.TrimRight(line, "\r\n"), err: err}
	}
}

// ReadLine returns the next line without its terminator. io.EOF is returned
// once input is exhausted; ctx.Err() if ctx ends first.
func (l *lineReader) ReadLine(ctx context.Context) (string, error) {
	l.once.Do(func() { go l.loop() })

	if !l.pending {
		select {
		case l.req <- struct{}{}:
			l.pending = true
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	select {
	case r := <-l.res:
		l.pending = false
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// GetSimpleText prints prompt to w and reads a single line of input.
// Surrounding whitespace is trimmed.
func GetSimpleText(ctx context.Context, lr *lineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := lr.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password. When fd refers to a
// terminal the password is read without echo and a newline is printed after
// it; otherwise (fd < 0) a plain line is read from lr. If ctx ends while the
// terminal read is blocked, ctx.Err() is returned once it completes.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(ctx context.Context, lr *lineReader, prompt string, w io.Writer, fd int) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}

	if fd < 0 {
		line, err := lr.ReadLine(ctx)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	// An interrupt during the terminal read is only seen once it returns.
	if ctxErr := ctx.Err(); ctxErr != nil {
		common.WipeByteArray(pw)
		return nil, ctxErr
	}
	return pw, nil
}

func (a *App) ask(ctx context.Context, prompt string) (string, error) {
	return GetSimpleText(ctx, a.lines, prompt, a.out)
}

func (a *App) askPassword(ctx context.Context, prompt string) ([]byte, error) {
	return GetPassword(ctx, a.lines, prompt, a.out, a.ttyFd)
}
