package cli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pyhx/internal/calc"
	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/netx"
	"github.com/dmitrijs2005/pyhx/internal/shell/registry"
)

const (
	netUsage    = "net <ping|lookup|get> ..."
	pingUsage   = "net ping <host>"
	lookupUsage = "net lookup <host>"
	getUsage    = "net get <URL>"
	calcUsage   = "calc <expression>"

	jokeFailure = "Could not fetch a joke. The internet must be sad today."
)

func (a *App) cmdNet(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) == 0 {
		return registry.Result{}, common.Usage(netUsage)
	}
	sub, args := call.Args[0], call.Args[1:]

	var err error
	switch sub {
	case "ping":
		if len(args) == 0 {
			return registry.Result{}, common.Usage(pingUsage)
		}
		err = a.ping(ctx, args[0])
	case "lookup":
		if len(args) == 0 {
			return registry.Result{}, common.Usage(lookupUsage)
		}
		err = a.lookup(ctx, args[0])
	case "get":
		if len(args) == 0 {
			return registry.Result{}, common.Usage(getUsage)
		}
		err = a.get(ctx, args[0])
	default:
		return registry.Result{}, common.Usage(netUsage)
	}

	if err != nil {
		return registry.Result{}, err
	}
	return registry.Next, nil
}

func (a *App) ping(ctx context.Context, host string) error {
	if strings.HasPrefix(host, "-") {
		return common.Errorf(common.ErrValidation, "invalid host '%s'", host)
	}

	flag := "-c"
	if runtime.GOOS == "windows" {
		flag = "-n"
	}

	err := a.runner.Run(ctx, a.out, "ping", flag, strconv.Itoa(a.config.PingCount), host)
	var exitErr *exec.ExitError
	switch {
	case err == nil, errors.As(err, &exitErr):
		return nil
	case errors.Is(err, exec.ErrNotFound):
		return common.Errorf(common.ErrNotFound, "'ping' command not found")
	default:
		return common.Errorf(common.ErrRuntimeFailure, "ping failed: %w", err)
	}
}

func (a *App) lookup(ctx context.Context, host string) error {
	addrs, err := a.lookupHost(ctx, host)
	if err != nil {
		return common.Errorf(common.ErrNotFound, "cannot resolve '%s': %w", host, err)
	}

	a.printf("Name:    %s\n", host)
	for _, addr := range addrs {
		a.printf("Address: %s\n", addr)
	}
	return nil
}

func (a *App) get(ctx context.Context, url string) error {
	body, err := netx.Get(ctx, a.http, url)
	if err != nil {
		return common.Errorf(common.ErrIOFailure, "error fetching URL: %w", err)
	}
	a.println(string(body))
	return nil
}

func (a *App) cmdCalc(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) == 0 {
		return registry.Result{}, common.Usage(calcUsage)
	}

	v, err := calc.Eval(strings.Join(call.Args, " "))
	if err != nil {
		return registry.Result{}, common.Errorf(common.ErrValidation, "%w", err)
	}
	a.println(calc.Format(v))
	return registry.Next, nil
}

func (a *App) cmdCalendar(ctx context.Context, call registry.Call) (registry.Result, error) {
	a.println(monthCalendar(a.now()))
	return registry.Next, nil
}

// monthCalendar renders the month containing t as a Monday-first grid.
func monthCalendar(t time.Time) string {
	const width = 20

	var b strings.Builder
	title := fmt.Sprintf("%s %d", t.Month(), t.Year())
	pad := (width - len(title)) / 2
	b.WriteString(strings.TrimRight(strings.Repeat(" ", pad)+title, " "))
	b.WriteString("\nMo Tu We Th Fr Sa Su\n")

	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	days := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7

	var week []string
	for i := 0; i < offset; i++ {
		week = append(week, "  ")
	}
	for d := 1; d <= days; d++ {
		week = append(week, fmt.Sprintf("%2d", d))
		if len(week) == 7 || d == days {
			b.WriteString(strings.TrimRight(strings.Join(week, " "), " "))
			b.WriteString("\n")
			week = week[:0]
		}
	}
	return b.String()
}

func (a *App) cmdRoll(ctx context.Context, call registry.Call) (registry.Result, error) {
	a.printf("You rolled a %d.\n", a.roll())
	return registry.Next, nil
}

func (a *App) cmdCowsay(ctx context.Context, call registry.Call) (registry.Result, error) {
	text := strings.Join(call.Args, " ")
	if text == "" {
		text = "Moo!"
	}
	a.print(cowsay(text))
	return registry.Next, nil
}

func cowsay(text string) string {
	n := len([]rune(text)) + 2
	lines := []string{
		" " + strings.Repeat("_", n),
		"< " + text + " >",
		" " + strings.Repeat("-", n),
		`        \   ^__^`,
		`         \  (oo)\_______`,
		`            (__)\       )\/\`,
		`                ||----w |`,
		`                ||     ||`,
	}
	return strings.Join(lines, "\n") + "\n"
}

type joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// cmdJoke never fails: any fetch or decode problem prints a fixed message.
func (a *App) cmdJoke(ctx context.Context, call registry.Call) (registry.Result, error) {
	var j joke
	if err := netx.GetJSON(ctx, a.http, a.config.JokeURL, &j); err != nil || j.Setup == "" {
		a.log.Debug(ctx, "joke fetch failed", "error", err)
		a.println(jokeFailure)
		return registry.Next, nil
	}

	a.printf("Q: %s\n", j.Setup)
	a.sleep(a.config.JokeDelay)
	a.printf("A: %s\n", j.Punchline)
	return registry.Next, nil
}
