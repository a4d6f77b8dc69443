package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/shell/registry"
	"github.com/muesli/termenv"
)

const datetimeLayout = "Monday, 02 January 2006 - 15:04:05"

func (a *App) cmdHelp(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) > 0 {
		d, ok := a.registry.Lookup(call.Args[0])
		if !ok {
			return registry.Result{}, common.Errorf(common.ErrNotFound, "command '%s' not found", call.Args[0])
		}
		a.printf("%s: %s\n", d.Name, d.Help)
		if d.Usage != "" {
			a.println(a.styles.muted.Render("Usage: " + d.Usage))
		}
		return registry.Next, nil
	}

	a.println("PyHx OS - Friendly Command List. For details, type 'help <command>'.")
	for _, g := range a.registry.Groups() {
		a.println()
		a.println(a.styles.header.Render(fmt.Sprintf("--- %s Commands ---", g.Category)))
		for _, d := range g.Descriptors {
			a.printf("  %-12s %s\n", d.Name, d.Help)
		}
	}
	return registry.Next, nil
}

func (a *App) cmdInfo(ctx context.Context, call registry.Call) (registry.Result, error) {
	id := call.Session.Identity
	location, err := currentDir()
	if err != nil {
		location = "?"
	}

	a.printf("PyHx Version: %s '%s'\n", Version, Codename)
	a.printf("Hostname:     %s\n", a.hostname.Get(ctx))
	a.printf("Uptime:       %s\n", formatUptime(call.Session.Uptime()))
	a.printf("User:         %s (Role: %s)\n", id.Username, id.Role)
	a.printf("Location:     %s\n", location)
	return registry.Next, nil
}

// formatUptime renders d as H:MM:SS, prefixed with a day count once it
// exceeds a day.
func formatUptime(d time.Duration) string {
	s := int64(d / time.Second)
	days, s := s/86400, s%86400
	hms := fmt.Sprintf("%d:%02d:%02d", s/3600, s%3600/60, s%60)
	switch days {
	case 0:
		return hms
	case 1:
		return "1 day, " + hms
	default:
		return fmt.Sprintf("%d days, %s", days, hms)
	}
}

func (a *App) cmdClear(ctx context.Context, call registry.Call) (registry.Result, error) {
	termenv.NewOutput(a.out).ClearScreen()
	return registry.Next, nil
}

func (a *App) cmdHistory(ctx context.Context, call registry.Call) (registry.Result, error) {
	for i, line := range call.Session.History {
		a.printf("%3d  %s\n", i+1, line)
	}
	return registry.Next, nil
}

func (a *App) cmdDatetime(ctx context.Context, call registry.Call) (registry.Result, error) {
	a.println(a.now().Format(datetimeLayout))
	return registry.Next, nil
}

func (a *App) cmdRestart(ctx context.Context, call registry.Call) (registry.Result, error) {
	a.println("Restarting PyHx shell...")
	a.log.Info(ctx, "restart requested")
	return registry.Result{Continue: false, Restart: true}, nil
}

func (a *App) cmdShutdown(ctx context.Context, call registry.Call) (registry.Result, error) {
	return registry.Result{Continue: false}, nil
}

func (a *App) cmdVersion(ctx context.Context, call registry.Call) (registry.Result, error) {
	a.printf("PyHx OS Version: %s '%s'\n", Version, Codename)
	return registry.Next, nil
}

func currentDir() (string, error) {
	return os.Getwd()
}
