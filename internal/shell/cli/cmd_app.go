package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/shell/registry"
	"github.com/dmitrijs2005/pyhx/internal/shell/services"
	"github.com/dmitrijs2005/pyhx/internal/store"
)

const (
	convertUsage = "convert -pyhx <folder_name>"
	installUsage = "install <package.pyhx>"
	runUsage     = "run <package.pyhx>"
)

// cmdConvert packs a folder and delivers the archive to the staging area.
func (a *App) cmdConvert(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) != 2 || call.Args[0] != "-pyhx" {
		return registry.Result{}, common.Usage(convertUsage)
	}
	folder := call.Args[1]

	a.printf("Converting '%s'...\n", folder)
	archive, err := a.packages.Pack(ctx, folder)
	if err != nil {
		return registry.Result{}, err
	}

	staged, err := a.packages.Stage(ctx, archive)
	if err != nil {
		return registry.Result{}, err
	}

	a.printf("Package created: %s\n", staged)
	return registry.Next, nil
}

func (a *App) cmdInstall(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) == 0 {
		return registry.Result{}, common.Usage(installUsage)
	}
	name := call.Args[0]

	if err := a.packages.Install(ctx, name); err != nil {
		return registry.Result{}, err
	}
	a.printf("Successfully installed '%s'.\n", name)
	return registry.Next, nil
}

func (a *App) cmdRun(ctx context.Context, call registry.Call) (registry.Result, error) {
	if len(call.Args) == 0 {
		return registry.Result{}, common.Usage(runUsage)
	}
	name := call.Args[0]

	err := a.packages.Run(ctx, name, services.Stdio{
		In:      a.stdin,
		Out:     a.out,
		Err:     a.errOut,
		Started: func() { a.printf("\n--- Running %s ---\n", name) },
	})
	if err != nil {
		return registry.Result{}, err
	}

	a.printf("--- %s finished ---\n\n", name)
	return registry.Next, nil
}

func (a *App) cmdPackages(ctx context.Context, call registry.Call) (registry.Result, error) {
	staged, installed, err := a.packages.List(ctx)
	if err != nil {
		return registry.Result{}, err
	}

	list := func(title string, names []string) {
		a.println(a.styles.header.Render(title))
		if len(names) == 0 {
			a.println(a.styles.muted.Render("  (none)"))
		}
		for _, n := range names {
			a.println("  " + n)
		}
	}
	list("Staged:", staged)
	list("Installed:", installed)
	return registry.Next, nil
}

// cmdStore is an interactive lookup loop over PyPI and apt. It ends on
// "exit", end of input or interruption.
func (a *App) cmdStore(ctx context.Context, call registry.Call) (registry.Result, error) {
	a.println(a.styles.banner.Render("--- Welcome to the PyHx App Store ---"))

	for {
		name, err := a.ask(ctx, "\nEnter a specific package name to look up (or 'exit' to quit): ")
		if err != nil {
			break
		}
		if name == "" {
			continue
		}
		if strings.EqualFold(name, "exit") {
			break
		}
		if err := store.ValidateName(name); err != nil {
			a.report(common.Errorf(common.ErrValidation, "invalid package name '%s'", name))
			continue
		}

		var found []store.Package
		if p := a.store.LookupPIP(ctx, name); p != nil {
			found = append(found, *p)
		}
		if p := a.store.LookupAPT(ctx, name); p != nil {
			found = append(found, *p)
		}

		if len(found) == 0 {
			a.printf("No package named '%s' found in PIP or APT.\n", name)
			continue
		}

		a.println("\n--- Found Packages ---")
		for i, p := range found {
			a.printf("%d. [%s] %s (v%s)\n     %s\n", i+1, p.Source, p.Name, p.Version, p.Description)
		}
		a.println("----------------------")

		if err := a.storeChoose(ctx, found); err != nil {
			break
		}
	}

	a.println("\nExiting the App Store. Goodbye!")
	return registry.Next, nil
}

// storeChoose asks for a result to install until it gets a valid number or
// 's'. Only read errors are returned.
func (a *App) storeChoose(ctx context.Context, found []store.Package) error {
	for {
		choice, err := a.ask(ctx, "Enter the number to install, or 's' to search for another package: ")
		if err != nil {
			return err
		}
		if strings.EqualFold(choice, "s") {
			return nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil {
			a.println("Invalid input.")
			continue
		}
		if n < 1 || n > len(found) {
			a.println("Invalid number.")
			continue
		}

		a.storeInstall(ctx, found[n-1])
		return nil
	}
}

func (a *App) storeInstall(ctx context.Context, pkg store.Package) {
	a.printf("\nInstalling '%s' from %s...\n", pkg.Name, pkg.Source)
	if pkg.Source == store.SourceAPT {
		a.println("APT packages require your main system password (sudo) to install.")
	}

	err := a.store.Install(ctx, pkg, a.out)
	switch {
	case err == nil:
		a.log.Info(ctx, "store package installed", "package", pkg.Name, "source", pkg.Source)
		a.printf("\nSuccessfully installed '%s'.\n", pkg.Name)
	case errors.Is(err, store.ErrInvalidName):
		a.report(common.Errorf(common.ErrValidation, "invalid package name '%s'", pkg.Name))
	default:
		a.log.Warn(ctx, "store install failed", "package", pkg.Name, "error", err)
		a.printf("\nError: Installation of '%s' failed.\n", pkg.Name)
	}
}
