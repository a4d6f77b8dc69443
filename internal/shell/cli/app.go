package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/pyhx/internal/filex"
	"github.com/dmitrijs2005/pyhx/internal/logging"
	"github.com/dmitrijs2005/pyhx/internal/netx"
	"github.com/dmitrijs2005/pyhx/internal/shell/config"
	"github.com/dmitrijs2005/pyhx/internal/shell/models"
	"github.com/dmitrijs2005/pyhx/internal/shell/registry"
	"github.com/dmitrijs2005/pyhx/internal/shell/repositories/hostname"
	"github.com/dmitrijs2005/pyhx/internal/shell/repositories/users"
	"github.com/dmitrijs2005/pyhx/internal/shell/services"
	"github.com/dmitrijs2005/pyhx/internal/store"
	"golang.org/x/term"
)

const (
	Version  = "2.3.0"
	Codename = "Hybrid"
)

// ErrRestart is returned by Run when the user asked for a restart. The caller
// is expected to relaunch the program with the same arguments.
var ErrRestart = errors.New("restart requested")

type App struct {
	config   *config.Config
	auth     services.AuthService
	packages services.PackageService
	hostname hostname.Repository
	store    *store.Client
	runner   store.Runner
	http     *http.Client
	registry *registry.Registry
	session  *models.Session
	baseLog  logging.Logger
	log      logging.Logger

	stdin  io.Reader
	lines  *lineReader
	out    io.Writer
	errOut io.Writer
	ttyFd  int
	styles styles

	restart bool

	now        func() time.Time
	sleep      func(time.Duration)
	roll       func() int
	lookupHost func(ctx context.Context, host string) ([]string, error)
}

// NewApp wires the shell from cfg. stdin, stdout and stderr are the
// interactive streams; password prompts suppress echo only when stdin is a
// terminal.
func NewApp(cfg *config.Config, log logging.Logger, stdin io.Reader, stdout, stderr io.Writer) (*App, error) {
	if err := filex.EnsureDirs(cfg.ConfigDir, cfg.PackagesDir, cfg.InstalledDir); err != nil {
		return nil, fmt.Errorf("prepare shell home: %w", err)
	}

	httpClient := netx.NewClient(cfg.HTTPTimeout)
	runner := store.ExecRunner{}

	a := &App{
		config: cfg,
		auth:   services.NewAuthService(users.NewJSONRepository(cfg.UsersFile, log), log),
		packages: services.NewPackageService(services.PackageConfig{
			PackagesDir:  cfg.PackagesDir,
			InstalledDir: cfg.InstalledDir,
			TempDir:      cfg.TempDir,
			Ext:          cfg.PackageExt,
			EntryPoint:   cfg.EntryPoint,
			Interpreter:  cfg.Interpreter,
		}, log),
		hostname: hostname.NewFileRepository(cfg.HostnameFile, cfg.DefaultHostname, log),
		store:    store.NewClient(httpClient, cfg.PyPIURL, runner),
		runner:   runner,
		http:     httpClient,
		baseLog:  log,
		log:      log,
		stdin:    stdin,
		lines:    newLineReader(stdin),
		out:      stdout,
		errOut:   stderr,
		ttyFd:    -1,
		styles:   newStyles(lipgloss.NewRenderer(stdout)),
		now:      time.Now,
		sleep:    time.Sleep,
		roll:     func() int { return rand.Intn(6) + 1 },

		lookupHost: net.DefaultResolver.LookupHost,
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.ttyFd = int(f.Fd())
	}

	reg, err := registry.New(a.commands()...)
	if err != nil {
		return nil, err
	}
	a.registry = reg

	return a, nil
}

// Run authenticates a user and then serves the dispatch loop until the user
// shuts down, input ends or ctx is cancelled. It returns ErrRestart when the
// loop ended with a restart request.
func (a *App) Run(ctx context.Context) error {
	id, err := a.authenticate(ctx, false)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	a.setSession(models.NewSession(id))
	a.log.Info(ctx, "session started")

	runREPL(ctx, a, a.out)

	a.log.Info(ctx, "session ended", "commands", len(a.session.History))
	if a.restart {
		return ErrRestart
	}
	return nil
}

func (a *App) setSession(s *models.Session) {
	a.session = s
	a.log = a.baseLog.With("session", s.ID, "user", s.Identity.Username)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) print(args ...any) {
	fmt.Fprint(a.out, args...)
}
