package services

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/pyhx/internal/archive"
	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/filex"
	"github.com/dmitrijs2005/pyhx/internal/logging"
)

// PackageConfig locates the package directories and describes how an
// installed package is started.
type PackageConfig struct {
	PackagesDir  string
	InstalledDir string
	// TempDir is the parent of run directories; empty means os.TempDir().
	TempDir     string
	Ext         string
	EntryPoint  string
	Interpreter string
}

// Stdio is attached to a running package.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	// Started, if set, is called once the package is unpacked and about to
	// be executed.
	Started func()
}

// RunDirPattern names the per-run temporary directories.
const RunDirPattern = "pyhx_run_*"

// PackageService manages the package lifecycle:
// source directory -> staged archive -> installed archive -> running instance.
type PackageService interface {
	Pack(ctx context.Context, sourceDir string) (string, error)
	Stage(ctx context.Context, archivePath string) (string, error)
	Install(ctx context.Context, name string) error
	Run(ctx context.Context, name string, stdio Stdio) error
	List(ctx context.Context) (staged, installed []string, err error)
}

type packageService struct {
	cfg PackageConfig
	log logging.Logger
}

func NewPackageService(cfg PackageConfig, log logging.Logger) PackageService {
	return &packageService{cfg: cfg, log: log}
}

// Pack archives sourceDir into <base>.<ext> in the working directory.
func (p *packageService) Pack(ctx context.Context, sourceDir string) (string, error) {
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", common.Errorf(common.ErrValidation, "invalid source %q: %w", sourceDir, err)
	}

	if _, isDir := filex.Exists(abs); !isDir {
		return "", common.Errorf(common.ErrValidation, "source '%s' is not a valid directory", sourceDir)
	}
	if !isRegular(filepath.Join(abs, p.cfg.EntryPoint)) {
		return "", common.Errorf(common.ErrValidation, "source folder '%s' must contain a '%s' file", sourceDir, p.cfg.EntryPoint)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", common.Errorf(common.ErrIOFailure, "cannot determine working directory: %w", err)
	}
	out := filepath.Join(cwd, filepath.Base(abs)+p.cfg.Ext)

	if err := archive.Pack(abs, out); err != nil {
		return "", common.Errorf(common.ErrIOFailure, "failed to create archive: %w", err)
	}

	p.log.Info(ctx, "package created", "source", abs, "archive", out)
	return out, nil
}

// Stage moves an archive into the staging directory.
func (p *packageService) Stage(ctx context.Context, archivePath string) (string, error) {
	if !isRegular(archivePath) {
		return "", common.Errorf(common.ErrNotFound, "archive '%s' not found", archivePath)
	}
	if err := filex.EnsureDirs(p.cfg.PackagesDir); err != nil {
		return "", common.Errorf(common.ErrIOFailure, "cannot prepare staging area: %w", err)
	}

	dst := filepath.Join(p.cfg.PackagesDir, filepath.Base(archivePath))
	if err := filex.MoveFile(archivePath, dst); err != nil {
		return "", common.Errorf(common.ErrIOFailure, "failed to move archive to staging area: %w", err)
	}

	p.log.Info(ctx, "package staged", "archive", dst)
	return dst, nil
}

// Install moves name from the staging directory to the installed directory.
func (p *packageService) Install(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	src := filepath.Join(p.cfg.PackagesDir, name)
	if !isRegular(src) {
		return common.Errorf(common.ErrNotFound, "package '%s' not found in staging area ('%s')", name, p.cfg.PackagesDir)
	}
	if err := filex.EnsureDirs(p.cfg.InstalledDir); err != nil {
		return common.Errorf(common.ErrIOFailure, "cannot prepare installed directory: %w", err)
	}

	if err := filex.MoveFile(src, filepath.Join(p.cfg.InstalledDir, name)); err != nil {
		return common.Errorf(common.ErrIOFailure, "error during installation: %w", err)
	}

	p.log.Info(ctx, "package installed", "package", name)
	return nil
}

// Run unpacks an installed package into a fresh temporary directory and runs
// its entry point there. The directory is removed on every path. A non-zero
// exit of the child is logged, not returned.
func (p *packageService) Run(ctx context.Context, name string, stdio Stdio) (err error) {
	if err := validateName(name); err != nil {
		return err
	}

	pkgPath := filepath.Join(p.cfg.InstalledDir, name)
	if !isRegular(pkgPath) {
		return common.Errorf(common.ErrNotInstalled, "package '%s' is not installed", name)
	}

	tmp, err := os.MkdirTemp(p.cfg.TempDir, RunDirPattern)
	if err != nil {
		return common.Errorf(common.ErrRuntimeFailure, "cannot create run directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmp); rmErr != nil {
			p.log.Error(ctx, "failed to remove run directory", "dir", tmp, "error", rmErr)
			if err == nil {
				err = common.Errorf(common.ErrRuntimeFailure, "cannot remove run directory: %w", rmErr)
			}
		}
	}()

	if err := archive.Unpack(pkgPath, tmp); err != nil {
		return common.Errorf(common.ErrRuntimeFailure, "cannot unpack '%s': %w", name, err)
	}

	if !isRegular(filepath.Join(tmp, p.cfg.EntryPoint)) {
		return common.Errorf(common.ErrMissingEntryPoint, "'%s' not found in package '%s'", p.cfg.EntryPoint, name)
	}

	cmd := exec.CommandContext(ctx, p.cfg.Interpreter, p.cfg.EntryPoint)
	cmd.Dir = tmp
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err

	p.log.Info(ctx, "package started", "package", name, "dir", tmp)
	if stdio.Started != nil {
		stdio.Started()
	}

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return common.Errorf(common.ErrRuntimeFailure, "package '%s' interrupted: %w", name, ctx.Err())
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		p.log.Info(ctx, "package finished", "package", name)
	case errors.As(runErr, &exitErr):
		p.log.Warn(ctx, "package exited with error", "package", name, "code", exitErr.ExitCode())
	default:
		return common.Errorf(common.ErrRuntimeFailure, "cannot start package '%s': %w", name, runErr)
	}
	return nil
}

// List returns the package archives in the staging and installed directories,
// sorted by name.
func (p *packageService) List(ctx context.Context) ([]string, []string, error) {
	staged, err := p.listDir(p.cfg.PackagesDir)
	if err != nil {
		return nil, nil, err
	}
	installed, err := p.listDir(p.cfg.InstalledDir)
	if err != nil {
		return nil, nil, err
	}
	return staged, installed, nil
}

func (p *packageService) listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, common.Errorf(common.ErrIOFailure, "cannot list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), p.cfg.Ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// validateName accepts bare file names only.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return common.Errorf(common.ErrValidation, "invalid package name '%s'", name)
	}
	return nil
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
