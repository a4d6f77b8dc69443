// Package store looks packages up in the Python Package Index and, on Linux,
// in the apt cache, and installs the chosen one with pip or apt.
package store

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/dmitrijs2005/pyhx/internal/netx"
)

// Source names the package manager a package comes from.
type Source string

const (
	SourcePIP Source = "PIP"
	SourceAPT Source = "APT"
)

var ErrInvalidName = errors.New("invalid package name")

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._+-]*$`)

// Package is one lookup hit.
type Package struct {
	Name        string
	Version     string
	Description string
	Source      Source
}

// Runner executes external package-manager commands.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	Run(ctx context.Context, out io.Writer, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (ExecRunner) Run(ctx context.Context, out io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}

type Client struct {
	http    *http.Client
	pypiURL string
	runner  Runner
	goos    string
}

func NewClient(httpClient *http.Client, pypiURL string, runner Runner) *Client {
	return &Client{
		http:    httpClient,
		pypiURL: strings.TrimRight(pypiURL, "/"),
		runner:  runner,
		goos:    runtime.GOOS,
	}
}

// ValidateName rejects names that could be mistaken for flags or paths.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// AptAvailable reports whether apt lookups are attempted on this system.
func (c *Client) AptAvailable() bool {
	return c.goos == "linux"
}

type pypiResponse struct {
	Info struct {
		Name    string `json:"name"`
		Summary string `json:"summary"`
		Version string `json:"version"`
	} `json:"info"`
}

// LookupPIP returns the PyPI entry for name, or nil if there is none or the
// index is unreachable.
func (c *Client) LookupPIP(ctx context.Context, name string) *Package {
	var resp pypiResponse
	u := fmt.Sprintf("%s/%s/json", c.pypiURL, url.PathEscape(name))
	if err := netx.GetJSON(ctx, c.http, u, &resp); err != nil {
		return nil
	}
	if resp.Info.Name == "" {
		return nil
	}
	return &Package{
		Name:        resp.Info.Name,
		Version:     resp.Info.Version,
		Description: resp.Info.Summary,
		Source:      SourcePIP,
	}
}

// LookupAPT returns the apt-cache entry for name, or nil if apt is not
// available or knows no such package.
func (c *Client) LookupAPT(ctx context.Context, name string) *Package {
	if !c.AptAvailable() {
		return nil
	}
	out, err := c.runner.Output(ctx, "apt-cache", "show", name)
	if err != nil || len(bytes.TrimSpace(out)) == 0 {
		return nil
	}

	version, description := ParseAptShow(out)
	return &Package{
		Name:        name,
		Version:     version,
		Description: description,
		Source:      SourceAPT,
	}
}

// ParseAptShow extracts Version and Description-en from apt-cache output.
// The last occurrence of each field wins.
func ParseAptShow(out []byte) (version, description string) {
	version, description = "N/A", "No description."

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if v, ok := strings.CutPrefix(line, "Version:"); ok {
			version = strings.TrimSpace(v)
		}
		if v, ok := strings.CutPrefix(line, "Description-en:"); ok {
			description = strings.TrimSpace(v)
		}
	}
	return version, description
}

// InstallCommand returns the argv that installs pkg.
func InstallCommand(pkg Package) ([]string, error) {
	if err := ValidateName(pkg.Name); err != nil {
		return nil, err
	}
	switch pkg.Source {
	case SourceAPT:
		return []string{"sudo", "apt", "install", "-y", pkg.Name}, nil
	case SourcePIP:
		return []string{"pip", "install", pkg.Name}, nil
	default:
		return nil, fmt.Errorf("unknown package source %q", pkg.Source)
	}
}

// Install runs the package manager for pkg, streaming its output to out.
func (c *Client) Install(ctx context.Context, pkg Package, out io.Writer) error {
	argv, err := InstallCommand(pkg)
	if err != nil {
		return err
	}
	return c.runner.Run(ctx, out, argv[0], argv[1:]...)
}
