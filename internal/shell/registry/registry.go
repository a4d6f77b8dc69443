package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/pyhx/internal/shell/models"
	"github.com/dmitrijs2005/pyhx/internal/shell/parser"
)

// Category groups commands in the help listing.
type Category string

const (
	CategorySystem Category = "System"
	CategoryFile   Category = "File"
	CategoryUser   Category = "User"
	CategoryApp    Category = "App"
	CategoryTools  Category = "Tools"
)

// Categories lists every category in display order.
var Categories = []Category{CategorySystem, CategoryFile, CategoryUser, CategoryApp, CategoryTools}

// RequiredRole is the privilege a descriptor demands of the caller.
type RequiredRole int

const (
	RoleAny RequiredRole = iota
	RoleAdmin
)

// Allows reports whether identity may invoke a command requiring r.
func (r RequiredRole) Allows(identity models.Identity) bool {
	return r == RoleAny || identity.IsAdmin()
}

// Call is the input of one handler invocation.
type Call struct {
	Args     []string
	Session  *models.Session
	Redirect *parser.Redirect
}

// Result is what a handler hands back to the dispatch loop. Session may be
// nil, meaning the session passed in stays current.
type Result struct {
	Continue bool
	Restart  bool
	Session  *models.Session
}

// Next is the result of a handler that leaves the loop running.
var Next = Result{Continue: true}

// Handler is the behavior bound to a command name.
type Handler interface {
	Handle(ctx context.Context, call Call) (Result, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, call Call) (Result, error)

func (f HandlerFunc) Handle(ctx context.Context, call Call) (Result, error) {
	return f(ctx, call)
}

// Descriptor describes one command.
type Descriptor struct {
	Name            string
	Category        Category
	Help            string
	Usage           string
	RequiredRole    RequiredRole
	AcceptsRedirect bool
	Handler         Handler
}

// Group is one category of the help listing.
type Group struct {
	Category    Category
	Descriptors []Descriptor
}

// Registry maps command names to descriptors. It is immutable once built.
type Registry struct {
	commands map[string]Descriptor
	names    []string
}

var ErrDuplicateCommand = errors.New("duplicate command")

// New builds a registry from descs.
func New(descs ...Descriptor) (*Registry, error) {
	r := &Registry{commands: make(map[string]Descriptor, len(descs))}

	for _, d := range descs {
		if d.Name == "" {
			return nil, errors.New("registry: command with empty name")
		}
		if d.Handler == nil {
			return nil, fmt.Errorf("registry: command %q has no handler", d.Name)
		}
		if _, exists := r.commands[d.Name]; exists {
			return nil, fmt.Errorf("registry: %w: %q", ErrDuplicateCommand, d.Name)
		}
		r.commands[d.Name] = d
		r.names = append(r.names, d.Name)
	}

	sort.Strings(r.names)
	return r, nil
}

// Lookup retrieves a descriptor by name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.commands[name]
	return d, ok
}

// Names returns all command names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Groups returns the non-empty categories in display order, each with its
// descriptors sorted by name.
func (r *Registry) Groups() []Group {
	var groups []Group
	for _, c := range Categories {
		g := Group{Category: c}
		for _, name := range r.names {
			if d := r.commands[name]; d.Category == c {
				g.Descriptors = append(g.Descriptors, d)
			}
		}
		if len(g.Descriptors) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
