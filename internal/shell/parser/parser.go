// Package parser splits a raw shell line into a command name, its
// arguments and an optional output redirection.
package parser

import "strings"

const (
	appendMarker    = ">>"
	overwriteMarker = ">"
)

// Redirect is an output redirection parsed from the end of a line.
type Redirect struct {
	Target string
	Append bool
}

// Line is one parsed input line. An empty Command means the line was blank.
type Line struct {
	Command  string
	Args     []string
	Redirect *Redirect
}

// Parse splits line at the first ">>" or, when none is present, at the first
// ">". The left side is tokenized on whitespace; the first token, lowercased,
// is the command. The redirect target is trimmed and may be empty.
func Parse(line string) Line {
	var out Line

	left := line
	if i := strings.Index(line, appendMarker); i >= 0 {
		left = line[:i]
		out.Redirect = &Redirect{Target: strings.TrimSpace(line[i+len(appendMarker):]), Append: true}
	} else if i := strings.Index(line, overwriteMarker); i >= 0 {
		left = line[:i]
		out.Redirect = &Redirect{Target: strings.TrimSpace(line[i+len(overwriteMarker):])}
	}

	fields := strings.Fields(left)
	if len(fields) == 0 {
		return out
	}

	out.Command = strings.ToLower(fields[0])
	out.Args = fields[1:]
	return out
}

// Empty reports whether the line carries no command.
func (l Line) Empty() bool {
	return l.Command == ""
}
