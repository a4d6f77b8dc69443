package cli

import "github.com/charmbracelet/lipgloss"

type styles struct {
	banner lipgloss.Style
	header lipgloss.Style
	err    lipgloss.Style
	usage  lipgloss.Style
	muted  lipgloss.Style
}

// newStyles binds the palette to r so that color is dropped when the output
// is not a terminal.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		banner: r.NewStyle().Foreground(lipgloss.Color("62")).Bold(true),
		header: r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		err:    r.NewStyle().Foreground(lipgloss.Color("196")),
		usage:  r.NewStyle().Foreground(lipgloss.Color("214")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
