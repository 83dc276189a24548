package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the prompt
type Styles struct {
	Prefix    lipgloss.Style
	Message   lipgloss.Style
	Filter    lipgloss.Style
	Answer    lipgloss.Style
	Cursor    lipgloss.Style
	Highlight lipgloss.Style
	Checked   lipgloss.Style
	Pending   lipgloss.Style
	Scroll    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates a new Styles instance. Without color every style renders
// its input unchanged.
func NewStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Prefix:    plain,
			Message:   plain,
			Filter:    plain,
			Answer:    plain,
			Cursor:    plain,
			Highlight: plain,
			Checked:   plain,
			Pending:   plain,
			Scroll:    plain,
			Error:     plain,
			Help:      plain,
		}
	}

	return &Styles{
		Prefix:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Message:   lipgloss.NewStyle().Bold(true),
		Filter:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Answer:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Checked:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:      lipgloss.NewStyle().Faint(true),
	}
}
