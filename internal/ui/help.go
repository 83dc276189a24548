package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// HelpRenderer handles key binding help rendering
type HelpRenderer struct {
	model help.Model
	keys  KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys KeyMap, color bool) *HelpRenderer {
	m := help.New()
	if !color {
		plain := lipgloss.NewStyle()
		m.Styles.ShortKey = plain
		m.Styles.ShortDesc = plain
		m.Styles.ShortSeparator = plain
		m.Styles.FullKey = plain
		m.Styles.FullDesc = plain
		m.Styles.FullSeparator = plain
		m.Styles.Ellipsis = plain
	}
	return &HelpRenderer{model: m, keys: keys}
}

// SetWidth limits the help line to the terminal width
func (r *HelpRenderer) SetWidth(width int) {
	r.model.Width = width
}

// SetFull switches between the one-line and the multi-column help
func (r *HelpRenderer) SetFull(full bool) {
	r.model.ShowAll = full
}

// Render returns the help for the current key map
func (r *HelpRenderer) Render() string {
	return r.model.View(r.keys)
}
