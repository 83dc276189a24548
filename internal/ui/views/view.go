package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pickmany/internal/prompt"
)

// Options controls the glyphs used for each row
type Options struct {
	Cursor    string
	Checked   string
	Unchecked string
	Pending   string
	Color     bool
}

// DefaultOptions returns the glyphs used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Cursor:    ">",
		Checked:   "[x]",
		Unchecked: "[ ]",
		Pending:   "[+]",
		Color:     true,
	}
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width   int // 0 disables truncation
	Frame   prompt.Frame
	KeyHelp string // rendered key bindings, shown under the help message
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	opts   Options
}

// NewRenderer creates a new renderer
func NewRenderer(opts Options) *Renderer {
	defaults := DefaultOptions()
	if opts.Cursor == "" {
		opts.Cursor = defaults.Cursor
	}
	if opts.Checked == "" {
		opts.Checked = defaults.Checked
	}
	if opts.Unchecked == "" {
		opts.Unchecked = defaults.Unchecked
	}
	if opts.Pending == "" {
		opts.Pending = defaults.Pending
	}
	return &Renderer{
		styles: NewStyles(opts.Color),
		opts:   opts,
	}
}

// Render produces the complete prompt: an optional error line, the prompt
// line with the filter text, the visible rows and the help line
func (r *Renderer) Render(state ViewState) string {
	var b strings.Builder
	f := state.Frame

	if f.Error != "" {
		b.WriteString(r.styles.Error.Render("# " + r.truncate(f.Error, state.Width, 2)))
		b.WriteString("\n")
	}

	b.WriteString(r.promptLine(f.Message, f.Filter, r.styles.Filter))
	b.WriteString("\n")

	for i, row := range f.Rows {
		b.WriteString(r.renderRow(row, r.marker(i, row, f), state.Width))
		b.WriteString("\n")
	}

	if f.Help != "" {
		b.WriteString(r.styles.Help.Render("[" + r.truncate(f.Help, state.Width, 2) + "]"))
		b.WriteString("\n")
	}
	if state.KeyHelp != "" {
		b.WriteString(state.KeyHelp)
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// RenderAnswer produces the single line left behind after a submit
func (r *Renderer) RenderAnswer(message, answer string) string {
	return r.promptLine(message, answer, r.styles.Answer)
}

func (r *Renderer) promptLine(message, text string, textStyle lipgloss.Style) string {
	line := r.styles.Prefix.Render("?") + " " + r.styles.Message.Render(message)
	if text != "" {
		line += " " + textStyle.Render(text)
	}
	return line
}

// marker picks the glyph left of the checkbox: the cursor, a scroll hint on
// the edge rows when more entries exist beyond the window, or blank
func (r *Renderer) marker(i int, row prompt.Row, f prompt.Frame) string {
	width := runewidth.StringWidth(r.opts.Cursor)
	switch {
	case row.Highlighted:
		return r.styles.Cursor.Render(r.opts.Cursor)
	case i == 0 && !f.Window.First():
		return r.styles.Scroll.Render(runewidth.FillRight("↑", width))
	case i == len(f.Rows)-1 && !f.Window.Last():
		return r.styles.Scroll.Render(runewidth.FillRight("↓", width))
	default:
		return strings.Repeat(" ", width)
	}
}

func (r *Renderer) renderRow(row prompt.Row, marker string, width int) string {
	box := r.opts.Unchecked
	boxStyle := lipgloss.NewStyle()
	switch {
	case row.Pending:
		box = r.opts.Pending
		boxStyle = r.styles.Pending
	case row.Checked:
		box = r.opts.Checked
		boxStyle = r.styles.Checked
	}

	used := lipgloss.Width(marker) + 1 + runewidth.StringWidth(box) + 1
	text := r.truncate(row.Text, width, used)
	switch {
	case row.Pending:
		text = r.styles.Pending.Render(text)
	case row.Highlighted:
		text = r.styles.Highlight.Render(text)
	}

	return marker + " " + boxStyle.Render(box) + " " + text
}

// truncate shortens s so that it fits in width columns after reserved ones
func (r *Renderer) truncate(s string, width, reserved int) string {
	if width <= 0 {
		return s
	}
	avail := width - reserved
	if avail < 1 {
		avail = 1
	}
	return runewidth.Truncate(s, avail, "…")
}
