package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"pickmany/internal/prompt"
	"pickmany/internal/prompt/keys"
	"pickmany/internal/ui/views"
)

// Session is the prompt as seen by the terminal front end.
// *prompt.Prompt[T] satisfies it for every T.
type Session interface {
	HandleKey(k keys.Key) (prompt.Status, error)
	Frame() prompt.Frame
	Status() prompt.Status
	Formatted() string
}

// Options configures the terminal front end
type Options struct {
	VimMode  bool // advertise j/k in the key help
	KeyHelp  bool // show bubbles key help under the prompt
	MaxWidth int  // 0 follows the terminal width
	View     views.Options
}

// Model is the bubbletea model driving a prompt session
type Model struct {
	session  Session
	keys     KeyMap
	help     *HelpRenderer
	renderer *views.Renderer
	opts     Options

	width int
	err   error
}

// NewModel creates a new model for the session
func NewModel(session Session, opts Options) *Model {
	km := NewKeyMap(opts.VimMode)
	return &Model{
		session:  session,
		keys:     km,
		help:     NewHelpRenderer(km, opts.View.Color),
		renderer: views.NewRenderer(opts.View),
		opts:     opts,
		width:    opts.MaxWidth,
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.opts.MaxWidth > 0 && m.opts.MaxWidth < m.width {
			m.width = m.opts.MaxWidth
		}
		m.help.SetWidth(m.width)

	case tea.KeyMsg:
		for _, k := range m.keys.Translate(msg) {
			status, err := m.session.HandleKey(k)
			if err != nil {
				log.Printf("Prompt stopped on %s: %v", k, err)
				m.err = err
				return m, tea.Quit
			}
			if status.Done() {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View renders the prompt, or the answer line once it has been submitted
func (m *Model) View() string {
	status := m.session.Status()
	if status == prompt.StatusSubmitted {
		frame := m.session.Frame()
		return m.renderer.RenderAnswer(frame.Message, m.session.Formatted()) + "\n"
	}
	if status.Done() {
		return ""
	}

	state := views.ViewState{
		Width: m.width,
		Frame: m.session.Frame(),
	}
	if m.opts.KeyHelp {
		state.KeyHelp = m.help.Render()
	}
	return m.renderer.Render(state) + "\n"
}

// Err returns the callback error that ended the session, if any
func (m *Model) Err() error {
	return m.err
}

// Status returns the session status
func (m *Model) Status() prompt.Status {
	return m.session.Status()
}

// Run drives the session in a bubbletea program until the prompt ends
func Run(session Session, opts Options, programOpts ...tea.ProgramOption) (*Model, error) {
	m := NewModel(session, opts)
	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		return m, err
	}
	return m, m.err
}
