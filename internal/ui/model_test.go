package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickmany/internal/domain"
	"pickmany/internal/prompt"
	"pickmany/internal/ui/views"
)

func newSession(t *testing.T, configure ...func(*prompt.MultiSelect[string])) *prompt.Prompt[string] {
	t.Helper()
	ms := prompt.NewMultiSelect("Pick fruit", []string{"Banana", "Apple", "Avocado"})
	for _, c := range configure {
		c(ms)
	}
	p, err := ms.Start()
	require.NoError(t, err)
	return p
}

func plainOptions() Options {
	view := views.DefaultOptions()
	view.Color = false
	return Options{View: view}
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelRendersFrame(t *testing.T) {
	m := NewModel(newSession(t), plainOptions())

	view := m.View()
	assert.Contains(t, view, "? Pick fruit")
	assert.Contains(t, view, "> [ ] Banana")
	assert.Contains(t, view, "[↑↓ to move")
}

func TestModelToggleAndFilter(t *testing.T) {
	m := NewModel(newSession(t), plainOptions())

	cmd := send(m,
		tea.KeyMsg{Type: tea.KeySpace},
		typed("Av"),
	)
	assert.False(t, isQuit(cmd))

	view := m.View()
	assert.Contains(t, view, "? Pick fruit Av")
	assert.Contains(t, view, "> [ ] Avocado")
	assert.NotContains(t, view, "Banana")

	send(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Contains(t, m.View(), "[x] Banana")
}

func TestModelSubmitQuitsAndLeavesAnswer(t *testing.T) {
	m := NewModel(newSession(t), plainOptions())

	send(m, tea.KeyMsg{Type: tea.KeyRight})
	cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, isQuit(cmd))
	assert.Equal(t, prompt.StatusSubmitted, m.Status())
	assert.Equal(t, "? Pick fruit Banana, Apple, Avocado\n", m.View())
}

func TestModelSkipAndCancel(t *testing.T) {
	m := NewModel(newSession(t), plainOptions())
	assert.True(t, isQuit(send(m, tea.KeyMsg{Type: tea.KeyEsc})))
	assert.Equal(t, prompt.StatusSkipped, m.Status())
	assert.Empty(t, m.View())

	m = NewModel(newSession(t), plainOptions())
	assert.True(t, isQuit(send(m, tea.KeyMsg{Type: tea.KeyCtrlC})))
	assert.Equal(t, prompt.StatusCancelled, m.Status())
}

func TestModelCallbackErrorQuits(t *testing.T) {
	boom := errors.New("boom")
	m := NewModel(newSession(t, func(ms *prompt.MultiSelect[string]) {
		ms.Validator = func([]domain.SelectedOption[string]) (domain.Validation, error) {
			return domain.Validation{}, boom
		}
	}), plainOptions())

	assert.True(t, isQuit(send(m, tea.KeyMsg{Type: tea.KeyEnter})))
	assert.ErrorIs(t, m.Err(), boom)
}

func TestModelRejectedSubmitKeepsRunning(t *testing.T) {
	m := NewModel(newSession(t, func(ms *prompt.MultiSelect[string]) {
		ms.Validator = func(s []domain.SelectedOption[string]) (domain.Validation, error) {
			if len(s) == 0 {
				return domain.Invalid("pick something"), nil
			}
			return domain.Valid(), nil
		}
	}), plainOptions())

	assert.False(t, isQuit(send(m, tea.KeyMsg{Type: tea.KeyEnter})))
	assert.True(t, strings.HasPrefix(m.View(), "# pick something\n"))
}

func TestModelKeyHelpAndWidth(t *testing.T) {
	opts := plainOptions()
	opts.KeyHelp = true
	opts.VimMode = true
	m := NewModel(newSession(t, func(ms *prompt.MultiSelect[string]) {
		ms.VimMode = true
		ms.HelpMessage = ""
	}), opts)

	send(m, tea.WindowSizeMsg{Width: 200, Height: 40})
	view := m.View()
	assert.Contains(t, view, "↑/k up")
	assert.Contains(t, view, "space toggle")
	assert.NotContains(t, view, "[↑↓ to move")

	send(m, typed("j"))
	assert.Contains(t, m.View(), "> [ ] Apple", "vim keys move instead of filtering")
}

func TestModelMaxWidthCapsTerminalWidth(t *testing.T) {
	opts := plainOptions()
	opts.MaxWidth = 10
	m := NewModel(newSession(t, func(ms *prompt.MultiSelect[string]) {
		ms.HelpMessage = ""
	}), opts)

	send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	for _, line := range strings.Split(strings.TrimSpace(m.View()), "\n")[1:] {
		assert.LessOrEqual(t, len([]rune(line)), 10, line)
	}
}

func TestSessionInterfaceIsSatisfied(t *testing.T) {
	var _ Session = newSession(t)
	var _ Session = (*prompt.Prompt[int])(nil)
}
