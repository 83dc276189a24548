package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pickmany/internal/prompt/keys"
)

// KeyMap binds terminal keys to the prompt's logical keys. Vim aliases are
// resolved by the prompt itself, the map only advertises them in the help.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Next       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Toggle     key.Binding
	All        key.Binding
	None       key.Binding
	Backspace  key.Binding
	DeleteWord key.Binding
	ClearLine  key.Binding
	Submit     key.Binding
	Skip       key.Binding
	Interrupt  key.Binding
}

// NewKeyMap creates the default key bindings
func NewKeyMap(vimMode bool) KeyMap {
	upHelp, downHelp := "↑", "↓"
	if vimMode {
		upHelp, downHelp = "↑/k", "↓/j"
	}

	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp(upHelp, "up")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp(downHelp, "down")),
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		All:        key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "all")),
		None:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "none")),
		Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("bksp", "erase")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace"), key.WithHelp("ctrl+w", "erase word")),
		ClearLine:  key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear filter")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Skip:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip")),
		Interrupt:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "cancel")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.All, k.None, k.Submit, k.Skip}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Toggle, k.All, k.None},
		{k.Backspace, k.DeleteWord, k.ClearLine},
		{k.Submit, k.Skip, k.Interrupt},
	}
}

// Translate converts a terminal key message into logical keys. Typed text
// yields one key per rune; pasted spaces are kept as text instead of
// toggling. Unbound keys yield nothing.
func (k KeyMap) Translate(msg tea.KeyMsg) []keys.Key {
	bindings := []struct {
		binding key.Binding
		code    keys.Code
	}{
		{k.Interrupt, keys.Interrupt},
		{k.Skip, keys.Escape},
		{k.Submit, keys.Enter},
		{k.Up, keys.Up},
		{k.Down, keys.Down},
		{k.Next, keys.Tab},
		{k.PageUp, keys.PageUp},
		{k.PageDown, keys.PageDown},
		{k.Home, keys.Home},
		{k.End, keys.End},
		{k.All, keys.Right},
		{k.None, keys.Left},
		{k.Backspace, keys.Backspace},
		{k.DeleteWord, keys.DeleteWord},
		{k.ClearLine, keys.ClearLine},
	}

	if msg.Paste {
		return pasted(msg.Runes)
	}
	if key.Matches(msg, k.Toggle) || msg.Type == tea.KeySpace {
		return []keys.Key{keys.Of(keys.Space)}
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return []keys.Key{keys.Of(b.code)}
		}
	}

	if msg.Type == tea.KeyRunes && !msg.Alt {
		out := make([]keys.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, keys.Char(r))
		}
		return out
	}
	return nil
}

func pasted(runes []rune) []keys.Key {
	out := make([]keys.Key, 0, len(runes))
	for _, r := range runes {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		out = append(out, keys.Key{Code: keys.Rune, Rune: r})
	}
	return out
}
