package keys

// Code identifies a logical key
type Code int

const (
	Unknown Code = iota
	Rune         // printable character, see Key.Rune
	Up
	Down
	PageUp
	PageDown
	Home
	End
	Left
	Right
	Tab
	Space
	Enter
	Backspace
	DeleteWord
	ClearLine
	Escape
	Interrupt
)

var codeNames = map[Code]string{
	Unknown:    "unknown",
	Rune:       "rune",
	Up:         "up",
	Down:       "down",
	PageUp:     "pgup",
	PageDown:   "pgdown",
	Home:       "home",
	End:        "end",
	Left:       "left",
	Right:      "right",
	Tab:        "tab",
	Space:      "space",
	Enter:      "enter",
	Backspace:  "backspace",
	DeleteWord: "ctrl+w",
	ClearLine:  "ctrl+u",
	Escape:     "esc",
	Interrupt:  "ctrl+c",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Key is one logical key event delivered to the prompt
type Key struct {
	Code Code
	Rune rune // set when Code is Rune
}

// Of returns the key for a code
func Of(code Code) Key {
	return Key{Code: code}
}

// Char returns the key for a printable character. A space maps to the
// Space code so it toggles rather than filters.
func Char(r rune) Key {
	if r == ' ' {
		return Key{Code: Space}
	}
	return Key{Code: Rune, Rune: r}
}

// Runes converts a string into one key per character
func Runes(s string) []Key {
	out := make([]Key, 0, len(s))
	for _, r := range s {
		out = append(out, Char(r))
	}
	return out
}

func (k Key) String() string {
	if k.Code == Rune {
		return string(k.Rune)
	}
	return k.Code.String()
}
