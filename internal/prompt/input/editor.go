package input

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Editor holds the filter text. Deletions work on grapheme clusters, so a
// flag emoji or an "e" followed by a combining accent is removed as one unit.
type Editor struct {
	content string
}

// NewEditor creates an empty editor
func NewEditor() *Editor {
	return &Editor{}
}

// Content returns the current text
func (e *Editor) Content() string {
	return e.content
}

// Len returns the number of grapheme clusters in the text
func (e *Editor) Len() int {
	return uniseg.GraphemeClusterCount(e.content)
}

// IsEmpty reports whether the text is empty
func (e *Editor) IsEmpty() bool {
	return e.content == ""
}

// Insert appends a character to the text
func (e *Editor) Insert(r rune) {
	e.content += string(r)
}

// InsertString appends text, e.g. from a paste
func (e *Editor) InsertString(s string) {
	e.content += s
}

// Backspace removes the trailing grapheme cluster.
// Returns false when there was nothing to remove.
func (e *Editor) Backspace() bool {
	clusters := e.clusters()
	if len(clusters) == 0 {
		return false
	}
	last := clusters[len(clusters)-1]
	e.content = e.content[:len(e.content)-len(last)]
	return true
}

// DeleteWord removes the trailing word together with any whitespace after it
func (e *Editor) DeleteWord() bool {
	clusters := e.clusters()
	if len(clusters) == 0 {
		return false
	}

	end := len(clusters)
	for end > 0 && isSpace(clusters[end-1]) {
		end--
	}
	for end > 0 && !isSpace(clusters[end-1]) {
		end--
	}
	e.content = strings.Join(clusters[:end], "")
	return true
}

// Clear empties the text. Returns false if it was already empty.
func (e *Editor) Clear() bool {
	if e.content == "" {
		return false
	}
	e.content = ""
	return true
}

func (e *Editor) clusters() []string {
	var out []string
	rest := e.content
	state := -1
	var cluster string
	for rest != "" {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		out = append(out, cluster)
	}
	return out
}

func isSpace(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return unicode.IsSpace(r)
}
