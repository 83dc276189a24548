package prompt

import (
	"pickmany/internal/prompt/keys"
	"pickmany/internal/prompt/navigation"
)

// Row is one visible line of the option list
type Row struct {
	Text        string
	Checked     bool
	Highlighted bool // the cursor is on this row
	Pending     bool // the row creates a new entry when selected
}

// Frame is everything a backend needs to draw one iteration of the prompt
type Frame struct {
	Message  string
	Filter   string
	Error    string // validation message from the last rejected submit
	Help     string
	Rows     []Row
	Window   navigation.Window
	Selected int // number of checked entries, hidden ones included
}

// Backend is the terminal side of the prompt loop: it draws frames and
// delivers one logical key at a time
type Backend interface {
	Render(frame Frame) error
	ReadKey() (keys.Key, error)
}

// Finisher is implemented by backends that replace the prompt with a
// one-line summary once it has been answered
type Finisher interface {
	Finish(message, answer string) error
}

// Status is the lifecycle state of a prompt
type Status int

const (
	StatusRunning Status = iota
	StatusSubmitted
	StatusSkipped
	StatusCancelled
	StatusFailed // a caller callback returned an error
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSubmitted:
		return "submitted"
	case StatusSkipped:
		return "skipped"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Done reports whether the prompt loop has ended
func (s Status) Done() bool {
	return s != StatusRunning
}
