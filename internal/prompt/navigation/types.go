package navigation

// State holds all navigation-related state
type State struct {
	Cursor   int // position inside the filtered view
	Count    int // length of the filtered view
	PageSize int
}

// Direction represents movement directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// Window is the slice of the filtered view shown on screen
type Window struct {
	Start    int // first visible view position
	End      int // one past the last visible view position
	Relative int // cursor position relative to Start
	Total    int // length of the filtered view
}

// Len returns the number of visible rows
func (w Window) Len() int {
	return w.End - w.Start
}

// First reports whether the window starts at the top of the view
func (w Window) First() bool {
	return w.Start == 0
}

// Last reports whether the window reaches the bottom of the view
func (w Window) Last() bool {
	return w.End == w.Total
}
