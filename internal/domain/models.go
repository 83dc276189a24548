package domain

// Option is a single entry of the option registry
type Option[T any] struct {
	Index   int    // stable index, assigned once and never reused
	Text    string // display text
	Value   T
	Checked bool
}

// SelectedOption is one element of a submitted answer
type SelectedOption[T any] struct {
	Index int
	Value T
	text  string
}

// NewSelectedOption creates a selected option carrying the display text of its entry
func NewSelectedOption[T any](index int, value T, text string) SelectedOption[T] {
	return SelectedOption[T]{Index: index, Value: value, text: text}
}

// String returns the display text of the selected value
func (o SelectedOption[T]) String() string {
	return o.text
}

// Validation is the outcome of a submit-time validator
type Validation struct {
	invalid bool
	message string
}

// Valid accepts the current selection
func Valid() Validation {
	return Validation{}
}

// Invalid rejects the current selection with a message shown to the user
func Invalid(message string) Validation {
	return Validation{invalid: true, message: message}
}

// IsValid reports whether the selection was accepted
func (v Validation) IsValid() bool {
	return !v.invalid
}

// Message returns the rejection message, empty for valid results
func (v Validation) Message() string {
	return v.message
}
