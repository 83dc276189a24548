package filter

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"pickmany/internal/domain"
)

// Predicate decides whether an entry is visible under the current filter text
type Predicate[T any] func(input string, value T, text string, index int) bool

// Condition decides whether the current filter text may become a new entry
type Condition[T any] func(input string, entries []domain.Option[T]) (bool, error)

// Creator turns the filter text into a value when the pending entry is selected
type Creator[T any] func(input string) (T, error)

// Dynamic enables entries to be created from the filter text. A nil *Dynamic
// disables the feature.
type Dynamic[T any] struct {
	Condition Condition[T]
	Creator   Creator[T]
}

// Substring matches when the display text contains the filter text, ignoring case
func Substring[T any]() Predicate[T] {
	return func(input string, _ T, text string, _ int) bool {
		return strings.Contains(strings.ToLower(text), strings.ToLower(input))
	}
}

// Fuzzy matches when the filter text is a subsequence of the display text
func Fuzzy[T any]() Predicate[T] {
	return func(input string, _ T, text string, _ int) bool {
		return len(fuzzy.Find(input, []string{text})) > 0
	}
}

// AbsentFrom is a dynamic-option condition that allows creation whenever no
// known entry has exactly the filter text
func AbsentFrom[T any]() Condition[T] {
	return func(input string, entries []domain.Option[T]) (bool, error) {
		for _, e := range entries {
			if e.Text == input {
				return false, nil
			}
		}
		return true, nil
	}
}

// View is the ordered list of stable indices visible under a filter.
// When Pending is set the last index is the pending-creation sentinel, equal
// to the registry length at the time the view was computed.
type View struct {
	Indices []int
	Pending bool
}

// Len returns the number of slots in the view, sentinel included
func (v View) Len() int {
	return len(v.Indices)
}

// At translates a view position into a stable index.
// pending is true when the slot is the pending-creation sentinel.
func (v View) At(pos int) (index int, pending bool, ok bool) {
	if pos < 0 || pos >= len(v.Indices) {
		return 0, false, false
	}
	return v.Indices[pos], v.Pending && pos == len(v.Indices)-1, true
}

// Compute derives the filtered view from the filter text and the registry
// entries. It has no side effects: equal inputs always produce equal views.
func Compute[T any](input string, entries []domain.Option[T], match Predicate[T], dynamic *Dynamic[T]) (View, error) {
	view := View{Indices: make([]int, 0, len(entries)+1)}

	exact := false
	for _, e := range entries {
		if input != "" && !match(input, e.Value, e.Text, e.Index) {
			continue
		}
		view.Indices = append(view.Indices, e.Index)
		if e.Text == input {
			exact = true
		}
	}

	if dynamic == nil || dynamic.Condition == nil || input == "" || exact {
		return view, nil
	}

	ok, err := dynamic.Condition(input, entries)
	if err != nil {
		return View{}, domain.WrapCallback("condition", err)
	}
	if ok {
		view.Indices = append(view.Indices, len(entries))
		view.Pending = true
	}
	return view, nil
}
