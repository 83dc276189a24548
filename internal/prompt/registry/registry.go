package registry

import (
	"pickmany/internal/domain"
)

// Registry owns the candidate entries of a prompt and their checked state.
// Entries are stored in stable-index order: entry i always has Index i.
type Registry[T any] struct {
	entries []domain.Option[T]
	display func(T) string
	drained bool
}

// New builds a registry from the caller's options and default-checked indices.
// The options slice is copied; later changes by the caller are not observed.
func New[T any](options []T, defaults []int, display func(T) string) (*Registry[T], error) {
	if len(options) == 0 {
		return nil, domain.NewConfigError("available options can not be empty")
	}
	for _, i := range defaults {
		if i < 0 || i >= len(options) {
			return nil, domain.NewConfigError("index %d is out-of-bounds for length %d of options", i, len(options))
		}
	}

	checked := make(map[int]bool, len(defaults))
	for _, i := range defaults {
		checked[i] = true
	}

	r := &Registry[T]{
		entries: make([]domain.Option[T], len(options)),
		display: display,
	}
	for i, opt := range options {
		r.entries[i] = domain.Option[T]{
			Index:   i,
			Text:    display(opt),
			Value:   opt,
			Checked: checked[i],
		}
	}
	return r, nil
}

// Len returns the number of known entries, which is also the next stable index
func (r *Registry[T]) Len() int {
	return len(r.entries)
}

// Get returns the entry with the given stable index
func (r *Registry[T]) Get(index int) (domain.Option[T], bool) {
	if index < 0 || index >= len(r.entries) {
		return domain.Option[T]{}, false
	}
	return r.entries[index], true
}

// Entries returns a copy of every known entry in stable-index order
func (r *Registry[T]) Entries() []domain.Option[T] {
	out := make([]domain.Option[T], len(r.entries))
	copy(out, r.entries)
	return out
}

// Toggle flips the checked state of an entry and returns the new state
func (r *Registry[T]) Toggle(index int) (bool, bool) {
	if index < 0 || index >= len(r.entries) {
		return false, false
	}
	r.entries[index].Checked = !r.entries[index].Checked
	return r.entries[index].Checked, true
}

// SetAll sets the checked state of every known entry and returns how many changed
func (r *Registry[T]) SetAll(checked bool) int {
	changed := 0
	for i := range r.entries {
		if r.entries[i].Checked != checked {
			r.entries[i].Checked = checked
			changed++
		}
	}
	return changed
}

// Append adds a new entry at the end of the registry and returns its stable index
func (r *Registry[T]) Append(value T, checked bool) int {
	if r.drained {
		return -1
	}
	index := len(r.entries)
	r.entries = append(r.entries, domain.Option[T]{
		Index:   index,
		Text:    r.display(value),
		Value:   value,
		Checked: checked,
	})
	return index
}

// Checked returns the checked entries as selected options, in stable-index order
func (r *Registry[T]) Checked() []domain.SelectedOption[T] {
	var out []domain.SelectedOption[T]
	for _, e := range r.entries {
		if e.Checked {
			out = append(out, domain.NewSelectedOption(e.Index, e.Value, e.Text))
		}
	}
	return out
}

// CheckedCount returns the number of checked entries
func (r *Registry[T]) CheckedCount() int {
	n := 0
	for _, e := range r.entries {
		if e.Checked {
			n++
		}
	}
	return n
}

// DrainChecked moves the checked values out of the registry.
// It ends the registry's lifetime: afterwards the registry is empty and
// further calls return nil.
func (r *Registry[T]) DrainChecked() []domain.SelectedOption[T] {
	if r.drained {
		return nil
	}
	out := r.Checked()
	if out == nil {
		out = []domain.SelectedOption[T]{}
	}
	r.entries = nil
	r.drained = true
	return out
}

// Drained reports whether DrainChecked has been called
func (r *Registry[T]) Drained() bool {
	return r.drained
}
