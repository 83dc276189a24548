package selection

import (
	"pickmany/internal/domain"
	"pickmany/internal/eventbus"
	"pickmany/internal/prompt/filter"
	"pickmany/internal/prompt/registry"
)

// Service handles selection logic on top of the option registry
type Service[T any] struct {
	registry *registry.Registry[T]
	bus      eventbus.EventBus
	creator  filter.Creator[T]
}

// NewService creates a new selection service. creator may be nil when
// dynamic options are disabled.
func NewService[T any](reg *registry.Registry[T], bus eventbus.EventBus, creator filter.Creator[T]) *Service[T] {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service[T]{
		registry: reg,
		bus:      bus,
		creator:  creator,
	}
}

// Toggle flips the entry under the cursor. The view position is translated
// to a stable index before the registry is touched; the pending slot is
// materialized through the creator and appended already checked.
func (s *Service[T]) Toggle(view filter.View, cursor int, input string) (ToggleResult, error) {
	index, pending, ok := view.At(cursor)
	if !ok {
		return ToggleResult{Index: -1}, nil
	}

	if pending {
		return s.create(input)
	}

	checked, ok := s.registry.Toggle(index)
	if !ok {
		return ToggleResult{Index: -1}, nil
	}
	s.bus.Publish(domain.OptionToggledEvent{Index: index, Checked: checked})
	return ToggleResult{Index: index, Checked: checked}, nil
}

func (s *Service[T]) create(input string) (ToggleResult, error) {
	if s.creator == nil {
		return ToggleResult{Index: -1}, nil
	}
	value, err := s.creator(input)
	if err != nil {
		return ToggleResult{Index: -1}, domain.WrapCallback("creator", err)
	}

	index := s.registry.Append(value, true)
	entry, _ := s.registry.Get(index)
	s.bus.Publish(domain.OptionCreatedEvent{Index: index, Text: entry.Text})
	return ToggleResult{Index: index, Checked: true, Created: true}, nil
}

// SelectAll checks every known entry, including ones hidden by the filter
func (s *Service[T]) SelectAll() {
	s.setAll(true)
}

// SelectNone unchecks every known entry, including ones hidden by the filter
func (s *Service[T]) SelectNone() {
	s.setAll(false)
}

func (s *Service[T]) setAll(checked bool) {
	changed := s.registry.SetAll(checked)
	s.bus.Publish(domain.AllCheckedEvent{Checked: checked, Count: changed})
}

// IsChecked reports whether the entry with the given stable index is checked
func (s *Service[T]) IsChecked(index int) bool {
	e, ok := s.registry.Get(index)
	return ok && e.Checked
}

// GetCount returns the number of checked entries
func (s *Service[T]) GetCount() int {
	return s.registry.CheckedCount()
}

// Validate runs the validator against the current checked entries.
// A nil validator accepts everything.
func (s *Service[T]) Validate(validate Validator[T]) (domain.Validation, error) {
	if validate == nil {
		return domain.Valid(), nil
	}
	selected := s.registry.Checked()
	if selected == nil {
		selected = []domain.SelectedOption[T]{}
	}
	res, err := validate(selected)
	if err != nil {
		return domain.Validation{}, domain.WrapCallback("validator", err)
	}
	if !res.IsValid() {
		s.bus.Publish(domain.SubmissionRejectedEvent{Message: res.Message()})
	}
	return res, nil
}
