package navigation

import (
	"math"

	"pickmany/internal/domain"
	"pickmany/internal/eventbus"
)

// Service handles all navigation logic
type Service struct {
	state *State
	bus   eventbus.EventBus
}

// NewService creates a new navigation service
func NewService(bus eventbus.EventBus, pageSize int) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		state: &State{PageSize: pageSize},
		bus:   bus,
	}
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetCount returns the length of the view being navigated
func (s *Service) GetCount() int {
	return s.state.Count
}

// GetPageSize returns the configured page size
func (s *Service) GetPageSize() int {
	return s.state.PageSize
}

// SetCount updates the view length after a recompute, clamping the cursor
// into the new view
func (s *Service) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	s.state.Count = count
	s.moveTo(s.clampIndex(s.state.Cursor))
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	switch direction {
	case DirectionUp:
		s.moveUp(1, true)
	case DirectionDown:
		s.moveDown(1, true)
	case DirectionPageUp:
		s.moveUp(s.state.PageSize, false)
	case DirectionPageDown:
		s.moveDown(s.state.PageSize, false)
	case DirectionHome:
		s.moveUp(math.MaxInt, false)
	case DirectionEnd:
		s.moveDown(math.MaxInt, false)
	}
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.moveTo(s.clampIndex(index))
}

// Window returns the page window around the cursor
func (s *Service) Window() Window {
	return Paginate(s.state.PageSize, s.state.Count, s.state.Cursor)
}

// Internal navigation methods
func (s *Service) moveUp(qty int, wrap bool) {
	n := s.state.Count
	if n == 0 {
		s.moveTo(0)
		return
	}
	if wrap {
		s.moveTo(((s.state.Cursor-qty)%n + n) % n)
		return
	}
	target := 0
	if qty < s.state.Cursor {
		target = s.state.Cursor - qty
	}
	s.moveTo(target)
}

func (s *Service) moveDown(qty int, wrap bool) {
	n := s.state.Count
	if n == 0 {
		s.moveTo(0)
		return
	}
	if wrap {
		s.moveTo((s.state.Cursor + qty) % n)
		return
	}
	target := n - 1
	if qty < n-1-s.state.Cursor {
		target = s.state.Cursor + qty
	}
	s.moveTo(target)
}

func (s *Service) moveTo(index int) {
	old := s.state.Cursor
	s.state.Cursor = index
	if old != index {
		s.bus.Publish(domain.CursorMovedEvent{
			OldIndex: old,
			NewIndex: index,
		})
	}
}

// Helper methods
func (s *Service) clampIndex(index int) int {
	if index < 0 || s.state.Count == 0 {
		return 0
	}
	if index >= s.state.Count {
		return s.state.Count - 1
	}
	return index
}

// Paginate computes the visible window of a view of length count.
// The window holds min(pageSize, count) rows, always contains the cursor and
// keeps it centred while there are enough rows on both sides.
func Paginate(pageSize, count, cursor int) Window {
	if pageSize < 1 {
		pageSize = 1
	}
	if count <= 0 {
		return Window{}
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= count {
		cursor = count - 1
	}

	var start, end int
	switch {
	case count <= pageSize:
		start, end = 0, count
	case cursor < pageSize/2:
		start, end = 0, pageSize
	case count-cursor-1 < pageSize/2:
		start, end = count-pageSize, count
	default:
		start = cursor - pageSize/2
		end = start + pageSize
	}

	return Window{
		Start:    start,
		End:      end,
		Relative: cursor - start,
		Total:    count,
	}
}
