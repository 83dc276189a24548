package prompt

import (
	"fmt"
	"log"

	"pickmany/internal/domain"
	"pickmany/internal/eventbus"
	"pickmany/internal/prompt/filter"
	"pickmany/internal/prompt/input"
	"pickmany/internal/prompt/keys"
	"pickmany/internal/prompt/navigation"
	"pickmany/internal/prompt/registry"
	"pickmany/internal/prompt/selection"
)

// Prompt is a running multi-selection prompt. It owns the option registry,
// the filter input and the cursor, and is driven one key at a time through
// HandleKey. A Prompt is not safe for concurrent use.
type Prompt[T any] struct {
	message    string
	help       string
	vimMode    bool
	keepFilter bool

	registry *registry.Registry[T]
	editor   *input.Editor
	nav      *navigation.Service
	sel      *selection.Service[T]

	match     filter.Predicate[T]
	dynamic   *filter.Dynamic[T]
	formatter Formatter[T]
	validator selection.Validator[T]
	bus       eventbus.EventBus

	view   filter.View
	errMsg string
	status Status

	answer     []domain.SelectedOption[T]
	answerDone bool
}

// Status returns the lifecycle state
func (p *Prompt[T]) Status() Status {
	return p.status
}

// Filter returns the current filter text
func (p *Prompt[T]) Filter() string {
	return p.editor.Content()
}

// Cursor returns the cursor position inside the filtered view
func (p *Prompt[T]) Cursor() int {
	return p.nav.GetCursor()
}

// HandleKey applies one key and returns the resulting status. An error is
// returned only when a caller callback fails, which also ends the prompt.
func (p *Prompt[T]) HandleKey(k keys.Key) (Status, error) {
	if p.status.Done() {
		return p.status, nil
	}

	switch k.Code {
	case keys.Interrupt:
		p.finish(StatusCancelled)
	case keys.Escape:
		p.finish(StatusSkipped)
	case keys.Enter:
		if err := p.submit(); err != nil {
			return p.fail(err)
		}
	default:
		if err := p.onChange(k); err != nil {
			return p.fail(err)
		}
	}
	return p.status, nil
}

func (p *Prompt[T]) submit() error {
	res, err := p.sel.Validate(p.validator)
	if err != nil {
		return err
	}
	if !res.IsValid() {
		p.errMsg = res.Message()
		return nil
	}
	p.errMsg = ""
	p.finish(StatusSubmitted)
	return nil
}

func (p *Prompt[T]) onChange(k keys.Key) error {
	switch {
	case k.Code == keys.Up, p.vimKey(k, 'k'):
		p.nav.Navigate(navigation.DirectionUp)
	case k.Code == keys.Down, k.Code == keys.Tab, p.vimKey(k, 'j'):
		p.nav.Navigate(navigation.DirectionDown)
	case k.Code == keys.PageUp:
		p.nav.Navigate(navigation.DirectionPageUp)
	case k.Code == keys.PageDown:
		p.nav.Navigate(navigation.DirectionPageDown)
	case k.Code == keys.Home:
		p.nav.Navigate(navigation.DirectionHome)
	case k.Code == keys.End:
		p.nav.Navigate(navigation.DirectionEnd)

	case k.Code == keys.Space:
		if _, err := p.sel.Toggle(p.view, p.nav.GetCursor(), p.editor.Content()); err != nil {
			return err
		}
		return p.afterSelection()
	case k.Code == keys.Right:
		p.sel.SelectAll()
		return p.afterSelection()
	case k.Code == keys.Left:
		p.sel.SelectNone()
		return p.afterSelection()

	case k.Code == keys.Backspace:
		if p.editor.Backspace() {
			return p.refresh()
		}
	case k.Code == keys.DeleteWord:
		if p.editor.DeleteWord() {
			return p.refresh()
		}
	case k.Code == keys.ClearLine:
		if p.editor.Clear() {
			return p.refresh()
		}
	case k.Code == keys.Rune:
		p.editor.Insert(k.Rune)
		return p.refresh()
	}
	return nil
}

func (p *Prompt[T]) vimKey(k keys.Key, r rune) bool {
	return p.vimMode && k.Code == keys.Rune && k.Rune == r
}

func (p *Prompt[T]) afterSelection() error {
	if !p.keepFilter {
		p.editor.Clear()
	}
	return p.refresh()
}

// refresh recomputes the filtered view and clamps the cursor to it
func (p *Prompt[T]) refresh() error {
	content := p.editor.Content()
	view, err := filter.Compute(content, p.registry.Entries(), p.match, p.dynamic)
	if err != nil {
		return err
	}
	p.view = view
	p.nav.SetCount(view.Len())
	p.bus.Publish(domain.FilterChangedEvent{
		Filter:  content,
		Visible: view.Len(),
		Pending: view.Pending,
	})
	return nil
}

func (p *Prompt[T]) fail(err error) (Status, error) {
	log.Printf("Prompt failed: %v", err)
	p.finish(StatusFailed)
	return p.status, err
}

func (p *Prompt[T]) finish(status Status) {
	p.status = status
	p.bus.Publish(domain.PromptFinishedEvent{
		Outcome:  status.String(),
		Selected: p.registry.CheckedCount(),
	})
}

// Frame returns a snapshot of what should be drawn for the current state
func (p *Prompt[T]) Frame() Frame {
	window := p.nav.Window()
	frame := Frame{
		Message:  p.message,
		Filter:   p.editor.Content(),
		Error:    p.errMsg,
		Help:     p.help,
		Window:   window,
		Selected: p.registry.CheckedCount(),
		Rows:     make([]Row, 0, window.Len()),
	}

	cursor := p.nav.GetCursor()
	for pos := window.Start; pos < window.End; pos++ {
		index, pending, ok := p.view.At(pos)
		if !ok {
			continue
		}
		row := Row{Highlighted: pos == cursor}
		if pending {
			row.Text = frame.Filter
			row.Pending = true
		} else if entry, ok := p.registry.Get(index); ok {
			row.Text = entry.Text
			row.Checked = entry.Checked
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame
}

// Answer returns the checked entries in stable index order once the prompt
// has been submitted, and nil otherwise. The registry is drained on the
// first call; later calls return the same slice.
func (p *Prompt[T]) Answer() []domain.SelectedOption[T] {
	if p.status != StatusSubmitted {
		return nil
	}
	if !p.answerDone {
		p.answer = p.registry.DrainChecked()
		p.answerDone = true
	}
	return p.answer
}

// Formatted renders the answer with the configured formatter
func (p *Prompt[T]) Formatted() string {
	return p.formatter(p.Answer())
}

// Run drives the prompt with the backend until it ends. Skipping returns
// domain.ErrSkipped and interrupting returns domain.ErrCancelled.
func (p *Prompt[T]) Run(b Backend) ([]domain.SelectedOption[T], error) {
	if err := p.loop(b); err != nil {
		return nil, err
	}

	switch p.status {
	case StatusSkipped:
		return nil, domain.ErrSkipped
	case StatusCancelled:
		return nil, domain.ErrCancelled
	}

	answer := p.Answer()
	if f, ok := b.(Finisher); ok {
		if err := f.Finish(p.message, p.Formatted()); err != nil {
			return nil, fmt.Errorf("failed to render answer: %w", err)
		}
	}
	return answer, nil
}

// RunSkippable is Run with skipping reported as ok == false
func (p *Prompt[T]) RunSkippable(b Backend) ([]domain.SelectedOption[T], bool, error) {
	answer, err := p.Run(b)
	if err == domain.ErrSkipped {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return answer, true, nil
}

func (p *Prompt[T]) loop(b Backend) error {
	for !p.status.Done() {
		if err := b.Render(p.Frame()); err != nil {
			return fmt.Errorf("failed to render prompt: %w", err)
		}
		k, err := b.ReadKey()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		if _, err := p.HandleKey(k); err != nil {
			return err
		}
	}
	return nil
}
