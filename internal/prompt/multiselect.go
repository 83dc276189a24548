package prompt

import (
	"fmt"
	"strings"

	"pickmany/internal/domain"
	"pickmany/internal/eventbus"
	"pickmany/internal/prompt/filter"
	"pickmany/internal/prompt/input"
	"pickmany/internal/prompt/navigation"
	"pickmany/internal/prompt/registry"
	"pickmany/internal/prompt/selection"
)

// Defaults applied by NewMultiSelect
const (
	DefaultPageSize       = 7
	DefaultVimMode        = false
	DefaultStartingCursor = 0
	DefaultKeepFilter     = true
	DefaultHelpMessage    = "↑↓ to move, space to select one, → to all, ← to none, type to filter"
)

// Formatter renders the submitted answer as the one-line summary
type Formatter[T any] func(selected []domain.SelectedOption[T]) string

// DefaultFormatter joins the display text of the selected entries with commas
func DefaultFormatter[T any](selected []domain.SelectedOption[T]) string {
	parts := make([]string, len(selected))
	for i, s := range selected {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// MultiSelect configures a prompt where the user checks any number of
// options. Build one with NewMultiSelect, adjust the fields, then call Start
// or Run. The configuration is not modified by the prompt.
type MultiSelect[T any] struct {
	Message        string
	Options        []T
	Default        []int // indices checked initially
	HelpMessage    string
	PageSize       int
	VimMode        bool
	StartingCursor int
	KeepFilter     bool

	Display   func(T) string
	Filter    filter.Predicate[T]
	Formatter Formatter[T]
	Validator selection.Validator[T]
	Dynamic   *filter.Dynamic[T] // nil disables creating entries

	Bus eventbus.EventBus
}

// NewMultiSelect creates a configuration with the default settings
func NewMultiSelect[T any](message string, options []T) *MultiSelect[T] {
	return &MultiSelect[T]{
		Message:        message,
		Options:        options,
		HelpMessage:    DefaultHelpMessage,
		PageSize:       DefaultPageSize,
		VimMode:        DefaultVimMode,
		StartingCursor: DefaultStartingCursor,
		KeepFilter:     DefaultKeepFilter,
		Display:        func(v T) string { return fmt.Sprint(v) },
		Filter:         filter.Substring[T](),
		Formatter:      DefaultFormatter[T],
		Bus:            eventbus.NullBus{},
	}
}

// Start validates the configuration and returns a prompt ready to receive keys.
// Configuration problems are reported as *domain.ConfigError before anything
// is rendered.
func (ms *MultiSelect[T]) Start() (*Prompt[T], error) {
	if strings.TrimSpace(ms.Message) == "" {
		return nil, domain.NewConfigError("prompt message is required")
	}
	if ms.PageSize < 1 {
		return nil, domain.NewConfigError("page size must be positive, got %d", ms.PageSize)
	}
	if ms.Dynamic != nil && ms.Dynamic.Creator == nil {
		return nil, domain.NewConfigError("dynamic options require a creator")
	}

	display := ms.Display
	if display == nil {
		display = func(v T) string { return fmt.Sprint(v) }
	}
	reg, err := registry.New(ms.Options, ms.Default, display)
	if err != nil {
		return nil, err
	}
	if ms.StartingCursor < 0 || ms.StartingCursor >= len(ms.Options) {
		return nil, domain.NewConfigError("starting cursor %d is out-of-bounds for length %d of options", ms.StartingCursor, len(ms.Options))
	}

	match := ms.Filter
	if match == nil {
		match = filter.Substring[T]()
	}
	formatter := ms.Formatter
	if formatter == nil {
		formatter = DefaultFormatter[T]
	}
	bus := ms.Bus
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	var dynamic *filter.Dynamic[T]
	var creator filter.Creator[T]
	if ms.Dynamic != nil {
		dynamic = &filter.Dynamic[T]{
			Condition: ms.Dynamic.Condition,
			Creator:   ms.Dynamic.Creator,
		}
		if dynamic.Condition == nil {
			dynamic.Condition = filter.AbsentFrom[T]()
		}
		creator = dynamic.Creator
	}

	p := &Prompt[T]{
		message:    ms.Message,
		help:       ms.HelpMessage,
		vimMode:    ms.VimMode,
		keepFilter: ms.KeepFilter,
		registry:   reg,
		editor:     input.NewEditor(),
		nav:        navigation.NewService(bus, ms.PageSize),
		sel:        selection.NewService(reg, bus, creator),
		match:      match,
		dynamic:    dynamic,
		formatter:  formatter,
		validator:  ms.Validator,
		bus:        bus,
	}
	if err := p.refresh(); err != nil {
		return nil, err
	}
	p.nav.MoveToIndex(ms.StartingCursor)
	return p, nil
}

// Run starts the prompt and drives it with the backend until it ends
func (ms *MultiSelect[T]) Run(b Backend) ([]domain.SelectedOption[T], error) {
	p, err := ms.Start()
	if err != nil {
		return nil, err
	}
	return p.Run(b)
}

// RunSkippable is Run with the skip key mapped to ok == false instead of an error
func (ms *MultiSelect[T]) RunSkippable(b Backend) ([]domain.SelectedOption[T], bool, error) {
	p, err := ms.Start()
	if err != nil {
		return nil, false, err
	}
	return p.RunSkippable(b)
}

// Values runs the prompt and returns only the selected values
func (ms *MultiSelect[T]) Values(b Backend) ([]T, error) {
	selected, err := ms.Run(b)
	if err != nil {
		return nil, err
	}
	values := make([]T, len(selected))
	for i, s := range selected {
		values[i] = s.Value
	}
	return values, nil
}
