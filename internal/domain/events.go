package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCursorMoved        EventType = "CursorMoved"
	EventFilterChanged      EventType = "FilterChanged"
	EventOptionToggled      EventType = "OptionToggled"
	EventOptionCreated      EventType = "OptionCreated"
	EventAllChecked         EventType = "AllChecked"
	EventSubmissionRejected EventType = "SubmissionRejected"
	EventPromptFinished     EventType = "PromptFinished"
	EventConfigLoaded       EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CursorMovedEvent is emitted when the cursor changes position in the filtered view
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e CursorMovedEvent) Type() EventType { return EventCursorMoved }

// FilterChangedEvent is emitted after the filtered view has been recomputed
type FilterChangedEvent struct {
	Filter  string
	Visible int
	Pending bool // the view ends with a pending-creation slot
}

func (e FilterChangedEvent) Type() EventType { return EventFilterChanged }

// OptionToggledEvent is emitted when a known entry changes its checked state
type OptionToggledEvent struct {
	Index   int
	Checked bool
}

func (e OptionToggledEvent) Type() EventType { return EventOptionToggled }

// OptionCreatedEvent is emitted when a pending entry is materialized
type OptionCreatedEvent struct {
	Index int
	Text  string
}

func (e OptionCreatedEvent) Type() EventType { return EventOptionCreated }

// AllCheckedEvent is emitted by select-all and select-none
type AllCheckedEvent struct {
	Checked bool
	Count   int
}

func (e AllCheckedEvent) Type() EventType { return EventAllChecked }

// SubmissionRejectedEvent is emitted when the validator blocks a submit
type SubmissionRejectedEvent struct {
	Message string
}

func (e SubmissionRejectedEvent) Type() EventType { return EventSubmissionRejected }

// PromptFinishedEvent is emitted once when the prompt loop ends
type PromptFinishedEvent struct {
	Outcome  string // submitted, skipped, cancelled or failed
	Selected int
}

func (e PromptFinishedEvent) Type() EventType { return EventPromptFinished }

// ConfigLoadedEvent is emitted when the CLI configuration has been read
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
