package selection

import (
	"pickmany/internal/domain"
)

// Validator inspects the checked entries when the user submits
type Validator[T any] func(selected []domain.SelectedOption[T]) (domain.Validation, error)

// ToggleResult describes what a toggle did to the registry
type ToggleResult struct {
	Index   int  // stable index of the affected entry, -1 if nothing happened
	Checked bool // new checked state
	Created bool // the entry was materialized from the pending slot
}
