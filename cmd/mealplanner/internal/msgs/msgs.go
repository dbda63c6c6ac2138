package msgs

import "github.com/germanamz/mealplanner/pkg/engine"

// PlanReadyMsg is returned by the tea.Cmd that calls the generator.
type PlanReadyMsg struct {
	Plan engine.Plan
	Err  error
}

// SavedMsg reports the outcome of writing the download file.
type SavedMsg struct {
	Path string
	Err  error
}

// CopiedMsg reports the outcome of copying the plan to the clipboard.
type CopiedMsg struct {
	Err error
}

// LoadingTickMsg rotates the loading message while a plan is generated.
type LoadingTickMsg struct {
	Generation uint64
}
