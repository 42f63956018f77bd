package models

import "time"

// DateRange selects whole calendar days. A nil To means the single day of From.
type DateRange struct {
	From time.Time  `json:"from"`
	To   *time.Time `json:"to,omitempty"`
}

// FilterState is the set of active dashboard filters. An empty string (or a nil
// DateRange) places no constraint on that dimension. Values are never mutated in
// place; the With* helpers return an updated copy.
type FilterState struct {
	Instance  string          `json:"instance,omitempty"`
	Status    ExecutionStatus `json:"status,omitempty"`
	Workflow  string          `json:"workflow,omitempty"`
	Mode      string          `json:"mode,omitempty"`
	DateRange *DateRange      `json:"date_range,omitempty"`
}

func (f FilterState) WithInstance(instance string) FilterState {
	f.Instance = instance
	return f
}

func (f FilterState) WithStatus(status ExecutionStatus) FilterState {
	f.Status = status
	return f
}

// ToggleStatus selects status, or clears the status filter when it is already selected.
func (f FilterState) ToggleStatus(status ExecutionStatus) FilterState {
	if f.Status == status {
		f.Status = ""
		return f
	}
	f.Status = status
	return f
}

func (f FilterState) WithWorkflow(workflow string) FilterState {
	f.Workflow = workflow
	return f
}

func (f FilterState) WithMode(mode string) FilterState {
	f.Mode = mode
	return f
}

func (f FilterState) WithDateRange(r *DateRange) FilterState {
	if r != nil {
		cp := *r
		r = &cp
	}
	f.DateRange = r
	return f
}

// HasCountFilters reports whether any dimension that narrows counts is active
// (workflow, mode or date range).
func (f FilterState) HasCountFilters() bool {
	return f.Workflow != "" || f.Mode != "" || f.DateRange != nil
}

// HasLocalFilters reports whether any dimension evaluated in memory is active.
// The instance dimension is excluded since it is applied by the server query.
func (f FilterState) HasLocalFilters() bool {
	return f.HasCountFilters() || f.Status != ""
}

func (f FilterState) IsEmpty() bool {
	return f.Instance == "" && !f.HasLocalFilters()
}
