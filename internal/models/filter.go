package models

import "strings"

// CheckState is the value of a tri-state checkbox
type CheckState int

const (
	// Indeterminate means "no constraint" when used as a filter value
	Indeterminate CheckState = iota
	Unchecked
	Checked
)

// String returns a short label for the state
func (s CheckState) String() string {
	switch s {
	case Checked:
		return "checked"
	case Unchecked:
		return "unchecked"
	default:
		return "indeterminate"
	}
}

// Next returns the state a tri-state control moves to when toggled
func (s CheckState) Next() CheckState {
	switch s {
	case Indeterminate:
		return Checked
	case Checked:
		return Unchecked
	default:
		return Indeterminate
	}
}

// ParseCheckState converts cell text into a check state.
// Anything that is not a recognised boolean is Indeterminate.
func ParseCheckState(text string) CheckState {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "t", "1", "yes", "y", "x", "checked":
		return Checked
	case "false", "f", "0", "no", "n", "unchecked":
		return Unchecked
	default:
		return Indeterminate
	}
}

// CriterionKind identifies the variant held by a Criterion
type CriterionKind int

const (
	CriterionNone CriterionKind = iota
	CriterionPattern
	CriterionState
)

// Criterion is the active filter of a single column
type Criterion struct {
	Kind    CriterionKind
	Pattern string     // Wildcard pattern, set when Kind == CriterionPattern
	State   CheckState // Required state, set when Kind == CriterionState
}

// PatternCriterion returns a wildcard criterion, or the neutral criterion
// when pattern is empty
func PatternCriterion(pattern string) Criterion {
	if pattern == "" {
		return Criterion{}
	}
	return Criterion{Kind: CriterionPattern, Pattern: pattern}
}

// StateCriterion returns a check-state criterion, or the neutral criterion
// when state is Indeterminate
func StateCriterion(state CheckState) Criterion {
	if state == Indeterminate {
		return Criterion{}
	}
	return Criterion{Kind: CriterionState, State: state}
}

// IsNeutral reports whether the criterion filters nothing
func (c Criterion) IsNeutral() bool {
	return c.Kind == CriterionNone
}

// Criteria maps a column index to its active criterion.
// Neutral criteria are never stored.
type Criteria map[int]Criterion

// Set stores c for column, deleting the entry when c is neutral
func (cr Criteria) Set(column int, c Criterion) {
	if c.IsNeutral() {
		delete(cr, column)
		return
	}
	cr[column] = c
}

// Clone returns a copy of the map
func (cr Criteria) Clone() Criteria {
	out := make(Criteria, len(cr))
	for k, v := range cr {
		out[k] = v
	}
	return out
}
