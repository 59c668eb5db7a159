package hunt

import "slices"

// SelectionState tracks a session's in-progress cuisine picks. Categories the
// user clicked once are selected, clicked twice are excluded, clicked a third
// time return to neutral. A category is never in both lists; order is
// insertion order.
type SelectionState struct {
	Selected    []string `json:"selected"`
	Excluded    []string `json:"excluded"`
	IsResolving bool     `json:"isResolving"`
}

// NewSelectionState returns an empty selection.
func NewSelectionState() *SelectionState {
	return &SelectionState{Selected: []string{}, Excluded: []string{}}
}

// Toggle advances the given category one step through the
// neutral -> selected -> excluded -> neutral cycle.
func (s *SelectionState) Toggle(category string) {
	switch {
	case slices.Contains(s.Excluded, category):
		s.Excluded = remove(s.Excluded, category)
	case slices.Contains(s.Selected, category):
		s.Selected = remove(s.Selected, category)
		s.Excluded = append(s.Excluded, category)
	default:
		s.Selected = append(s.Selected, category)
	}
}

// ClearExcluded empties the excluded list, returning every excluded category
// to neutral.
func (s *SelectionState) ClearExcluded() {
	s.Excluded = s.Excluded[:0]
}

// Clone returns an independent copy, safe to hand out while the original
// keeps mutating under its owner's lock.
func (s *SelectionState) Clone() *SelectionState {
	return &SelectionState{
		Selected:    slices.Clone(s.Selected),
		Excluded:    slices.Clone(s.Excluded),
		IsResolving: s.IsResolving,
	}
}

func remove(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
