package rbac

import (
	"slices"
)

// Selection is the set of ids picked for a bulk action. It only ever holds ids
// of the currently visible items once Restrict has been applied.
type Selection struct {
	ids map[uint64]struct{}
}

// NewSelection returns a selection holding ids.
func NewSelection(ids ...uint64) *Selection {
	s := &Selection{ids: make(map[uint64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}

	return s
}

// Has reports whether id is selected.
func (s *Selection) Has(id uint64) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle selects id, or unselects it when already selected.
func (s *Selection) Toggle(id uint64) {
	if s.Has(id) {
		delete(s.ids, id)
		return
	}

	s.ids[id] = struct{}{}
}

// AllSelected reports whether every visible id is selected. An empty view is never
// fully selected.
func (s *Selection) AllSelected(visible []uint64) bool {
	if len(visible) == 0 {
		return false
	}

	for _, id := range visible {
		if !s.Has(id) {
			return false
		}
	}

	return true
}

// ToggleAll selects exactly the visible ids, or clears the selection when all of
// them are already selected.
func (s *Selection) ToggleAll(visible []uint64) {
	all := s.AllSelected(visible)

	s.ids = make(map[uint64]struct{}, len(visible))
	if all {
		return
	}

	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

// Restrict drops every selected id that is not visible.
func (s *Selection) Restrict(visible []uint64) {
	for id := range s.ids {
		if !slices.Contains(visible, id) {
			delete(s.ids, id)
		}
	}
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []uint64 {
	out := make([]uint64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}

	slices.Sort(out)

	return out
}
