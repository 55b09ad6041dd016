package datatable

import "slices"

// Selection is an ordered set of record ids. Ids keep the order in which
// they were first selected.
type Selection[ID comparable] struct {
	ids      []ID
	set      map[ID]struct{}
	onChange func([]ID)
}

// NewSelection returns an empty selection.
func NewSelection[ID comparable]() *Selection[ID] {
	return &Selection[ID]{set: make(map[ID]struct{})}
}

// OnChange registers fn to be called with a copy of the selected ids after
// every change. Calls that leave the set untouched do not notify.
func (s *Selection[ID]) OnChange(fn func([]ID)) {
	s.onChange = fn
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Selection[ID]) Toggle(id ID) bool {
	if _, ok := s.set[id]; ok {
		s.remove(id)
		s.notify()
		return false
	}
	s.add(id)
	s.notify()
	return true
}

// SelectAll adds ids to the selection. Existing members are kept.
func (s *Selection[ID]) SelectAll(ids []ID) {
	changed := false
	for _, id := range ids {
		if _, ok := s.set[id]; !ok {
			s.add(id)
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// DeselectAll removes ids from the selection.
func (s *Selection[ID]) DeselectAll(ids []ID) {
	changed := false
	for _, id := range ids {
		if _, ok := s.set[id]; ok {
			s.remove(id)
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// Set replaces the selection with ids, dropping duplicates.
func (s *Selection[ID]) Set(ids []ID) {
	before := s.ids
	s.ids = nil
	clear(s.set)
	for _, id := range ids {
		if _, ok := s.set[id]; !ok {
			s.add(id)
		}
	}
	if !slices.Equal(before, s.ids) {
		s.notify()
	}
}

// Clear empties the selection.
func (s *Selection[ID]) Clear() {
	if len(s.ids) == 0 {
		return
	}
	s.ids = nil
	clear(s.set)
	s.notify()
}

// Retain drops every id for which keep returns false and returns how many
// were dropped.
func (s *Selection[ID]) Retain(keep func(ID) bool) int {
	before := len(s.ids)
	s.ids = slices.DeleteFunc(s.ids, func(id ID) bool {
		if keep(id) {
			return false
		}
		delete(s.set, id)
		return true
	})
	dropped := before - len(s.ids)
	if dropped > 0 {
		s.notify()
	}
	return dropped
}

// IsSelected reports whether id is selected.
func (s *Selection[ID]) IsSelected(id ID) bool {
	_, ok := s.set[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection[ID]) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the selected ids in selection order.
func (s *Selection[ID]) IDs() []ID {
	return slices.Clone(s.ids)
}

func (s *Selection[ID]) add(id ID) {
	s.set[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *Selection[ID]) remove(id ID) {
	delete(s.set, id)
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
}

func (s *Selection[ID]) notify() {
	if s.onChange != nil {
		s.onChange(s.IDs())
	}
}
