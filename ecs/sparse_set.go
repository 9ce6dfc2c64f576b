package ecs

// sparseSet stores one component type keyed by entity slot id. Values are
// kept densely so iteration stays cache friendly.
type sparseSet struct {
	denseEntities []Entity
	denseValues   []any
	sparse        []int
}

func (s *sparseSet) index(e Entity) (int, bool) {
	id := int(e.id())
	if s == nil || id <= 0 || id-1 >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseSet) get(e Entity) (any, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.denseValues[idx], true
}

func (s *sparseSet) set(e Entity, v any) {
	id := int(e.id())
	if id <= 0 {
		return
	}
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(e); ok {
		s.denseValues[idx] = v
		return
	}
	// a stale generation may still occupy the slot
	if old := s.sparse[id-1]; old >= 0 && old < len(s.denseEntities) && s.denseEntities[old].id() == e.id() {
		s.removeAt(old)
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

func (s *sparseSet) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	s.removeAt(idx)
	return true
}

func (s *sparseSet) removeAt(idx int) {
	last := len(s.denseEntities) - 1
	removed := s.denseEntities[idx]
	moved := s.denseEntities[last]

	s.denseEntities[idx] = moved
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[moved.id()-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues[last] = nil
	s.denseValues = s.denseValues[:last]
	s.sparse[removed.id()-1] = -1
}

func (s *sparseSet) len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}
