package ecs

import "github.com/milk9111/jumplab/ecs/component"

// World owns entities and their components.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

func (w *World) store(id component.ComponentID, create bool) *sparseSet {
	if w == nil {
		return nil
	}
	s := w.stores[id]
	if s == nil && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*sparseSet)
		}
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity kills e and drops all of its components. It reports whether
// e was alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).get(e)
	if !ok {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return IsAlive(w, e) && w.store(kind.ID(), false).has(e)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).remove(e)
}

// ForEach visits every entity holding kind. It walks a snapshot, so fn may
// remove the component it is visiting.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	if s == nil {
		return
	}
	ents := append([]Entity(nil), s.denseEntities...)
	vals := append([]any(nil), s.denseValues...)
	for i, e := range ents {
		if v, ok := vals[i].(*T); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := Get(w, e, kb); ok {
			fn(e, a, b)
		}
	})
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := Get(w, e, kc); ok {
			fn(e, a, b, c)
		}
	})
}

// Query returns entities that have every listed kind, iterating the
// smallest store.
func Query(w *World, kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*sparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.len())
	for _, e := range smallest.denseEntities {
		match := true
		for _, s := range sets {
			if !s.has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity holding kind. Used for singletons.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	s := w.store(kind.ID(), false)
	if s.len() == 0 {
		return 0, nil, false
	}
	v, ok := s.denseValues[0].(*T)
	if !ok {
		return 0, nil, false
	}
	return s.denseEntities[0], v, true
}
