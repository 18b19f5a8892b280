package ecs

import "github.com/milk9111/combatant/ecs/component"

// Add stores value as e's component of the given kind, replacing any
// existing one.
func Add[T any](w *World, e Entity, kind component.Kinded[T], value *T) error {
	k := kind.Kind()
	if !k.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(k.ID(), true).Set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.Kinded[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	value, ok := w.store(kind.Kind().ID(), false).Get(e).(*T)
	return value, ok
}

func Has[T any](w *World, e Entity, kind component.Kinded[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.Kinded[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(kind.Kind().ID(), false).Remove(e)
}

// ForEach visits every live entity with a component of kind. The entity list
// is captured up front, so fn may add, remove or destroy.
func ForEach[T any](w *World, kind component.Kinded[T], fn func(Entity, *T)) {
	if w == nil {
		return
	}
	for _, e := range w.store(kind.Kind().ID(), false).Entities() {
		if a, ok := Get(w, e, kind); ok {
			fn(e, a)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.Kinded[A], kb component.Kinded[B], fn func(Entity, *A, *B)) {
	if w == nil {
		return
	}
	for _, e := range smallest(w, ka.Kind().ID(), kb.Kind().ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.Kinded[A], kb component.Kinded[B], kc component.Kinded[C], fn func(Entity, *A, *B, *C)) {
	if w == nil {
		return
	}
	for _, e := range smallest(w, ka.Kind().ID(), kb.Kind().ID(), kc.Kind().ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// First returns the lowest-id live entity with a component of kind.
func First[T any](w *World, kind component.Kinded[T]) (Entity, *T, bool) {
	var (
		best  Entity
		value *T
	)
	ForEach(w, kind, func(e Entity, v *T) {
		if value == nil || e.id() < best.id() {
			best, value = e, v
		}
	})
	return best, value, value != nil
}

// smallest returns the entity list of the smallest store, or nil when any
// store is missing.
func smallest(w *World, ids ...component.ComponentID) []Entity {
	var pick *SparseSet
	for _, id := range ids {
		s := w.store(id, false)
		if s == nil {
			return nil
		}
		if pick == nil || s.Len() < pick.Len() {
			pick = s
		}
	}
	return pick.Entities()
}
