package ecs

import (
	"github.com/rs/zerolog/log"

	"github.com/milk9111/combatant/ecs/component"
)

// World owns entities, their component stores and the per-frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	dt       float64

	destroyHooks []func(Entity)
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and every component it owns. Destroying a dead or
// stale entity returns false.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, hook := range w.destroyHooks {
		hook(e)
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	w.entities.destroy(e)
	log.Debug().Stringer("entity", e).Msg("ecs: destroyed")
	return true
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// OnDestroy registers fn to run before an entity's components are removed.
func OnDestroy(w *World, fn func(Entity)) {
	if w == nil || fn == nil {
		return
	}
	w.destroyHooks = append(w.destroyHooks, fn)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetDelta records the length of the frame being simulated.
func (w *World) SetDelta(dt float64) {
	if w == nil || dt < 0 {
		return
	}
	w.dt = dt
}

// Delta is the length of the current frame in seconds.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
