package ecs

// Handle is a releasable reference to one entity.
type Handle struct {
	world  *World
	entity Entity
}

func NewHandle(w *World, e Entity) *Handle {
	return &Handle{world: w, entity: e}
}

func (h *Handle) Entity() Entity {
	if h == nil {
		return 0
	}
	return h.entity
}

func (h *Handle) Alive() bool {
	return h != nil && IsAlive(h.world, h.entity)
}

// Release destroys the referenced entity. Releasing twice, or after the
// entity was destroyed elsewhere, does nothing.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	DestroyEntity(h.world, h.entity)
}
