package system

import (
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
	"github.com/milk9111/combatant/physics"
)

// PhysicsSystem keeps scripted ragdolls glued to their actor, steps the
// simulation, then lets simulated ragdolls carry their actor along.
type PhysicsSystem struct {
	world *physics.World
}

// NewPhysicsSystem also removes an entity's ragdoll parts from pw when the
// entity is destroyed.
func NewPhysicsSystem(w *ecs.World, pw *physics.World) *PhysicsSystem {
	ecs.OnDestroy(w, func(e ecs.Entity) {
		rd, ok := ecs.Get(w, e, component.RagdollComponent)
		if !ok {
			return
		}
		for _, p := range rd.Parts {
			pw.RemovePart(p)
		}
	})
	return &PhysicsSystem{world: pw}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s.world == nil {
		return
	}
	ecs.ForEach2(w, component.RagdollComponent, component.TransformComponent, func(e ecs.Entity, rd *component.Ragdoll, t *component.Transform) {
		if rd.Controller.PhysicsDriven() {
			return
		}
		for _, p := range rd.Parts {
			p.Follow(t.Pos)
		}
	})

	s.world.Step(w.Delta())

	ecs.ForEach2(w, component.RagdollComponent, component.TransformComponent, func(e ecs.Entity, rd *component.Ragdoll, t *component.Transform) {
		if !rd.Controller.PhysicsDriven() || rd.Root == nil {
			return
		}
		pos := rd.Root.Position().Sub(rd.Root.Offset())
		if pos.Y < 0 {
			pos.Y = 0
		}
		t.Pos = pos
	})
}
