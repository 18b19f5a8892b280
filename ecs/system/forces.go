package system

import (
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
)

// ForceSystem decays knockback and applies gravity to vertical motion before
// the brains consume it.
type ForceSystem struct{}

func NewForceSystem() *ForceSystem {
	return &ForceSystem{}
}

func (s *ForceSystem) Update(w *ecs.World) {
	dt := w.Delta()
	ecs.ForEach2(w, component.ForceReceiverComponent, component.TransformComponent, func(e ecs.Entity, f *component.ForceReceiver, t *component.Transform) {
		f.Update(dt, t.Pos.Y <= 0)
	})
}
