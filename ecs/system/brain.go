package system

import (
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
)

// BrainSystem ticks every actor's state machine.
type BrainSystem struct{}

func NewBrainSystem() *BrainSystem {
	return &BrainSystem{}
}

func (s *BrainSystem) Update(w *ecs.World) {
	dt := w.Delta()
	ecs.ForEach(w, component.BrainComponent, func(e ecs.Entity, brain *component.Brain) {
		if brain.Agent == nil {
			return
		}
		if m := brain.Agent.Core().Machine; m != nil {
			m.Tick(dt)
		}
	})
}
