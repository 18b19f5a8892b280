package system

import (
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	dt := w.Delta()
	ecs.ForEach(w, component.AnimationComponent, func(e ecs.Entity, anim *component.Animation) {
		anim.Advance(dt)
	})
}
