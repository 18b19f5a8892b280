package entity

import (
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
	"github.com/milk9111/combatant/physics"
)

// Arena is everything a spawned actor is built into.
type Arena struct {
	World   *ecs.World
	Physics *physics.World
	// Rand drives ragdoll explosion forces. nil uses the global source.
	Rand *rand.Rand
	// Bounds is the half-size of the square floor; zero leaves it open.
	Bounds float64
}

// discard tears down an actor whose assembly failed part way: its ragdoll
// parts, its targeter and the entity itself. Any of them may be missing.
func (a *Arena) discard(e ecs.Entity, rd *component.Ragdoll, targeter *ecs.Handle) {
	if rd != nil {
		for _, p := range rd.Parts {
			a.Physics.RemovePart(p)
		}
	}
	targeter.Release()
	ecs.DestroyEntity(a.World, e)
	log.Debug().Stringer("entity", e).Msg("entity: discarded")
}

// closeInputOnDestroy stops e's state machine when it is destroyed, so the
// active state's Exit drops its subscriptions, and then closes its router.
func closeInputOnDestroy(w *ecs.World, e ecs.Entity) {
	ecs.OnDestroy(w, func(destroyed ecs.Entity) {
		if destroyed != e {
			return
		}
		if brain, ok := ecs.Get(w, e, component.BrainComponent); ok && brain.Agent != nil {
			brain.Agent.Core().Machine.ChangeState(nil)
		}
		if in, ok := ecs.Get(w, e, component.InputComponent); ok {
			in.Router.Close()
		}
	})
}
