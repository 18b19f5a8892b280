package system

import (
	"github.com/rs/zerolog/log"

	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
)

// DamageSystem applies queued hits: blocked hits only push the victim back,
// others cost health and either stagger or kill.
type DamageSystem struct {
	// fraction of knockback that still gets through a block
	BlockPush float64
}

func NewDamageSystem() *DamageSystem {
	return &DamageSystem{BlockPush: 0.25}
}

func (s *DamageSystem) Update(w *ecs.World) {
	for _, hit := range ecs.Drain[ecs.HitEvent](w.Events()) {
		brain, ok := ecs.Get(w, hit.Victim, component.BrainComponent)
		if !ok || brain.Agent == nil {
			continue
		}
		actor := brain.Agent.Core()
		if actor.IsDead() {
			continue
		}
		forces, _ := ecs.Get(w, hit.Victim, component.ForceReceiverComponent)

		if actor.Blocking() {
			forces.AddForce(hit.Push.Scale(s.BlockPush))
			log.Debug().Stringer("victim", hit.Victim).Msg("combat: blocked")
			continue
		}

		forces.AddForce(hit.Push)
		health, ok := ecs.Get(w, hit.Victim, component.HealthComponent)
		if ok && health.Damage(hit.Damage) {
			brain.Agent.Kill()
			w.Events().Push(ecs.DeathEvent{Entity: hit.Victim, Killer: hit.Attacker})
			continue
		}
		brain.Agent.Hurt()
		log.Debug().
			Stringer("attacker", hit.Attacker).
			Stringer("victim", hit.Victim).
			Int("damage", hit.Damage).
			Msg("combat: hit")
	}
}

// DeathSystem tallies deaths for the HUD.
type DeathSystem struct {
	Kills       int
	PlayerAlive bool
}

func NewDeathSystem() *DeathSystem {
	return &DeathSystem{PlayerAlive: true}
}

func (s *DeathSystem) Update(w *ecs.World) {
	for _, death := range ecs.Drain[ecs.DeathEvent](w.Events()) {
		if ecs.Has(w, death.Entity, component.PlayerTagComponent) {
			s.PlayerAlive = false
			log.Info().Msg("combat: player died")
			continue
		}
		s.Kills++
		log.Info().Stringer("enemy", death.Entity).Int("kills", s.Kills).Msg("combat: enemy died")
	}
}
