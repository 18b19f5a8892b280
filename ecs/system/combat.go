package system

import (
	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
)

// CombatSystem turns active weapon swings into hit events. A victim must be
// on the other side, alive, within weapon reach and in front of the attacker;
// each swing lands on a given victim at most once.
type CombatSystem struct{}

func NewCombatSystem() *CombatSystem { return &CombatSystem{} }

func (s *CombatSystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.BrainComponent, component.EquipmentComponent, component.TransformComponent, func(attacker ecs.Entity, brain *component.Brain, eq *component.Equipment, at *component.Transform) {
		if brain.Agent == nil {
			return
		}
		actor := brain.Agent.Core()
		if actor.IsDead() {
			return
		}
		active, swing := actor.Striking()
		if !active || !eq.Visible {
			return
		}
		playerSide := ecs.Has(w, attacker, component.PlayerTagComponent)
		forward := at.Forward()

		ecs.ForEach2(w, component.BrainComponent, component.TransformComponent, func(victim ecs.Entity, vb *component.Brain, vt *component.Transform) {
			if victim == attacker || vb.Agent == nil || vb.Agent.Core().IsDead() {
				return
			}
			if ecs.Has(w, victim, component.PlayerTagComponent) == playerSide {
				return
			}
			if common.PlanarDistanceSq(at.Pos, vt.Pos) > eq.Reach*eq.Reach {
				return
			}
			toVictim := vt.Pos.Sub(at.Pos).Planar()
			if toVictim.Dot(forward) < 0 {
				return
			}
			if !eq.Land(uint64(victim), swing) {
				return
			}
			push := toVictim.NormalizeOr(forward).Scale(eq.Knockback)
			w.Events().Push(ecs.HitEvent{
				Attacker: attacker,
				Victim:   victim,
				Swing:    swing,
				Damage:   eq.Damage,
				Push:     push,
			})
		})
	})
}
