package entity

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/colornames"

	"github.com/milk9111/combatant/behavior"
	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
	"github.com/milk9111/combatant/prefabs"
)

// EnemyTuning maps an enemy spec onto state tuning.
func EnemyTuning(spec *prefabs.EnemySpec, idle *behavior.Script) behavior.EnemyConfig {
	return behavior.EnemyConfig{
		AttackRange:    spec.AttackRange,
		MoveSpeed:      spec.MoveSpeed,
		AttackDuration: spec.Weapon.AttackSeconds(),
		StrikeStart:    spec.Weapon.StrikeStart,
		StrikeEnd:      spec.Weapon.StrikeEnd,
		ImpactDuration: spec.ImpactSeconds,
		IdleScript:     idle,
	}
}

// NewEnemy spawns an enemy at pos that hunts target. idle may be nil to use
// the built-in idle state.
func NewEnemy(a *Arena, spec *prefabs.EnemySpec, idle *behavior.Script, target ecs.Entity, pos common.Vec3) (_ ecs.Entity, err error) {
	w := a.World
	entity := ecs.CreateEntity(w)

	var (
		rd       *component.Ragdoll
		targeter *ecs.Handle
	)
	defer func() {
		if err != nil {
			a.discard(entity, rd, targeter)
		}
	}()

	if err := ecs.Add(w, entity, component.EnemyTagComponent, &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	transform := &component.Transform{Pos: pos}
	if err := ecs.Add(w, entity, component.TransformComponent, transform); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}
	if tr, ok := ecs.Get(w, target, component.TransformComponent); ok {
		transform.LookAlong(tr.Pos.Sub(pos))
	}

	locomotion := component.NewLocomotion(transform, a.Bounds)
	if err := ecs.Add(w, entity, component.LocomotionComponent, locomotion); err != nil {
		return 0, fmt.Errorf("enemy: add locomotion: %w", err)
	}

	animation := animationFromSpec(spec.Animations)
	if err := ecs.Add(w, entity, component.AnimationComponent, animation); err != nil {
		return 0, fmt.Errorf("enemy: add animation: %w", err)
	}

	forces := component.NewForceReceiver(spec.Drag)
	if err := ecs.Add(w, entity, component.ForceReceiverComponent, forces); err != nil {
		return 0, fmt.Errorf("enemy: add force receiver: %w", err)
	}

	equipment := &component.Equipment{
		Visible:   true,
		Reach:     spec.Weapon.Reach,
		Damage:    spec.Weapon.Damage,
		Knockback: spec.Weapon.Knockback,
	}
	if err := ecs.Add(w, entity, component.EquipmentComponent, equipment); err != nil {
		return 0, fmt.Errorf("enemy: add equipment: %w", err)
	}

	if err := ecs.Add(w, entity, component.AppearanceComponent, &component.Appearance{Color: spec.Color.Or(colornames.Firebrick)}); err != nil {
		return 0, fmt.Errorf("enemy: add appearance: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent, component.NewHealth(spec.Health)); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}

	rd = buildRagdoll(a.Physics, spec.Ragdoll, pos, locomotion, animation, a.Rand)
	if err := ecs.Add(w, entity, component.RagdollComponent, rd); err != nil {
		return 0, fmt.Errorf("enemy: add ragdoll: %w", err)
	}

	targeter, err = newTargeter(w, entity, spec.ChaseRange)
	if err != nil {
		return 0, fmt.Errorf("enemy: add targeter: %w", err)
	}

	actor := behavior.Actor{
		Name:       fmt.Sprintf("%s#%s", spec.Name, entity),
		Body:       transform,
		Locomotion: locomotion,
		Forces:     forces,
		Ragdoll:    rd.Controller,
		Equipment:  equipment,
		Animator:   animation,
		Targeter:   targeter,
		ChaseRange: spec.ChaseRange,
	}
	if ecs.IsAlive(w, target) {
		actor.Target = NewActorTarget(w, target)
	}

	enemy := behavior.NewEnemy(actor, EnemyTuning(spec, idle))
	if err := ecs.Add(w, entity, component.BrainComponent, &component.Brain{Agent: enemy}); err != nil {
		return 0, fmt.Errorf("enemy: add brain: %w", err)
	}
	enemy.Start()

	log.Debug().Str("enemy", actor.Name).Float64("x", pos.X).Float64("z", pos.Z).Msg("entity: enemy spawned")
	return entity, nil
}
