package entity

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/colornames"

	"github.com/milk9111/combatant/behavior"
	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
	"github.com/milk9111/combatant/input"
	"github.com/milk9111/combatant/prefabs"
)

func PlayerTuning(spec *prefabs.PlayerSpec) behavior.PlayerConfig {
	return behavior.PlayerConfig{
		MoveSpeed:      spec.MoveSpeed,
		TargetingSpeed: spec.TargetingSpeed,
		TargetRange:    spec.TargetRange,
		JumpSpeed:      spec.JumpSpeed,
		DodgeSpeed:     spec.DodgeSpeed,
		DodgeDuration:  spec.DodgeSeconds,
		AttackDuration: spec.Weapon.AttackSeconds(),
		StrikeStart:    spec.Weapon.StrikeStart,
		StrikeEnd:      spec.Weapon.StrikeEnd,
		ImpactDuration: spec.ImpactSeconds,
	}
}

// NewPlayer spawns the input-driven actor at pos, reading intent from router.
func NewPlayer(a *Arena, spec *prefabs.PlayerSpec, router *input.Router, pos common.Vec3) (_ ecs.Entity, err error) {
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

	if err := ecs.Add(w, entity, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent, &component.Input{
		Router: router,
		Poller: input.NewPoller(router),
	}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	transform := &component.Transform{Pos: pos}
	if err := ecs.Add(w, entity, component.TransformComponent, transform); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	locomotion := component.NewLocomotion(transform, a.Bounds)
	if err := ecs.Add(w, entity, component.LocomotionComponent, locomotion); err != nil {
		return 0, fmt.Errorf("player: add locomotion: %w", err)
	}

	animation := animationFromSpec(spec.Animations)
	if err := ecs.Add(w, entity, component.AnimationComponent, animation); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}

	forces := component.NewForceReceiver(spec.Drag)
	if err := ecs.Add(w, entity, component.ForceReceiverComponent, forces); err != nil {
		return 0, fmt.Errorf("player: add force receiver: %w", err)
	}

	equipment := &component.Equipment{
		Visible:   true,
		Reach:     spec.Weapon.Reach,
		Damage:    spec.Weapon.Damage,
		Knockback: spec.Weapon.Knockback,
	}
	if err := ecs.Add(w, entity, component.EquipmentComponent, equipment); err != nil {
		return 0, fmt.Errorf("player: add equipment: %w", err)
	}

	if err := ecs.Add(w, entity, component.AppearanceComponent, &component.Appearance{Color: spec.Color.Or(colornames.Steelblue)}); err != nil {
		return 0, fmt.Errorf("player: add appearance: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent, component.NewHealth(spec.Health)); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	rd = buildRagdoll(a.Physics, spec.Ragdoll, pos, locomotion, animation, a.Rand)
	if err := ecs.Add(w, entity, component.RagdollComponent, rd); err != nil {
		return 0, fmt.Errorf("player: add ragdoll: %w", err)
	}

	targeter, err = newTargeter(w, entity, spec.TargetRange)
	if err != nil {
		return 0, fmt.Errorf("player: add targeter: %w", err)
	}

	player := behavior.NewPlayer(behavior.Actor{
		Name:       spec.Name,
		Body:       transform,
		Locomotion: locomotion,
		Forces:     forces,
		Ragdoll:    rd.Controller,
		Equipment:  equipment,
		Animator:   animation,
		Targeter:   targeter,
	}, router, PlayerTuning(spec))
	player.Jumper = forces
	player.Finder = NewEnemyFinder(w)

	if err := ecs.Add(w, entity, component.BrainComponent, &component.Brain{Agent: player}); err != nil {
		return 0, fmt.Errorf("player: add brain: %w", err)
	}
	player.Start()
	closeInputOnDestroy(w, entity)

	log.Debug().Str("player", spec.Name).Msg("entity: player spawned")
	return entity, nil
}
