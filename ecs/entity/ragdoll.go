package entity

import (
	"math/rand/v2"

	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/ecs/component"
	"github.com/milk9111/combatant/physics"
	"github.com/milk9111/combatant/prefabs"
	"github.com/milk9111/combatant/ragdoll"
)

// buildRagdoll creates the actor's limb bodies once, in spec order, and
// hands them to a controller that starts in scripted mode.
func buildRagdoll(pw *physics.World, spec prefabs.RagdollSpec, at common.Vec3, locomotion, animator ragdoll.Enabler, rng *rand.Rand) *component.Ragdoll {
	group := pw.NewGroup()
	rd := &component.Ragdoll{Parts: make([]*physics.Part, 0, len(spec.Parts))}
	colliders := make([]ragdoll.Collider, 0, len(spec.Parts))
	bodies := make([]ragdoll.RigidBody, 0, len(spec.Parts))

	for _, ps := range spec.Parts {
		part := pw.AddPart(group, at, physics.PartSpec{
			Name:   ps.Name,
			Offset: common.Vec3{X: ps.OffsetX, Y: ps.OffsetY},
			Radius: ps.Radius,
			Mass:   ps.Mass,
		})
		if part == nil {
			continue
		}
		rd.Parts = append(rd.Parts, part)
		colliders = append(colliders, part)
		bodies = append(bodies, part)
	}
	if len(rd.Parts) > 0 {
		rd.Root = rd.Parts[0]
	}

	rd.Controller = ragdoll.New(colliders, bodies, locomotion, animator, ragdoll.Config{
		LaunchSpeed:       spec.LaunchSpeed,
		MaxExplosionForce: spec.MaxExplosionForce,
		ExplosionRadius:   spec.ExplosionRadius,
		Rand:              rng,
	})
	return rd
}

func animationFromSpec(defs []prefabs.AnimationDefSpec) *component.Animation {
	out := make([]component.AnimationDef, 0, len(defs))
	for _, d := range defs {
		out = append(out, component.AnimationDef{
			Name:       d.Name,
			FrameCount: d.FrameCount,
			FPS:        d.FPS,
			Loop:       d.Loop,
		})
	}
	return component.NewAnimation(out...)
}
