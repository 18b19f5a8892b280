package entity

import (
	"github.com/milk9111/combatant/behavior"
	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
)

// ActorTarget lets a state track another entity without holding pointers
// into its components. It goes stale as soon as the entity is destroyed.
type ActorTarget struct {
	world  *ecs.World
	entity ecs.Entity
}

func NewActorTarget(w *ecs.World, e ecs.Entity) *ActorTarget {
	return &ActorTarget{world: w, entity: e}
}

func (t *ActorTarget) Entity() ecs.Entity {
	return t.entity
}

func (t *ActorTarget) Locate() (common.Vec3, bool) {
	tr, ok := ecs.Get(t.world, t.entity, component.TransformComponent)
	if !ok {
		return common.Vec3{}, false
	}
	return tr.Pos, true
}

func (t *ActorTarget) IsDead() bool {
	if !ecs.IsAlive(t.world, t.entity) {
		return true
	}
	if brain, ok := ecs.Get(t.world, t.entity, component.BrainComponent); ok && brain.Agent != nil {
		if brain.Agent.Core().IsDead() {
			return true
		}
	}
	h, ok := ecs.Get(t.world, t.entity, component.HealthComponent)
	return ok && h.IsDead()
}

// EnemyFinder picks lock-on targets among living enemies.
type EnemyFinder struct {
	world *ecs.World
}

func NewEnemyFinder(w *ecs.World) *EnemyFinder {
	return &EnemyFinder{world: w}
}

// Nearest returns the closest living enemy within range on the ground plane.
func (f *EnemyFinder) Nearest(from common.Vec3, within float64) (behavior.Target, bool) {
	var (
		best   *ActorTarget
		bestSq = within * within
	)
	ecs.ForEach2(f.world, component.EnemyTagComponent, component.TransformComponent, func(e ecs.Entity, _ *component.EnemyTag, tr *component.Transform) {
		candidate := NewActorTarget(f.world, e)
		if candidate.IsDead() {
			return
		}
		d := common.PlanarDistanceSq(from, tr.Pos)
		if d <= bestSq {
			best, bestSq = candidate, d
		}
	})
	if best == nil {
		return nil, false
	}
	return best, true
}

// newTargeter creates the entity an actor acquires targets through. The
// returned handle destroys it on Release.
func newTargeter(w *ecs.World, owner ecs.Entity, reach float64) (*ecs.Handle, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TargeterComponent, &component.Targeter{Owner: uint64(owner), Range: reach}); err != nil {
		return nil, err
	}
	return ecs.NewHandle(w, e), nil
}
