package behavior

import (
	"github.com/milk9111/combatant/common"
)

type fakeBody struct {
	pos common.Vec3
	yaw float64
}

func (b *fakeBody) Position() common.Vec3 { return b.pos }
func (b *fakeBody) Yaw() float64          { return b.yaw }
func (b *fakeBody) LookAlong(dir common.Vec3) {
	b.yaw = common.YawOf(dir)
}

type fakeLocomotion struct {
	body    *fakeBody
	enabled bool
	moves   []common.Vec3
}

func (l *fakeLocomotion) Move(delta common.Vec3) {
	if !l.enabled {
		return
	}
	l.moves = append(l.moves, delta)
	if l.body != nil {
		l.body.pos = l.body.pos.Add(delta)
	}
}

func (l *fakeLocomotion) SetEnabled(enabled bool) { l.enabled = enabled }

type fakeForces struct {
	movement common.Vec3
	vertical float64
	grounded bool
}

func (f *fakeForces) Movement() common.Vec3 { return f.movement }
func (f *fakeForces) Jump(speed float64) {
	f.vertical = speed
	f.grounded = false
}
func (f *fakeForces) Grounded() bool { return f.grounded }

type fakeRagdoll struct {
	physics  bool
	modes    []bool
	impulses []common.Vec3
}

func (r *fakeRagdoll) SetMode(physics bool) {
	r.physics = physics
	r.modes = append(r.modes, physics)
}

func (r *fakeRagdoll) ApplyImpulse(dir common.Vec3) {
	r.impulses = append(r.impulses, dir)
}

type fakeEquipment struct {
	visible bool
}

func (e *fakeEquipment) Show() { e.visible = true }
func (e *fakeEquipment) Hide() { e.visible = false }

type fakeAnimator struct {
	clips []string
}

func (a *fakeAnimator) Play(clip string) { a.clips = append(a.clips, clip) }

func (a *fakeAnimator) last() string {
	if len(a.clips) == 0 {
		return ""
	}
	return a.clips[len(a.clips)-1]
}

type fakeReleaser struct {
	released int
}

func (r *fakeReleaser) Release() { r.released++ }

type fakeTarget struct {
	pos  common.Vec3
	gone bool
	dead bool
}

func (t *fakeTarget) Locate() (common.Vec3, bool) { return t.pos, !t.gone }
func (t *fakeTarget) IsDead() bool                { return t.dead }

type fakeFinder struct {
	target *fakeTarget
}

func (f *fakeFinder) Nearest(from common.Vec3, within float64) (Target, bool) {
	if f.target == nil || f.target.gone || f.target.dead {
		return nil, false
	}
	if common.PlanarDistanceSq(from, f.target.pos) > within*within {
		return nil, false
	}
	return f.target, true
}

type rig struct {
	body       *fakeBody
	locomotion *fakeLocomotion
	forces     *fakeForces
	ragdoll    *fakeRagdoll
	equipment  *fakeEquipment
	animator   *fakeAnimator
	targeter   *fakeReleaser
	target     *fakeTarget
}

func newRig(self, target common.Vec3) *rig {
	body := &fakeBody{pos: self}
	return &rig{
		body:       body,
		locomotion: &fakeLocomotion{body: body, enabled: true},
		forces:     &fakeForces{grounded: true},
		ragdoll:    &fakeRagdoll{},
		equipment:  &fakeEquipment{visible: true},
		animator:   &fakeAnimator{},
		targeter:   &fakeReleaser{},
		target:     &fakeTarget{pos: target},
	}
}

func (r *rig) actor(chaseRange float64) Actor {
	return Actor{
		Name:       "test",
		Body:       r.body,
		Locomotion: r.locomotion,
		Forces:     r.forces,
		Ragdoll:    r.ragdoll,
		Equipment:  r.equipment,
		Animator:   r.animator,
		Target:     r.target,
		Targeter:   r.targeter,
		ChaseRange: chaseRange,
	}
}
