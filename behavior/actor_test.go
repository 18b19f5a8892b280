package behavior

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/combatant/common"
)

func TestIsInChaseRange(t *testing.T) {
	cases := []struct {
		name   string
		target common.Vec3
		gone   bool
		dead   bool
		want   bool
	}{
		{"exactly_on_radius", common.Vec3{X: 5}, false, false, true},
		{"just_outside", common.Vec3{X: 5.001}, false, false, false},
		{"inside", common.Vec3{X: 3, Z: 3}, false, false, true},
		{"height_is_ignored", common.Vec3{X: 3, Y: 40, Z: 4}, false, false, true},
		{"dead_target", common.Vec3{X: 1}, false, true, false},
		{"target_removed", common.Vec3{X: 1}, true, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(common.Vec3{}, c.target)
			r.target.gone = c.gone
			r.target.dead = c.dead
			a := r.actor(5)
			assert.Equal(t, c.want, a.IsInChaseRange())
		})
	}
}

func TestIsInChaseRangeWithoutTarget(t *testing.T) {
	r := newRig(common.Vec3{}, common.Vec3{})
	a := r.actor(5)
	a.Target = nil
	assert.False(t, a.IsInChaseRange())
}

func TestFaceTarget(t *testing.T) {
	r := newRig(common.Vec3{X: 1, Z: 1}, common.Vec3{X: 2, Y: 7, Z: 2})
	a := r.actor(5)
	a.FaceTarget()
	assert.InDelta(t, math.Pi/4, r.body.yaw, 1e-9)
}

func TestFaceTargetMissingIsNoop(t *testing.T) {
	r := newRig(common.Vec3{}, common.Vec3{X: 1})
	r.body.yaw = 1.5
	r.target.gone = true
	a := r.actor(5)
	a.FaceTarget()
	assert.Equal(t, 1.5, r.body.yaw)

	a.Target = nil
	a.FaceTarget()
	assert.Equal(t, 1.5, r.body.yaw)
}

func TestFaceTargetDirectlyAbove(t *testing.T) {
	r := newRig(common.Vec3{}, common.Vec3{Y: 3})
	r.body.yaw = 0.25
	a := r.actor(5)
	a.FaceTarget()
	assert.Equal(t, 0.25, r.body.yaw)
}

func TestMoveAddsExternalForce(t *testing.T) {
	r := newRig(common.Vec3{}, common.Vec3{})
	r.forces.movement = common.Vec3{Z: 2}
	a := r.actor(5)

	a.Move(common.Vec3{X: 1}, 0.5)
	a.Drift(0.25)

	assert.Equal(t, []common.Vec3{{X: 0.5, Z: 1}, {Z: 0.5}}, r.locomotion.moves)
}

func TestMoveWithoutForces(t *testing.T) {
	r := newRig(common.Vec3{}, common.Vec3{})
	a := r.actor(5)
	a.Forces = nil
	a.Move(common.Vec3{X: 2}, 0.5)
	assert.Equal(t, []common.Vec3{{X: 1}}, r.locomotion.moves)
}
