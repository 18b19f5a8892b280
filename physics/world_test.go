package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/combatant/common"
)

func newTestPart(t *testing.T) (*World, *Part) {
	t.Helper()
	w := NewWorld(common.Gravity)
	p := w.AddPart(w.NewGroup(), common.Vec3{Y: 5, Z: 2}, PartSpec{Name: "torso", Offset: common.Vec3{Y: 1}, Radius: 0.3, Mass: 2})
	require.NotNil(t, p)
	return w, p
}

func TestAddPart(t *testing.T) {
	w, p := newTestPart(t)
	assert.Equal(t, 1, w.Parts())
	assert.Equal(t, "torso", p.Name())
	assert.Equal(t, common.Vec3{Y: 6, Z: 2}, p.Position())
	assert.True(t, p.Enabled())
	assert.True(t, p.GravityAffected())
	assert.False(t, p.Kinematic())

	w.RemovePart(p)
	w.RemovePart(p)
	assert.Equal(t, 0, w.Parts())
}

func TestKinematicPartIgnoresGravity(t *testing.T) {
	w, p := newTestPart(t)
	p.SetKinematic(true)
	p.SetGravityAffected(false)
	require.True(t, p.Kinematic())

	start := p.Position()
	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60)
	}
	assert.InDelta(t, start.Y, p.Position().Y, 1e-9)
}

func TestDynamicPartFalls(t *testing.T) {
	w, p := newTestPart(t)
	p.SetKinematic(true)
	p.SetKinematic(false)
	p.SetGravityAffected(true)
	require.False(t, p.Kinematic())

	start := p.Position()
	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60)
	}
	assert.Less(t, p.Position().Y, start.Y)
	assert.Equal(t, start.Z, p.Position().Z)
}

func TestGravityDisabledKeepsVelocity(t *testing.T) {
	w, p := newTestPart(t)
	p.SetGravityAffected(false)
	p.SetVelocity(common.Vec3{X: 1})

	for i := 0; i < 10; i++ {
		w.Step(1.0 / 60)
	}
	assert.InDelta(t, 6, p.Position().Y, 1e-9)
	assert.Greater(t, p.Position().X, 0.0)
}

func TestDepthVelocity(t *testing.T) {
	w, p := newTestPart(t)
	p.SetGravityAffected(false)
	p.SetVelocity(common.Vec3{Z: 10})
	assert.InDelta(t, 10, p.Velocity().Len(), 1e-9)

	for i := 0; i < 6; i++ {
		w.Step(1.0 / 60)
	}
	assert.InDelta(t, 3, p.Position().Z, 1e-9)
	assert.InDelta(t, 10, p.Velocity().Z, 1e-9, "no friction in the air")

	p.Follow(common.Vec3{})
	assert.Zero(t, p.Velocity().Z)
}

func TestDepthVelocityDiagonalLaunch(t *testing.T) {
	_, p := newTestPart(t)
	dir, ok := common.Vec3{X: 1, Z: 1}.Normalize()
	require.True(t, ok)
	p.SetVelocity(dir.Scale(10))
	assert.InDelta(t, 10, p.Velocity().Len(), 1e-9)
	assert.InDelta(t, p.Velocity().X, p.Velocity().Z, 1e-9)
}

func TestDepthFrictionOnGround(t *testing.T) {
	w := NewWorld(common.Gravity)
	p := w.AddPart(w.NewGroup(), common.Vec3{}, PartSpec{Name: "hips", Radius: 0.25})
	require.NotNil(t, p)
	p.SetVelocity(common.Vec3{Z: 2})

	for i := 0; i < 240; i++ {
		w.Step(1.0 / 60)
	}
	assert.Zero(t, p.Velocity().Z)
	assert.Greater(t, p.Position().Z, 0.0)
}

func TestKinematicPartKeepsDepth(t *testing.T) {
	w, p := newTestPart(t)
	p.SetKinematic(true)
	p.SetVelocity(common.Vec3{Z: 5})
	w.Step(1.0 / 60)
	assert.Equal(t, 2.0, p.Position().Z)
}

func TestRadialImpulseAtOwnPositionPushesUp(t *testing.T) {
	_, p := newTestPart(t)
	p.SetGravityAffected(false)
	p.ApplyRadialImpulse(10, p.Position(), 3)
	assert.Greater(t, p.Velocity().Y, 0.0)
	assert.InDelta(t, 0, p.Velocity().X, 1e-9)
}

func TestRadialImpulseOutsideRadius(t *testing.T) {
	_, p := newTestPart(t)
	p.ApplyRadialImpulse(10, p.Position().Add(common.Vec3{X: 10}), 3)
	assert.Equal(t, common.Vec3{}, p.Velocity())
}

func TestRadialImpulseFalloff(t *testing.T) {
	_, near := newTestPart(t)
	_, far := newTestPart(t)

	near.ApplyRadialImpulse(10, near.Position().Add(common.Vec3{X: -0.5}), 3)
	far.ApplyRadialImpulse(10, far.Position().Add(common.Vec3{X: -2.5}), 3)

	assert.Greater(t, near.Velocity().X, far.Velocity().X)
	assert.Greater(t, far.Velocity().X, 0.0)
}

func TestFollow(t *testing.T) {
	_, p := newTestPart(t)
	p.SetKinematic(true)
	p.Follow(common.Vec3{X: 3, Z: -1})
	assert.Equal(t, common.Vec3{X: 3, Y: 1, Z: -1}, p.Position())
}

func TestColliderToggle(t *testing.T) {
	_, p := newTestPart(t)
	p.SetEnabled(false)
	assert.False(t, p.Enabled())
	p.SetEnabled(true)
	assert.True(t, p.Enabled())
}
