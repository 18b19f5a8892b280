package ragdoll

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/combatant/common"
)

type fakeSwitch struct {
	enabled bool
	calls   int
}

func (f *fakeSwitch) SetEnabled(enabled bool) {
	f.enabled = enabled
	f.calls++
}

type impulse struct {
	magnitude float64
	origin    common.Vec3
	radius    float64
}

type fakeBody struct {
	kinematic bool
	gravity   bool
	velocity  common.Vec3
	position  common.Vec3
	impulses  []impulse
}

func (f *fakeBody) SetKinematic(k bool)       { f.kinematic = k }
func (f *fakeBody) SetGravityAffected(g bool) { f.gravity = g }
func (f *fakeBody) SetVelocity(v common.Vec3) { f.velocity = v }
func (f *fakeBody) Position() common.Vec3     { return f.position }
func (f *fakeBody) ApplyRadialImpulse(m float64, o common.Vec3, r float64) {
	f.impulses = append(f.impulses, impulse{magnitude: m, origin: o, radius: r})
}

type rig struct {
	colliders  []*fakeSwitch
	bodies     []*fakeBody
	locomotion *fakeSwitch
	animator   *fakeSwitch
	ctrl       *Controller
}

func newRig(n int, cfg Config) *rig {
	r := &rig{locomotion: &fakeSwitch{}, animator: &fakeSwitch{}}
	var cols []Collider
	var bodies []RigidBody
	for i := 0; i < n; i++ {
		c := &fakeSwitch{enabled: true}
		b := &fakeBody{position: common.Vec3{X: float64(i), Y: 1}}
		r.colliders = append(r.colliders, c)
		r.bodies = append(r.bodies, b)
		cols = append(cols, c)
		bodies = append(bodies, b)
	}
	r.ctrl = New(cols, bodies, r.locomotion, r.animator, cfg)
	return r
}

func (r *rig) assertMode(t *testing.T, physics bool) {
	t.Helper()
	assert.Equal(t, physics, r.ctrl.PhysicsDriven())
	for i, c := range r.colliders {
		assert.Equal(t, physics, c.enabled, "collider %d", i)
	}
	for i, b := range r.bodies {
		assert.Equal(t, !physics, b.kinematic, "body %d kinematic", i)
		assert.Equal(t, physics, b.gravity, "body %d gravity", i)
	}
	assert.Equal(t, !physics, r.locomotion.enabled)
	assert.Equal(t, !physics, r.animator.enabled)
}

func TestNewStartsScripted(t *testing.T) {
	r := newRig(4, Config{})
	r.assertMode(t, false)
	cols, bodies := r.ctrl.Parts()
	assert.Equal(t, 4, cols)
	assert.Equal(t, 4, bodies)
}

func TestSetModeInvariant(t *testing.T) {
	sequences := [][]bool{
		{true},
		{true, false},
		{true, true},
		{false, false, true, false, true},
	}
	for _, seq := range sequences {
		r := newRig(3, Config{})
		for _, mode := range seq {
			r.ctrl.SetMode(mode)
			r.assertMode(t, mode)
		}
	}
}

func TestSetModeIdempotent(t *testing.T) {
	once := newRig(2, Config{})
	once.ctrl.SetMode(true)

	twice := newRig(2, Config{})
	twice.ctrl.SetMode(true)
	twice.ctrl.SetMode(true)

	for i := range once.bodies {
		assert.Equal(t, *once.bodies[i], *twice.bodies[i])
		assert.Equal(t, once.colliders[i].enabled, twice.colliders[i].enabled)
	}
	assert.Equal(t, once.locomotion.enabled, twice.locomotion.enabled)
	assert.Equal(t, once.animator.enabled, twice.animator.enabled)
}

func TestApplyImpulse(t *testing.T) {
	r := newRig(5, Config{Rand: rand.New(rand.NewPCG(1, 2))})
	r.ctrl.SetMode(true)

	dir := common.Vec3{X: 1, Y: 1}.NormalizeOr(common.Up)
	r.ctrl.ApplyImpulse(dir)

	for i, b := range r.bodies {
		assert.InDelta(t, DefaultLaunchSpeed, b.velocity.Len(), 1e-9, "body %d", i)
		assert.InDelta(t, 0, b.velocity.Sub(dir.Scale(DefaultLaunchSpeed)).Len(), 1e-9)
		require.Len(t, b.impulses, 1)
		imp := b.impulses[0]
		assert.GreaterOrEqual(t, imp.magnitude, 0.0)
		assert.Less(t, imp.magnitude, DefaultMaxExplosionForce)
		assert.Equal(t, b.position, imp.origin)
		assert.Equal(t, DefaultExplosionRadius, imp.radius)
	}
}

func TestApplyImpulseSamplesPerBody(t *testing.T) {
	r := newRig(8, Config{Rand: rand.New(rand.NewPCG(7, 7))})
	r.ctrl.SetMode(true)
	r.ctrl.ApplyImpulse(common.Up)
	r.ctrl.ApplyImpulse(common.Up)

	seen := map[float64]bool{}
	for _, b := range r.bodies {
		require.Len(t, b.impulses, 2)
		for _, imp := range b.impulses {
			seen[imp.magnitude] = true
		}
	}
	assert.Greater(t, len(seen), 1)
}

func TestApplyImpulseCustomConfig(t *testing.T) {
	r := newRig(1, Config{LaunchSpeed: 4, MaxExplosionForce: 1, ExplosionRadius: 0.5})
	r.ctrl.SetMode(true)
	r.ctrl.ApplyImpulse(common.Forward)

	b := r.bodies[0]
	assert.Equal(t, common.Vec3{Z: 4}, b.velocity)
	assert.Less(t, b.impulses[0].magnitude, 1.0)
	assert.Equal(t, 0.5, b.impulses[0].radius)
}

func TestNilCapabilities(t *testing.T) {
	c := New(nil, nil, nil, nil, Config{})
	assert.NotPanics(t, func() {
		c.SetMode(true)
		c.ApplyImpulse(common.Up)
	})
	assert.True(t, c.PhysicsDriven())
}
