package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/combatant/common"
)

// Part is one ragdoll body with its collision volume. It satisfies both
// ragdoll.RigidBody and ragdoll.Collider.
type Part struct {
	name   string
	offset common.Vec3
	radius float64
	body   *cp.Body
	shape  *cp.Shape
	z      float64
	vz     float64
	filter cp.ShapeFilter

	enabled bool
	gravity bool
}

func (p *Part) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// Offset is the part's rest position relative to the actor origin.
func (p *Part) Offset() common.Vec3 {
	if p == nil {
		return common.Vec3{}
	}
	return p.offset
}

func (p *Part) Radius() float64 {
	if p == nil {
		return 0
	}
	return p.radius
}

// SetEnabled switches the collision volume on or off.
func (p *Part) SetEnabled(enabled bool) {
	if p == nil || p.shape == nil {
		return
	}
	p.enabled = enabled
	if enabled {
		p.shape.SetFilter(p.filter)
	} else {
		p.shape.SetFilter(cp.SHAPE_FILTER_NONE)
	}
}

func (p *Part) Enabled() bool {
	return p != nil && p.enabled
}

// SetKinematic hands the body to external motion (true) or to the solver.
func (p *Part) SetKinematic(kinematic bool) {
	if p == nil || p.body == nil {
		return
	}
	if kinematic {
		p.body.SetType(cp.BODY_KINEMATIC)
	} else {
		p.body.SetType(cp.BODY_DYNAMIC)
	}
}

func (p *Part) Kinematic() bool {
	return p != nil && p.body != nil && p.body.GetType() == cp.BODY_KINEMATIC
}

// SetGravityAffected controls whether space gravity integrates into the
// body's velocity.
func (p *Part) SetGravityAffected(affected bool) {
	if p == nil || p.body == nil {
		return
	}
	p.gravity = affected
	if affected {
		p.body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
		return
	}
	p.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})
}

func (p *Part) GravityAffected() bool {
	return p != nil && p.gravity
}

// SetVelocity overwrites the velocity. X and Y go to the solver, Z is
// integrated by the world alongside it.
func (p *Part) SetVelocity(v common.Vec3) {
	if p == nil || p.body == nil {
		return
	}
	p.body.SetVelocityVector(toCP(v))
	p.vz = v.Z
}

func (p *Part) Velocity() common.Vec3 {
	if p == nil || p.body == nil {
		return common.Vec3{}
	}
	v := p.body.Velocity()
	return common.Vec3{X: v.X, Y: v.Y, Z: p.vz}
}

// stepDepth moves the part along Z. Parts resting on the ground lose depth
// speed to friction.
func (p *Part) stepDepth(dt float64) {
	if p.vz == 0 || p.Kinematic() {
		return
	}
	p.z += p.vz * dt
	if p.body.Position().Y-p.radius > groundSlop {
		return
	}
	p.vz *= math.Max(0, 1-depthFriction*dt)
	if math.Abs(p.vz) < depthRest {
		p.vz = 0
	}
}

func (p *Part) Position() common.Vec3 {
	if p == nil || p.body == nil {
		return common.Vec3{}
	}
	pos := p.body.Position()
	return common.Vec3{X: pos.X, Y: pos.Y, Z: p.z}
}

// Follow places a kinematic part at its rest offset from origin.
func (p *Part) Follow(origin common.Vec3) {
	if p == nil || p.body == nil {
		return
	}
	pos := origin.Add(p.offset)
	p.z = pos.Z
	p.body.SetPosition(toCP(pos))
	p.body.SetVelocityVector(cp.Vector{})
	p.body.SetAngularVelocity(0)
	p.vz = 0
}

// ApplyRadialImpulse pushes the body away from origin. The impulse fades
// linearly to zero at radius and is skipped beyond it. A body sitting exactly
// on origin is pushed straight up.
func (p *Part) ApplyRadialImpulse(magnitude float64, origin common.Vec3, radius float64) {
	if p == nil || p.body == nil || magnitude <= 0 || radius <= 0 {
		return
	}
	pos := p.Position()
	delta := pos.Sub(origin)
	delta.Z = 0
	dist := delta.Len()
	if dist > radius {
		return
	}
	dir := delta.NormalizeOr(common.Up)
	impulse := dir.Scale(magnitude * (1 - dist/radius))
	p.body.ApplyImpulseAtWorldPoint(toCP(impulse), toCP(pos))
}
