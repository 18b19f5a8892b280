// Package physics provides rigid bodies and collision volumes on top of
// Chipmunk2D.
//
// Chipmunk simulates a plane. Bodies live in the vertical X/Y plane of the
// world, with Y up. The Z coordinate of a part is kept alongside its body and
// integrated from the part's own depth velocity after every solver step, so
// parts never collide along Z.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/combatant/common"
)

const (
	collisionTypeGround cp.CollisionType = iota + 1
	collisionTypeRagdoll
)

const (
	defaultPartMass   = 1.0
	defaultPartRadius = 0.25
	groundHalfWidth   = 1000.0

	// depth motion of parts touching the ground
	groundSlop    = 0.05
	depthFriction = 4.0
	depthRest     = 0.01
)

// World owns the Chipmunk space.
type World struct {
	space     *cp.Space
	parts     map[*cp.Shape]*Part
	nextGroup uint
}

// NewWorld creates a space with downward gravity and a ground line at Y=0.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})

	w := &World{
		space: space,
		parts: make(map[*cp.Shape]*Part),
	}
	w.buildGround()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Step advances the simulation.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
	for _, p := range w.parts {
		p.stepDepth(dt)
	}
}

// NewGroup returns a collision group id. Parts sharing a group never collide
// with each other.
func (w *World) NewGroup() uint {
	if w == nil {
		return 0
	}
	w.nextGroup++
	return w.nextGroup
}

// PartSpec describes one ragdoll part relative to the actor origin.
type PartSpec struct {
	Name   string
	Offset common.Vec3
	Radius float64
	Mass   float64
}

// AddPart creates a dynamic circle body for spec placed at origin+offset.
func (w *World) AddPart(group uint, origin common.Vec3, spec PartSpec) *Part {
	if w == nil || w.space == nil {
		return nil
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = defaultPartMass
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = defaultPartRadius
	}

	pos := origin.Add(spec.Offset)
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(toCP(pos))
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0.8)
	shape.SetElasticity(0.1)
	shape.SetCollisionType(collisionTypeRagdoll)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	// mass has to be set after the shape is attached so the body picks it up
	// again whenever it switches back to dynamic.
	shape.SetMass(mass)

	p := &Part{
		name:    spec.Name,
		offset:  spec.Offset,
		radius:  radius,
		body:    body,
		shape:   shape,
		z:       pos.Z,
		filter:  cp.NewShapeFilter(group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES),
		enabled: true,
		gravity: true,
	}
	shape.SetFilter(p.filter)
	w.parts[shape] = p

	log.Debug().Str("part", spec.Name).Uint("group", group).Msg("physics: part added")
	return p
}

// RemovePart takes a part out of the simulation.
func (w *World) RemovePart(p *Part) {
	if w == nil || w.space == nil || p == nil {
		return
	}
	if _, ok := w.parts[p.shape]; !ok {
		return
	}
	delete(w.parts, p.shape)
	w.space.RemoveShape(p.shape)
	w.space.RemoveBody(p.body)
}

// Parts returns the number of live parts.
func (w *World) Parts() int {
	if w == nil {
		return 0
	}
	return len(w.parts)
}

func (w *World) buildGround() {
	ground := cp.NewSegment(w.space.StaticBody, cp.Vector{X: -groundHalfWidth, Y: 0}, cp.Vector{X: groundHalfWidth, Y: 0}, 0)
	ground.SetFriction(0.8)
	ground.SetCollisionType(collisionTypeGround)
	w.space.AddShape(ground)
}

func toCP(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}
