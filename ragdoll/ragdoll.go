// Package ragdoll hands an actor's body over from scripted animation to
// passive rigid-body simulation.
package ragdoll

import (
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/milk9111/combatant/common"
)

const (
	DefaultLaunchSpeed       = 10.0
	DefaultMaxExplosionForce = 50.0
	DefaultExplosionRadius   = 3.0
)

// Enabler is any capability that can be switched on and off, such as the
// locomotion controller or animation playback.
type Enabler interface {
	SetEnabled(enabled bool)
}

// Collider is a collision volume belonging to the ragdoll.
type Collider interface {
	SetEnabled(enabled bool)
}

// RigidBody is a simulated body belonging to the ragdoll.
type RigidBody interface {
	SetKinematic(kinematic bool)
	SetGravityAffected(affected bool)
	SetVelocity(v common.Vec3)
	ApplyRadialImpulse(magnitude float64, origin common.Vec3, radius float64)
	Position() common.Vec3
}

type Config struct {
	LaunchSpeed       float64
	MaxExplosionForce float64
	ExplosionRadius   float64
	// Rand samples explosion magnitudes. nil uses the global source.
	Rand *rand.Rand
}

func (c Config) withDefaults() Config {
	if c.LaunchSpeed <= 0 {
		c.LaunchSpeed = DefaultLaunchSpeed
	}
	if c.MaxExplosionForce <= 0 {
		c.MaxExplosionForce = DefaultMaxExplosionForce
	}
	if c.ExplosionRadius <= 0 {
		c.ExplosionRadius = DefaultExplosionRadius
	}
	return c
}

// Controller owns the ragdoll parts of one actor. The part sets are fixed at
// construction; nothing else may touch their enabled, kinematic or gravity
// flags.
type Controller struct {
	mu sync.Mutex

	colliders  []Collider
	bodies     []RigidBody
	locomotion Enabler
	animator   Enabler
	cfg        Config

	physicsDriven bool
}

// New builds a controller and puts the actor under scripted control.
func New(colliders []Collider, bodies []RigidBody, locomotion, animator Enabler, cfg Config) *Controller {
	c := &Controller{
		colliders:  append([]Collider(nil), colliders...),
		bodies:     append([]RigidBody(nil), bodies...),
		locomotion: locomotion,
		animator:   animator,
		cfg:        cfg.withDefaults(),
	}
	c.SetMode(false)
	return c
}

// SetMode switches every part between scripted control (false) and physics
// simulation (true). Repeating the current mode reapplies the same flags.
func (c *Controller) SetMode(physicsDriven bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, col := range c.colliders {
		col.SetEnabled(physicsDriven)
	}
	for _, body := range c.bodies {
		body.SetKinematic(!physicsDriven)
		body.SetGravityAffected(physicsDriven)
	}
	if c.locomotion != nil {
		c.locomotion.SetEnabled(!physicsDriven)
	}
	if c.animator != nil {
		c.animator.SetEnabled(!physicsDriven)
	}

	if c.physicsDriven != physicsDriven {
		log.Debug().Bool("physics", physicsDriven).Int("bodies", len(c.bodies)).Msg("ragdoll: mode switched")
	}
	c.physicsDriven = physicsDriven
}

// PhysicsDriven reports the active mode.
func (c *Controller) PhysicsDriven() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.physicsDriven
}

// ApplyImpulse launches every body along direction, which must be a unit
// vector, and adds a randomly sized outward burst at each body's position.
//
// The controller must already be physics driven. Kinematic bodies ignore
// forces, so calling this under scripted control has no visible effect.
func (c *Controller) ApplyImpulse(direction common.Vec3) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.physicsDriven {
		log.Warn().Msg("ragdoll: impulse applied while under scripted control")
	}

	launch := direction.Scale(c.cfg.LaunchSpeed)
	for _, body := range c.bodies {
		body.SetVelocity(launch)
		body.ApplyRadialImpulse(c.sample()*c.cfg.MaxExplosionForce, body.Position(), c.cfg.ExplosionRadius)
	}
}

// Parts returns the number of colliders and bodies under control.
func (c *Controller) Parts() (colliders, bodies int) {
	if c == nil {
		return 0, 0
	}
	return len(c.colliders), len(c.bodies)
}

func (c *Controller) sample() float64 {
	if c.cfg.Rand != nil {
		return c.cfg.Rand.Float64()
	}
	return rand.Float64()
}
