// Package behavior holds the concrete states that drive players and enemies
// and the actor context they share.
package behavior

import (
	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/fsm"
)

// Body is the actor's transform.
type Body interface {
	Position() common.Vec3
	Yaw() float64
	LookAlong(dir common.Vec3)
}

// Locomotion moves the actor under scripted control.
type Locomotion interface {
	Move(delta common.Vec3)
	SetEnabled(enabled bool)
}

// Forces accumulates external motion such as knockback.
type Forces interface {
	Movement() common.Vec3
}

// Ragdoll switches the body between scripted control and physics.
type Ragdoll interface {
	SetMode(physicsDriven bool)
	ApplyImpulse(direction common.Vec3)
}

// Equipment is the held weapon's visibility.
type Equipment interface {
	Show()
	Hide()
}

// Animator plays named clips.
type Animator interface {
	Play(clip string)
}

// Releaser frees an acquired resource. Releasing twice is a no-op.
type Releaser interface {
	Release()
}

// Target is another actor this one reacts to.
type Target interface {
	// Locate returns false once the target has left the simulation.
	Locate() (common.Vec3, bool)
	IsDead() bool
}

// Agent is implemented by Enemy and Player so systems can reach the shared
// actor and report hits.
type Agent interface {
	Core() *Actor
	Hurt()
	Kill()
}

// Actor is the context every state of one actor works through. Its fields
// are wired once when the actor spawns.
type Actor struct {
	Name       string
	Machine    *fsm.Machine
	Body       Body
	Locomotion Locomotion
	Forces     Forces
	Ragdoll    Ragdoll
	Equipment  Equipment
	Animator   Animator
	Target     Target
	Targeter   Releaser
	ChaseRange float64

	strike   bool
	strikeID int
	blocking bool
	dead     bool
}

// Position is the zero vector for an actor without a body.
func (a *Actor) Position() common.Vec3 {
	if a == nil || a.Body == nil {
		return common.Vec3{}
	}
	return a.Body.Position()
}

// TargetPosition reports where the target is, if it is still present.
func (a *Actor) TargetPosition() (common.Vec3, bool) {
	if a == nil || a.Target == nil {
		return common.Vec3{}, false
	}
	return a.Target.Locate()
}

// IsInChaseRange reports whether a living target is within ChaseRange on the
// ground plane. The boundary is inclusive.
func (a *Actor) IsInChaseRange() bool {
	return a.withinRange(a.ChaseRange)
}

func (a *Actor) withinRange(r float64) bool {
	if a == nil || a.Target == nil || a.Body == nil {
		return false
	}
	if a.Target.IsDead() {
		return false
	}
	pos, ok := a.Target.Locate()
	if !ok {
		return false
	}
	return common.PlanarDistanceSq(a.Body.Position(), pos) <= r*r
}

// FaceTarget turns the actor toward its target on the ground plane. It does
// nothing when the target is gone or directly above or below.
func (a *Actor) FaceTarget() {
	pos, ok := a.TargetPosition()
	if !ok || a.Body == nil {
		return
	}
	look := pos.Sub(a.Body.Position()).Planar()
	if look.LenSq() == 0 {
		return
	}
	a.Body.LookAlong(look)
}

// Move requests motion plus any accumulated external force for one step.
func (a *Actor) Move(motion common.Vec3, dt float64) {
	if a == nil || a.Locomotion == nil {
		return
	}
	if a.Forces != nil {
		motion = motion.Add(a.Forces.Movement())
	}
	a.Locomotion.Move(motion.Scale(dt))
}

// Drift applies only the external forces.
func (a *Actor) Drift(dt float64) {
	a.Move(common.Vec3{}, dt)
}

func (a *Actor) play(clip string) {
	if a != nil && a.Animator != nil {
		a.Animator.Play(clip)
	}
}

func (a *Actor) changeState(s fsm.State) {
	if a != nil && a.Machine != nil {
		a.Machine.ChangeState(s)
	}
}

// Striking reports whether the actor's weapon is in its damage window, and
// which swing it belongs to.
func (a *Actor) Striking() (bool, int) {
	if a == nil {
		return false, 0
	}
	return a.strike, a.strikeID
}

func (a *Actor) beginSwing() {
	a.strikeID++
	a.strike = false
}

func (a *Actor) setStrike(active bool) {
	a.strike = active
}

// Blocking reports whether the actor is holding a block.
func (a *Actor) Blocking() bool {
	return a != nil && a.blocking
}

// IsDead reports whether the actor has entered its terminal state.
func (a *Actor) IsDead() bool {
	return a != nil && a.dead
}

// StateName is the active state's name.
func (a *Actor) StateName() string {
	if a == nil || a.Machine == nil {
		return fsm.NameOf(nil)
	}
	return fsm.NameOf(a.Machine.Current())
}

// ragdollDeath performs the handoff shared by every terminal state: physics
// takes over the body, it is launched along dir, the weapon is hidden and
// the targeting handle released.
func (a *Actor) ragdollDeath(dir common.Vec3) {
	a.dead = true
	a.strike = false
	a.blocking = false
	if a.Ragdoll != nil {
		a.Ragdoll.SetMode(true)
		a.Ragdoll.ApplyImpulse(dir)
	}
	if a.Equipment != nil {
		a.Equipment.Hide()
	}
	if a.Targeter != nil {
		a.Targeter.Release()
	}
}
