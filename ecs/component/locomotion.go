package component

import "github.com/milk9111/combatant/common"

// Locomotion moves a transform on request. Disabled locomotion ignores
// moves, which is how a ragdolled actor stops being steered.
type Locomotion struct {
	Transform *Transform
	Enabled   bool
	// Arena bounds on X and Z; zero means unbounded.
	Bounds float64
}

func NewLocomotion(t *Transform, bounds float64) *Locomotion {
	return &Locomotion{Transform: t, Enabled: true, Bounds: bounds}
}

func (l *Locomotion) Move(delta common.Vec3) {
	if l == nil || !l.Enabled || l.Transform == nil {
		return
	}
	p := l.Transform.Pos.Add(delta)
	if p.Y < 0 {
		p.Y = 0
	}
	if l.Bounds > 0 {
		p.X = clamp(p.X, -l.Bounds, l.Bounds)
		p.Z = clamp(p.Z, -l.Bounds, l.Bounds)
	}
	l.Transform.Pos = p
}

func (l *Locomotion) SetEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.Enabled = enabled
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var LocomotionComponent = NewComponent[Locomotion]()
