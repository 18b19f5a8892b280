package component

import "github.com/milk9111/combatant/common"

const forceRest = 0.02

// ForceReceiver accumulates external motion: knockback that decays with drag
// and vertical speed under gravity.
type ForceReceiver struct {
	Impact   common.Vec3
	Vertical float64
	Drag     float64
	grounded bool
}

func NewForceReceiver(drag float64) *ForceReceiver {
	return &ForceReceiver{Drag: drag, grounded: true}
}

// Movement is the velocity the receiver adds to locomotion this frame.
func (f *ForceReceiver) Movement() common.Vec3 {
	if f == nil {
		return common.Vec3{}
	}
	return f.Impact.Add(common.Vec3{Y: f.Vertical})
}

func (f *ForceReceiver) AddForce(force common.Vec3) {
	if f == nil {
		return
	}
	f.Impact = f.Impact.Add(force)
}

func (f *ForceReceiver) Jump(speed float64) {
	if f == nil {
		return
	}
	f.Vertical = speed
	f.grounded = false
}

func (f *ForceReceiver) Grounded() bool {
	return f == nil || (f.grounded && f.Vertical <= 0)
}

// Update applies gravity and drag for one frame. onGround is whether the
// owner is standing on the floor.
func (f *ForceReceiver) Update(dt float64, onGround bool) {
	if f == nil {
		return
	}
	f.grounded = onGround && f.Vertical <= 0
	if f.grounded {
		f.Vertical = 0
	} else {
		f.Vertical -= common.Gravity * dt
	}

	decay := 1 - f.Drag*dt
	if decay < 0 {
		decay = 0
	}
	f.Impact = f.Impact.Scale(decay)
	if f.Impact.LenSq() < forceRest*forceRest {
		f.Impact = common.Vec3{}
	}
}

var ForceReceiverComponent = NewComponent[ForceReceiver]()
