package component

import "github.com/milk9111/combatant/common"

// Transform is an actor's root position on the ground plane (Y up) and its
// heading around the vertical axis.
type Transform struct {
	Pos     common.Vec3
	Heading float64
}

func (t *Transform) Position() common.Vec3 {
	return t.Pos
}

func (t *Transform) Yaw() float64 {
	return t.Heading
}

// LookAlong turns to face dir, ignoring its vertical part.
func (t *Transform) LookAlong(dir common.Vec3) {
	flat := dir.Planar()
	if flat.LenSq() == 0 {
		return
	}
	t.Heading = common.YawOf(flat)
}

// Forward is the unit heading direction.
func (t *Transform) Forward() common.Vec3 {
	return common.DirectionOf(t.Heading)
}

var TransformComponent = NewComponent[Transform]()
