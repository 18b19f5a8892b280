package component

// Equipment is the weapon an actor carries.
type Equipment struct {
	Visible   bool
	Reach     float64
	Damage    int
	Knockback float64
	// last swing id that already hit each victim
	landed map[uint64]int
}

func (e *Equipment) Show() {
	if e != nil {
		e.Visible = true
	}
}

func (e *Equipment) Hide() {
	if e != nil {
		e.Visible = false
	}
}

// Land records that swing hit victim and reports whether it is the first
// time this swing did.
func (e *Equipment) Land(victim uint64, swing int) bool {
	if e.landed == nil {
		e.landed = make(map[uint64]int)
	}
	if e.landed[victim] == swing {
		return false
	}
	e.landed[victim] = swing
	return true
}

var EquipmentComponent = NewComponent[Equipment]()
