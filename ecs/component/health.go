package component

type Health struct {
	Max     int
	Current int
}

func NewHealth(max int) *Health {
	return &Health{Max: max, Current: max}
}

// Damage subtracts amount and reports whether this blow was the killing one.
func (h *Health) Damage(amount int) bool {
	if h == nil || amount <= 0 || h.Current <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current == 0
}

func (h *Health) IsDead() bool {
	return h != nil && h.Current <= 0
}

var HealthComponent = NewComponent[Health]()
